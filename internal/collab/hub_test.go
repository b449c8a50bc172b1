package collab

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"
)

func TestCreateAndInfo(t *testing.T) {
	h := NewHub(nil)

	info := h.Create("alice")
	if len(info.ID) != 8 {
		t.Fatalf("session id = %q, want 8 chars", info.ID)
	}
	if info.Host != "alice" {
		t.Fatalf("Host = %q", info.Host)
	}
	if h.Sessions() != 1 {
		t.Fatalf("Sessions = %d", h.Sessions())
	}

	if _, err := h.Info("missing1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Info err = %v", err)
	}
}

func TestHandlerUnknownSession(t *testing.T) {
	h := NewHub(nil)
	if _, err := h.Handler("missing1", "alice"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestCanvasRelay(t *testing.T) {
	h := NewHub(nil)
	info := h.Create("alice")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.URL.Query().Get("user")
		handler, err := h.Handler(info.ID, user)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		handler.ServeHTTP(w, r)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	dial := func(user string) *websocket.Conn {
		t.Helper()
		ws, err := websocket.Dial(wsURL+"?user="+user, "", "http://localhost/")
		if err != nil {
			t.Fatalf("dial %s: %v", user, err)
		}
		t.Cleanup(func() { ws.Close() })
		return ws
	}

	alice := dial("alice")
	bob := dial("bob")

	// Bob joining notifies Alice.
	var raw string
	if err := websocket.Message.Receive(alice, &raw); err != nil {
		t.Fatalf("receive join: %v", err)
	}
	var env Envelope
	json.Unmarshal([]byte(raw), &env)
	if env.Type != "joined" || env.UserID != "bob" {
		t.Fatalf("join envelope = %+v", env)
	}

	// Alice's update reaches Bob, attributed to Alice.
	update, _ := json.Marshal(Envelope{Type: "canvas_update", Canvas: "stroke-data"})
	if err := websocket.Message.Send(alice, string(update)); err != nil {
		t.Fatalf("send update: %v", err)
	}
	if err := websocket.Message.Receive(bob, &raw); err != nil {
		t.Fatalf("receive update: %v", err)
	}
	json.Unmarshal([]byte(raw), &env)
	if env.Type != "canvas_update" || env.UserID != "alice" || env.Canvas != "stroke-data" {
		t.Fatalf("update envelope = %+v", env)
	}

	// Late joiners get the current canvas immediately.
	carol := dial("carol")
	if err := websocket.Message.Receive(carol, &raw); err != nil {
		t.Fatalf("receive state: %v", err)
	}
	json.Unmarshal([]byte(raw), &env)
	if env.Type != "canvas_state" || env.Canvas != "stroke-data" {
		t.Fatalf("state envelope = %+v", env)
	}
}

func TestEmptySessionIsReaped(t *testing.T) {
	h := NewHub(nil)
	info := h.Create("alice")

	srv := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		handler, err := h.Handler(info.ID, "alice")
		if err != nil {
			return
		}
		handler(ws)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, err := websocket.Dial(wsURL, "", "http://localhost/")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	ws.Close()

	deadline := time.Now().Add(2 * time.Second)
	for h.Sessions() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("empty session was not removed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
