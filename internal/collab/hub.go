// Package collab hosts shared drawing sessions: a host creates a session,
// participants join over a websocket, and canvas updates are relayed to
// everyone else in the room.
package collab

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

// #region session

// SessionInfo is the shareable session descriptor.
type SessionInfo struct {
	ID           string    `json:"id"`
	Host         string    `json:"host"`
	Created      time.Time `json:"created"`
	Participants []string  `json:"participants"`
}

type session struct {
	id      string
	host    string
	created time.Time

	mu      sync.Mutex
	conns   map[*websocket.Conn]string
	canvas  string
}

// Envelope is one relayed websocket message.
type Envelope struct {
	Type   string `json:"type"`
	UserID string `json:"user_id,omitempty"`
	Canvas string `json:"canvas_data,omitempty"`
}

// #endregion

// #region hub

// Hub tracks every live collaborative session.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*session
	log      *slog.Logger
}

// NewHub returns an empty hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		sessions: make(map[string]*session),
		log:      log.With("component", "collab"),
	}
}

// Create opens a new session hosted by userID and returns its short id.
func (h *Hub) Create(userID string) SessionInfo {
	id := uuid.NewString()[:8]
	s := &session{
		id:      id,
		host:    userID,
		created: time.Now(),
		conns:   make(map[*websocket.Conn]string),
	}

	h.mu.Lock()
	h.sessions[id] = s
	h.mu.Unlock()

	h.log.Info("session created", "session", id, "host", userID)
	return SessionInfo{ID: id, Host: userID, Created: s.created, Participants: []string{userID}}
}

// Info returns the descriptor for a session.
func (h *Hub) Info(sessionID string) (SessionInfo, error) {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	h.mu.Unlock()
	if !ok {
		return SessionInfo{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	info := SessionInfo{ID: s.id, Host: s.host, Created: s.created}
	for _, uid := range s.conns {
		info.Participants = append(info.Participants, uid)
	}
	return info, nil
}

// Sessions reports how many sessions are live.
func (h *Hub) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// #endregion

// #region relay

// Handler returns the websocket handler that joins a connection to the
// session and relays its canvas updates until it disconnects.
func (h *Hub) Handler(sessionID, userID string) (websocket.Handler, error) {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	h.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	return func(ws *websocket.Conn) {
		h.serve(s, ws, userID)
	}, nil
}

func (h *Hub) serve(s *session, ws *websocket.Conn, userID string) {
	s.mu.Lock()
	s.conns[ws] = userID
	canvas := s.canvas
	s.mu.Unlock()

	// Late joiners receive the current canvas first.
	if canvas != "" {
		h.send(ws, Envelope{Type: "canvas_state", Canvas: canvas})
	}
	h.broadcast(s, ws, Envelope{Type: "joined", UserID: userID})

	defer func() {
		s.mu.Lock()
		delete(s.conns, ws)
		empty := len(s.conns) == 0
		s.mu.Unlock()

		h.broadcast(s, ws, Envelope{Type: "left", UserID: userID})
		if empty {
			h.mu.Lock()
			delete(h.sessions, s.id)
			h.mu.Unlock()
			h.log.Info("session closed", "session", s.id)
		}
	}()

	for {
		var raw string
		if err := websocket.Message.Receive(ws, &raw); err != nil {
			if err != io.EOF {
				h.log.Debug("receive failed", "session", s.id, "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			h.send(ws, Envelope{Type: "error", Canvas: fmt.Sprintf("bad message: %v", err)})
			continue
		}
		env.UserID = userID

		if env.Type == "canvas_update" {
			s.mu.Lock()
			s.canvas = env.Canvas
			s.mu.Unlock()
		}
		h.broadcast(s, ws, env)
	}
}

// broadcast sends to every participant except the origin connection.
func (h *Hub) broadcast(s *session, origin *websocket.Conn, env Envelope) {
	s.mu.Lock()
	targets := make([]*websocket.Conn, 0, len(s.conns))
	for c := range s.conns {
		if c != origin {
			targets = append(targets, c)
		}
	}
	s.mu.Unlock()

	for _, c := range targets {
		h.send(c, env)
	}
}

func (h *Hub) send(ws *websocket.Conn, env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		return
	}
	if err := websocket.Message.Send(ws, string(payload)); err != nil {
		h.log.Debug("send failed", "error", err)
	}
}

// #endregion
