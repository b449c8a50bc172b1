// Package api exposes the drawing backend over HTTP: the analyze
// routing endpoint, the feedback pipeline, account and payment flows,
// the gallery, collaborative sessions, and the status surfaces.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/account"
	"github.com/atelierhq/atelier/internal/collab"
	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/llm"
	"github.com/atelierhq/atelier/internal/storage"
	"github.com/atelierhq/atelier/internal/training"
)

// #region deps

// Completer is the model call the analyze paths need.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
	CheckKey() llm.KeyStatus
}

// Deps carries everything the handlers use.
type Deps struct {
	Training *training.System
	Accounts *account.Manager
	Store    *storage.Store
	Hub      *collab.Hub
	Model    Completer
	Usage    *llm.UsageTracker
	Config   config.Config
	Log      *slog.Logger
}

// NewHandler builds the full route tree.
func NewHandler(deps Deps) http.Handler {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	deps.Log = deps.Log.With("component", "api")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/api", handleAPIRoot())
	r.Get("/user-status", handleUserStatus(deps))
	r.Post("/start-trial", handleStartTrial(deps))
	r.Post("/activate-premium", handleActivatePremium(deps))
	r.Post("/create-payment-intent", handleCreatePaymentIntent(deps))
	r.Post("/verify-payment", handleVerifyPayment(deps))

	r.Post("/save-drawing", handleSaveDrawing(deps))
	r.Get("/gallery", handleGallery(deps))

	r.Post("/analyze", handleAnalyze(deps))
	r.Post("/advanced-analysis", handleAdvancedAnalysis(deps))
	r.Post("/adaptive-learning-request", handleAdaptiveLearning(deps))
	r.Post("/submit-feedback", handleSubmitFeedback(deps))

	r.Get("/ai-performance", handleAIPerformance(deps))
	r.Get("/learning-analytics", handleLearningAnalytics(deps))
	r.Get("/system-health", handleSystemHealth(deps))
	r.Get("/api-status", handleAPIStatus(deps))
	r.Get("/admin/dashboard", handleAdminDashboard(deps))

	r.Post("/collaborative-session", handleCreateSession(deps))
	r.Get("/ws/{session}", handleSessionSocket(deps))

	if deps.Config.Static.Dir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(deps.Config.Static.Dir)))
		r.Get("/static/*", fs.ServeHTTP)
	}
	return r
}

// #endregion

// #region helpers

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// userID derives a stable account key from the client. Anonymous clients
// get a throwaway identity.
func userID(r *http.Request) string {
	id := r.Header.Get("User-Agent")
	if id == "" {
		id = uuid.NewString()
	}
	if len(id) > 50 {
		id = id[:50]
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func handleAPIRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Drawing AI Backend is Running"})
	}
}

// requirePremium loads the account and rejects non-premium users.
func requirePremium(deps Deps, w http.ResponseWriter, r *http.Request, feature string) bool {
	st, err := deps.Accounts.Status(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "account lookup failed")
		return false
	}
	if !st.IsPremium {
		writeError(w, http.StatusForbidden, "Premium feature - "+feature+" require subscription")
		return false
	}
	return true
}

// #endregion
