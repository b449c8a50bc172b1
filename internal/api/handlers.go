package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atelierhq/atelier/internal/llm"
	"github.com/atelierhq/atelier/internal/storage"
)

var serverStart = time.Now()

// #region account

func handleUserStatus(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := deps.Accounts.Status(r.Context(), userID(r))
		if err != nil {
			deps.Log.Error("user status", "error", err)
			writeError(w, http.StatusInternalServerError, "account lookup failed")
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func handleStartTrial(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := deps.Accounts.StartTrial(r.Context(), userID(r))
		if err != nil {
			deps.Log.Error("start trial", "error", err)
			writeError(w, http.StatusInternalServerError, "trial start failed")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// handleActivatePremium grants premium without payment. Demo only.
func handleActivatePremium(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Accounts.ActivatePremium(r.Context(), userID(r)); err != nil {
			deps.Log.Error("activate premium", "error", err)
			writeError(w, http.StatusInternalServerError, "activation failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Premium activated for 30 days!",
		})
	}
}

func handleCreatePaymentIntent(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Plan string `json:"plan"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusOK, deps.Accounts.CreatePaymentIntent(req.Plan))
	}
}

func handleVerifyPayment(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PaymentIntentID string `json:"payment_intent_id"`
			Plan            string `json:"plan"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		ok, msg, err := deps.Accounts.VerifyPayment(r.Context(), userID(r), req.PaymentIntentID, req.Plan)
		if err != nil {
			deps.Log.Error("verify payment", "error", err)
			writeError(w, http.StatusInternalServerError, "verification failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": ok, "message": msg})
	}
}

// #endregion

// #region gallery

func handleSaveDrawing(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			DrawingData string `json:"drawing_data"`
			Title       string `json:"title"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Title == "" {
			req.Title = "Drawing_" + time.Now().Format("20060102_150405")
		}
		id, err := deps.Store.SaveDrawing(r.Context(), userID(r), req.Title, req.DrawingData)
		if err != nil {
			deps.Log.Error("save drawing", "error", err)
			writeError(w, http.StatusInternalServerError, "save failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "drawing_id": id})
	}
}

func handleGallery(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := deps.Store.EnsureUser(r.Context(), userID(r)); err != nil {
			writeError(w, http.StatusInternalServerError, "account lookup failed")
			return
		}
		drawings, err := deps.Store.Gallery(r.Context(), userID(r))
		if err != nil {
			deps.Log.Error("gallery", "error", err)
			writeError(w, http.StatusInternalServerError, "gallery load failed")
			return
		}
		if drawings == nil {
			drawings = []storage.Drawing{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"drawings": drawings})
	}
}

// #endregion

// #region feedback

func handleSubmitFeedback(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt     string `json:"prompt"`
			Response   string `json:"response"`
			Rating     *int   `json:"rating"`
			Correction string `json:"correction"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		rating := 3
		if req.Rating != nil {
			rating = *req.Rating
		}

		entry := deps.Training.Collect(r.Context(), req.Prompt, req.Response, rating, req.Correction, 0)
		deps.Training.CacheSuccessfulResponse(req.Prompt, req.Response, rating)

		writeJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"message":     "Feedback received! This helps improve AI responses.",
			"training_id": entry.SessionID,
		})
	}
}

// #endregion

// #region analytics

func handleAIPerformance(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requirePremium(deps, w, r, "AI performance metrics") {
			return
		}
		insights := deps.Training.ExportInsights()
		writeJSON(w, http.StatusOK, map[string]any{
			"performance_data":                insights,
			"comprehensive_learning_analysis": deps.Training.ComprehensiveLearningInsights(),
			"learning_effectiveness_score":    insights.DataQualityScore,
			"system_intelligence_metrics":     deps.Training.Intelligence(),
		})
	}
}

func handleLearningAnalytics(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requirePremium(deps, w, r, "Learning analytics") {
			return
		}
		full := deps.Training.ComprehensiveLearningInsights()
		writeJSON(w, http.StatusOK, map[string]any{
			"learning_analytics": map[string]any{
				"skill_progression":        full.SkillProgression,
				"concept_mastery":          full.ConceptMastery,
				"learning_recommendations": full.DifficultyRecommendations,
				"personalized_insights":    full.PersonalizationTargets,
				"multimodal_effectiveness": full.Multimodal,
			},
		})
	}
}

// #endregion

// #region status

func handleSystemHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := deps.Model.CheckKey()
		stats := deps.Usage.Stats()
		metrics := deps.Training.PerformanceMetrics()

		status := "degraded"
		if key.Valid && stats.HealthStatus == "healthy" {
			status = "healthy"
		}
		component := func(ok bool) string {
			if ok {
				return "operational"
			}
			return "failed"
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status": status,
			"components": map[string]string{
				"api_key":     component(key.Valid),
				"database":    "operational",
				"ai_training": "operational",
			},
			"metrics": map[string]any{
				"api_success_rate":      stats.SuccessRate,
				"ai_satisfaction_score": metrics.SatisfactionScore,
				"total_users":           deps.Training.DistinctSessions(),
				"uptime":                time.Since(serverStart).Round(time.Second).String(),
			},
			"timestamp": time.Now().Format(time.RFC3339Nano),
		})
	}
}

func handleAPIStatus(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := deps.Model.CheckKey()
		stats := deps.Usage.Stats()
		writeJSON(w, http.StatusOK, map[string]any{
			"api_key_status":   key,
			"usage_statistics": stats,
			"system_health": map[string]any{
				"status":     stats.HealthStatus,
				"uptime":     time.Since(serverStart).Round(time.Second).String(),
				"last_check": time.Now().Format(time.RFC3339Nano),
			},
			"recommendations": apiRecommendations(key, stats),
		})
	}
}

type recommendation struct {
	Priority string `json:"priority"`
	Issue    string `json:"issue"`
	Action   string `json:"action"`
}

// apiRecommendations turns key and usage state into operator guidance.
func apiRecommendations(key llm.KeyStatus, stats llm.UsageStats) []recommendation {
	var recs []recommendation

	if !key.Valid {
		action := key.ActionRequired
		if action == "" {
			action = "Fix API key configuration"
		}
		recs = append(recs, recommendation{"critical", "API key not functional", action})
	}
	if stats.RateLimitHits > 5 {
		recs = append(recs, recommendation{"high", "Frequent rate limiting",
			"Consider upgrading OpenAI plan or implementing request throttling"})
	}
	if stats.SuccessRate < 90 {
		recs = append(recs, recommendation{"medium",
			fmt.Sprintf("Low success rate: %.1f%%", stats.SuccessRate),
			"Monitor API errors and implement retry logic"})
	}
	if stats.DailyRequests > 1000 {
		recs = append(recs, recommendation{"info", "High daily usage",
			"Monitor costs and consider usage optimization"})
	}
	if len(recs) == 0 {
		recs = append(recs, recommendation{"success", "System operating normally", "Continue monitoring"})
	}
	return recs
}

func handleAdminDashboard(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := deps.Model.CheckKey()
		stats := deps.Usage.Stats()
		metrics := deps.Training.PerformanceMetrics()
		writeJSON(w, http.StatusOK, map[string]any{
			"api_management": map[string]any{
				"status":        key,
				"usage":         stats,
				"cost_estimate": float64(stats.DailyRequests) * 0.002,
			},
			"ai_performance": deps.Training.ExportInsights(),
			"user_metrics": map[string]any{
				"total_interactions": metrics.TotalInteractions,
				"success_rate":       metrics.SuccessRate(),
				"user_satisfaction":  metrics.SatisfactionScore,
			},
		})
	}
}

// #endregion

// #region collab

func handleCreateSession(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := deps.Hub.Create(userID(r))
		writeJSON(w, http.StatusOK, map[string]any{
			"session_id": info.ID,
			"message":    "Collaborative session created!",
		})
	}
}

func handleSessionSocket(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session")
		h, err := deps.Hub.Handler(sessionID, userID(r))
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		h.ServeHTTP(w, r)
	}
}

// #endregion
