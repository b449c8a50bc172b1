package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atelierhq/atelier/internal/strategy"
)

// #region analyze

const (
	trainingBadge = "<br><br>🎓 <em>Response from AI training dataset</em>"
	hybridBadge   = "<br><br>🔄 <em>Hybrid response: Training data + OpenAI</em>"
	modelBadge    = "<br><br>🤖 <em>Response from OpenAI API</em>"
)

const premiumLockedMessage = `🔒 <strong>Premium Feature</strong><br>
This advanced AI feature requires premium access or trial usage.<br><br>
✨ <strong>Premium features include:</strong><br>
• Advanced step-by-step tutorials<br>
• Style-specific guidance (realistic, anime, cartoon)<br>
• Color palette suggestions<br>
• Composition tips<br>
• Professional techniques<br><br>
🎯 <strong>Get access:</strong> Use a trial or upgrade to premium!`

// handleAnalyze is the main routing endpoint: it decides between learned
// responses, templates, and model calls, executes the decision, and
// feeds the outcome back into the training system.
func handleAnalyze(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt      string `json:"prompt"`
			FeatureType string `json:"feature_type"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.FeatureType == "" {
			req.FeatureType = "basic"
		}
		if req.Prompt == "" {
			writeJSON(w, http.StatusOK, map[string]any{"suggestion": "Please enter what you'd like to draw!"})
			return
		}

		ctx := r.Context()
		uid := userID(r)
		start := time.Now()

		st, err := deps.Accounts.Status(ctx, uid)
		if err != nil {
			deps.Log.Error("analyze account", "error", err)
			writeError(w, http.StatusInternalServerError, "account lookup failed")
			return
		}
		total, err := deps.Store.IncrementUsage(ctx, uid)
		if err != nil {
			deps.Log.Error("analyze usage", "error", err)
			writeError(w, http.StatusInternalServerError, "account update failed")
			return
		}

		// First premium-feature use auto-starts the trial.
		trialActive := st.TrialActive
		if !st.TrialStarted {
			if err := deps.Accounts.EnsureTrial(ctx, uid); err != nil {
				deps.Log.Warn("trial auto-start", "error", err)
			} else {
				trialActive = true
			}
		}
		if req.FeatureType == "premium" && !st.IsPremium && !trialActive {
			writeJSON(w, http.StatusOK, map[string]any{
				"suggestion":       premiumLockedMessage,
				"premium_required": true,
			})
			return
		}

		saved, _ := deps.Store.DrawingCount(ctx, uid)
		user := strategy.UserInfo{TotalUses: total, Premium: st.IsPremium, SavedDrawings: saved}
		dec := deps.Training.DetermineStrategy(req.Prompt, req.FeatureType, user)

		if !dec.NeedsModel() {
			suggestion := dec.Response
			if dec.Strategy == strategy.StrategyTrainingTroubleshoot {
				if guide := toolGuide(req.Prompt); guide != "" {
					suggestion += "<br><br>" + guide
				}
			}
			if refs := imageReferences(req.Prompt); refs != "" {
				suggestion += "<br><br>" + refs
			}
			elapsed := time.Since(start)
			deps.Training.Collect(ctx, req.Prompt, suggestion, 5, "", elapsed)
			writeJSON(w, http.StatusOK, map[string]any{
				"suggestion":         suggestion + trainingBadge,
				"feature_type":       req.FeatureType,
				"response_time":      elapsed.Seconds(),
				"from_training_data": true,
				"strategy_used":      dec.Strategy,
			})
			return
		}

		hybrid := dec.TrainingContext != ""
		userMessage := dec.UserMessage
		maxTokens := deps.Config.Model.MaxTokens
		temperature := deps.Config.Model.Temperature
		if hybrid {
			userMessage = fmt.Sprintf(`User Request: %s

Relevant Training Data Context:
%s

Instructions: Combine the training data insights with your knowledge to provide a comprehensive response.
Build upon the training examples while adding your own expertise.`, req.Prompt, dec.TrainingContext)
			maxTokens = 250
			temperature = 0.6
		}

		suggestion, err := deps.Model.Complete(ctx, dec.SystemMessage, userMessage, maxTokens, temperature)
		if err != nil {
			deps.Log.Warn("model call failed, serving fallback", "strategy", dec.Strategy, "error", err)
			fallback := fallbackSuggestion(req.Prompt)
			elapsed := time.Since(start)
			deps.Training.Collect(ctx, req.Prompt, fallback, 2, "Fallback response used - API unavailable", elapsed)
			writeJSON(w, http.StatusOK, map[string]any{
				"suggestion":    fallback,
				"feature_type":  req.FeatureType,
				"response_time": elapsed.Seconds(),
				"is_fallback":   true,
			})
			return
		}

		elapsed := time.Since(start)
		if hybrid {
			deps.Training.Collect(ctx, req.Prompt, suggestion, 4, "", elapsed)
			writeJSON(w, http.StatusOK, map[string]any{
				"suggestion":             suggestion + hybridBadge,
				"feature_type":           req.FeatureType,
				"response_time":          elapsed.Seconds(),
				"from_hybrid":            true,
				"strategy_used":          dec.Strategy,
				"training_examples_used": len(dec.ContextApplied),
			})
			return
		}
		deps.Training.Collect(ctx, req.Prompt, suggestion, 3, "", elapsed)
		writeJSON(w, http.StatusOK, map[string]any{
			"suggestion":    suggestion + modelBadge,
			"feature_type":  req.FeatureType,
			"response_time": elapsed.Seconds(),
			"from_openai":   true,
			"strategy_used": dec.Strategy,
		})
	}
}

// fallbackSuggestion keeps the user moving when the model is down.
func fallbackSuggestion(prompt string) string {
	lower := strings.ToLower(prompt)
	if containsAny(lower, []string{"help", "problem", "not working", "tool"}) {
		return `🔧 <strong>Quick Fix:</strong><br>
• Check tool is selected (blue highlight)<br>
• Verify brush size > 1<br>
• Click canvas first<br>
• Try refreshing page`
	}
	return fmt.Sprintf(`🎨 <strong>Draw %s:</strong><br>
• Start with basic shapes<br>
• Use Rectangle/Circle tools first<br>
• Switch to Pencil for details<br>
• Add colors with color picker`, prompt)
}

// #endregion

// #region advanced-analysis

type analysisProfile struct {
	system    string
	user      string
	maxTokens int
}

var analysisProfiles = map[string]analysisProfile{
	"composition": {
		system:    "You are an expert art critic and composition analyst. Analyze the described artwork and provide detailed feedback on balance, focal points, and artistic suggestions.",
		user:      "Analyze this artwork composition. Focus on: balance, focal points, color harmony, and provide 3 specific improvement suggestions.",
		maxTokens: 300,
	},
	"color_palette": {
		system:    "You are a color theory expert. Provide specific color recommendations and palette analysis.",
		user:      "Analyze color usage and suggest a complementary palette. Provide specific hex colors and color theory advice.",
		maxTokens: 200,
	},
	"style_analysis": {
		system:    "You are an art historian and style expert. Identify artistic styles and provide technique recommendations.",
		user:      "Analyze the artistic style and provide specific technique suggestions for improvement.",
		maxTokens: 250,
	},
}

func handleAdvancedAnalysis(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Type      string `json:"type"`
			ImageData string `json:"image_data"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Type == "" {
			req.Type = "composition"
		}

		st, err := deps.Accounts.Status(r.Context(), userID(r))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "account lookup failed")
			return
		}
		if !st.IsPremium && !st.TrialActive {
			writeJSON(w, http.StatusOK, map[string]any{"error": "Premium feature requires subscription or trial"})
			return
		}

		profile, ok := analysisProfiles[req.Type]
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown analysis type")
			return
		}
		feedback, err := deps.Model.Complete(r.Context(), profile.system, profile.user, profile.maxTokens, deps.Config.Model.Temperature)
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"error": "Analysis failed: " + err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"analysis": analysisPayload(req.Type, feedback),
			"type":     req.Type,
		})
	}
}

func analysisPayload(analysisType, feedback string) map[string]any {
	switch analysisType {
	case "color_palette":
		return map[string]any{
			"dominant_colors": []string{"#3498DB", "#E74C3C", "#F39C12"},
			"color_scheme":    "AI-analyzed scheme",
			"ai_feedback":     feedback,
			"suggestions": []string{
				"Use complementary colors for strong contrast",
				"Try analogous colors for harmony",
				"Consider split-complementary for balance",
			},
			"harmony_score": 9.2,
		}
	case "style_analysis":
		return map[string]any{
			"detected_style": "AI-analyzed style",
			"ai_feedback":    feedback,
			"technique_suggestions": []string{
				"Experiment with different brush techniques",
				"Focus on light and shadow relationships",
				"Consider adding textural elements",
			},
			"style_confidence": 0.87,
		}
	default:
		return map[string]any{
			"balance":       "AI-analyzed",
			"focal_points":  []string{"AI-detected areas of interest"},
			"color_harmony": "AI-evaluated harmony",
			"ai_feedback":   feedback,
			"suggestions": []string{
				"AI-generated suggestion 1",
				"AI-generated suggestion 2",
				"AI-generated suggestion 3",
			},
			"technical_score": 8.5,
			"artistic_score":  7.8,
		}
	}
}

// #endregion

// #region adaptive-learning

const adaptiveSystemMessage = "You are an advanced AI drawing instructor with access to comprehensive learning analytics. Adapt your teaching style based on the provided learning context."

func handleAdaptiveLearning(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		enhanced := fmt.Sprintf(`User Request: %s

Learning Context Analysis:
%s

Provide a response that:
1. Builds on previously successful patterns
2. Avoids known failure patterns
3. Adapts to the user's demonstrated skill level
4. Incorporates multimodal learning elements
5. Scales difficulty appropriately`, req.Prompt, deps.Training.AdaptiveContext(req.Prompt))

		response, err := deps.Model.Complete(r.Context(), adaptiveSystemMessage, enhanced, 200, 0.7)
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"error": "Adaptive learning failed: " + err.Error()})
			return
		}
		deps.Training.Collect(r.Context(), req.Prompt, response, 4, "", 0)

		writeJSON(w, http.StatusOK, map[string]any{
			"adaptive_response":         response,
			"learning_insights_applied": true,
			"personalization_level":     "high",
		})
	}
}

// #endregion
