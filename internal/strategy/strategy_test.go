package strategy

import (
	"strings"
	"testing"
)

// #region factors

func TestBuildFactorsDetection(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		check  func(t *testing.T, f Factors)
	}{
		{"advanced-technique", "teach me the golden ratio", func(t *testing.T, f Factors) {
			if !f.IsAdvancedTechnique || f.TechniqueCategory != "mathematical" {
				t.Fatalf("technique = %v/%q", f.IsAdvancedTechnique, f.TechniqueCategory)
			}
		}},
		{"technique-order", "abstract perspective study", func(t *testing.T, f Factors) {
			// "modern" row precedes "technical" in the table.
			if f.TechniqueCategory != "modern" {
				t.Fatalf("TechniqueCategory = %q, want modern", f.TechniqueCategory)
			}
		}},
		{"troubleshooting", "my brush is not working", func(t *testing.T, f Factors) {
			if !f.IsTroubleshooting || f.TroubleshootingCategory != "tool_issues" {
				t.Fatalf("troubleshooting = %v/%q", f.IsTroubleshooting, f.TroubleshootingCategory)
			}
		}},
		{"creative", "paint something unique and expressive", func(t *testing.T, f Factors) {
			if !f.IsCreativeRequest || f.CreativeCategory != "original_creation" {
				t.Fatalf("creative = %v/%q", f.IsCreativeRequest, f.CreativeCategory)
			}
		}},
		{"plain", "draw a cat", func(t *testing.T, f Factors) {
			if f.IsAdvancedTechnique || f.IsTroubleshooting || f.IsCreativeRequest {
				t.Fatalf("plain prompt triggered a category: %+v", f)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, BuildFactors(tt.prompt, UserInfo{TotalUses: 10}))
		})
	}
}

func TestPromptComplexity(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   float64
	}{
		{"empty", "", 0},
		{"three-words", "draw a cat", 1.0},
		{"long-word", "draw a magnificently detailed cat", 5.0/3 + 0.5 + 0.4},
		{"capped", strings.Repeat("extraordinarily ", 12), 5.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := promptComplexity(tt.prompt)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("promptComplexity(%q) = %v, want %v", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestPersonalizationScore(t *testing.T) {
	tests := []struct {
		name string
		user UserInfo
		want float64
	}{
		{"new-free", UserInfo{}, 0.2},
		{"premium-saver", UserInfo{TotalUses: 30, Premium: true, SavedDrawings: 2}, 1.0},
		{"heavy-free", UserInfo{TotalUses: 100}, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := personalizationScore(tt.user)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("personalizationScore = %v, want %v", got, tt.want)
			}
		})
	}
}

// #endregion

// #region decisions

func TestDecideExactMatchWinsFirst(t *testing.T) {
	// A prompt that is simultaneously an advanced technique and
	// troubleshooting still routes to the exact match.
	prompt := "help with golden ratio perspective"
	f := BuildFactors(prompt, UserInfo{TotalUses: 10})
	ev := Evidence{HasExactMatch: true, ExactResponse: "use a 1:1.618 grid", Confidence: 1.0}

	d := Decide(f, ev, prompt, "free", UserInfo{TotalUses: 10})
	if d.Strategy != StrategyTrainingEnhanced {
		t.Fatalf("Strategy = %q, want %q", d.Strategy, StrategyTrainingEnhanced)
	}
	if d.Confidence != 1.0 {
		t.Fatalf("Confidence = %v", d.Confidence)
	}
	if !strings.Contains(d.Response, "use a 1:1.618 grid") {
		t.Fatalf("Response lost the learned answer: %q", d.Response)
	}
	if d.NeedsModel() {
		t.Fatal("exact match must not call the model")
	}
}

func TestDecideCulturalBranch(t *testing.T) {
	prompt := "show me chiaroscuro lighting"
	f := BuildFactors(prompt, UserInfo{TotalUses: 10})
	ev := Evidence{
		Confidence:       0.4,
		RelevantExamples: []Example{{Prompt: "chiaroscuro portrait", Response: "build from dark masses"}},
	}

	d := Decide(f, ev, prompt, "free", UserInfo{TotalUses: 10})
	if d.Strategy != StrategyTrainingCultural {
		t.Fatalf("Strategy = %q", d.Strategy)
	}
	if !strings.Contains(d.Response, "Classical techniques") {
		t.Fatalf("missing cultural framing: %q", d.Response)
	}
	if !strings.Contains(d.Response, "build from dark masses") {
		t.Fatalf("missing learned content: %q", d.Response)
	}
}

func TestDecideTroubleshootingSplit(t *testing.T) {
	prompt := "my brush tool is not working"
	user := UserInfo{TotalUses: 3} // beginner
	f := BuildFactors(prompt, user)

	d := Decide(f, Evidence{}, prompt, "free", user)
	if d.Strategy != StrategyTrainingTroubleshoot {
		t.Fatalf("Strategy = %q, want templated solution", d.Strategy)
	}
	if !strings.Contains(d.Response, "Check tool selection") {
		t.Fatalf("wrong template: %q", d.Response)
	}

	// An expert with a vague problem gets routed to the model.
	vague := "help with a strange problem"
	expert := UserInfo{TotalUses: 100}
	fe := BuildFactors(vague, expert)
	de := Decide(fe, Evidence{}, vague, "free", expert)
	if de.Strategy != StrategyModelTroubleshoot {
		t.Fatalf("Strategy = %q, want model troubleshooting", de.Strategy)
	}
	if !strings.HasPrefix(de.UserMessage, "TROUBLESHOOT general_help:") {
		t.Fatalf("UserMessage = %q", de.UserMessage)
	}
}

func TestDecideCreativeBranches(t *testing.T) {
	prompt := "paint something unique"

	premium := UserInfo{TotalUses: 40, Premium: true, SavedDrawings: 1}
	f := BuildFactors(prompt, premium)
	d := Decide(f, Evidence{}, prompt, "premium", premium)
	if d.Strategy != StrategyHybridCreative {
		t.Fatalf("Strategy = %q, want hybrid creative", d.Strategy)
	}
	if !strings.Contains(d.SystemMessage, "professional techniques") {
		t.Fatalf("premium system message missing upgrades: %q", d.SystemMessage)
	}

	free := UserInfo{TotalUses: 2}
	df := Decide(BuildFactors(prompt, free), Evidence{}, prompt, "free", free)
	if df.Strategy != StrategyModelCreative {
		t.Fatalf("Strategy = %q, want model creative", df.Strategy)
	}
}

func TestDecideSemanticHybrid(t *testing.T) {
	prompt := "sketch a mountain lake"
	user := UserInfo{TotalUses: 10}
	f := BuildFactors(prompt, user)
	ev := Evidence{
		HasSimilarMatch: true,
		Confidence:      0.45,
		SemanticMatches: []SemanticMatch{
			{Prompt: "sketch a mountain range", Response: "layer the ridgelines", Total: 0.45},
		},
	}

	d := Decide(f, ev, prompt, "free", user)
	if d.Strategy != StrategySemanticHybrid {
		t.Fatalf("Strategy = %q", d.Strategy)
	}
	if d.LearningPath == nil || len(d.LearningPath.CurrentFocus) == 0 {
		t.Fatal("semantic hybrid must carry a learning path")
	}
	if !strings.Contains(d.TrainingContext, "sketch a mountain range") {
		t.Fatalf("TrainingContext = %q", d.TrainingContext)
	}
}

func TestDecideSkillAdaptedFallback(t *testing.T) {
	prompt := "draw a cat"
	user := UserInfo{TotalUses: 0}
	f := BuildFactors(prompt, user)

	d := Decide(f, Evidence{}, prompt, "free", user)
	if d.Strategy != StrategyModelSkillAdapted {
		t.Fatalf("Strategy = %q", d.Strategy)
	}
	if !strings.HasPrefix(d.UserMessage, "Please provide step-by-step beginner guidance for:") {
		t.Fatalf("UserMessage = %q", d.UserMessage)
	}
	if d.Confidence != 0.75 {
		t.Fatalf("Confidence = %v", d.Confidence)
	}
}

// #endregion

// #region messages

func TestPersonalizeResponseThreshold(t *testing.T) {
	base := "start with a circle"

	low := Factors{UserSkillLevel: "beginner", PersonalizationScore: 0.3}
	if got := PersonalizeResponse(base, low, UserInfo{}); got != base {
		t.Fatalf("low score must pass through, got %q", got)
	}

	high := Factors{UserSkillLevel: "beginner", PersonalizationScore: 0.8}
	got := PersonalizeResponse(base, high, UserInfo{Premium: true})
	if !strings.Contains(got, "creative professional") {
		t.Fatalf("premium address missing: %q", got)
	}
	if !strings.Contains(got, "Every master was once a beginner") {
		t.Fatalf("beginner encouragement missing: %q", got)
	}
}

func TestTroubleshootingResponseFallback(t *testing.T) {
	if got := TroubleshootingResponse("general_help"); !strings.Contains(got, "Check tool selection") {
		t.Fatalf("unknown category should use the tool guide, got %q", got)
	}
}

func TestBuildLearningPathFallback(t *testing.T) {
	p := BuildLearningPath(Factors{UserSkillLevel: "expert", ArtisticDomain: "portrait"})
	if p.CurrentFocus[0] != "Perspective mastery" {
		t.Fatalf("expert should use the intermediate curriculum, got %v", p.CurrentFocus)
	}
	if !strings.Contains(p.PersonalizedNote, "portrait") {
		t.Fatalf("PersonalizedNote = %q", p.PersonalizedNote)
	}
}

// #endregion
