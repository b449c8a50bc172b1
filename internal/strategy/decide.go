package strategy

import (
	"fmt"
	"strings"
)

// #region evidence

// Example is a successful training example offered as model context.
type Example struct {
	Prompt   string
	Response string
	Rating   int
	Category string
}

// SemanticMatch is a ranked training match with its score breakdown.
type SemanticMatch struct {
	Prompt        string
	Response      string
	WordScore     float64
	SemanticScore float64
	ContextScore  float64
	Total         float64
}

// Evidence is the training-data side of the decision: what the feedback
// store knows about this prompt. The caller assembles it.
type Evidence struct {
	HasExactMatch    bool
	ExactResponse    string
	HasSimilarMatch  bool
	Confidence       float64
	SemanticMatches  []SemanticMatch
	RelevantExamples []Example
	CreativeExamples []Example
}

// #endregion

// #region decision

// Names for the six decision branches.
const (
	StrategyTrainingEnhanced       = "training_enhanced"
	StrategyTrainingCultural       = "training_cultural"
	StrategyTrainingTroubleshoot   = "training_troubleshooting"
	StrategyModelTroubleshoot      = "openai_troubleshooting"
	StrategyHybridCreative         = "hybrid_creative"
	StrategyModelCreative          = "openai_creative"
	StrategySemanticHybrid         = "semantic_hybrid"
	StrategyModelSkillAdapted      = "openai_skill_adapted"
)

// Decision is the routing verdict. Response is set when the answer comes
// from learned data or a template; otherwise SystemMessage and UserMessage
// carry the composed model request.
type Decision struct {
	Strategy        string
	Response        string
	SystemMessage   string
	UserMessage     string
	TrainingContext string
	LearningPath    *LearningPath
	Confidence      float64
	Reason          string
	ImmersionLevel  string
	ContextApplied  []string
}

// NeedsModel reports whether the decision requires a language model call.
func (d Decision) NeedsModel() bool {
	return strings.HasPrefix(d.Strategy, "openai_") || strings.HasPrefix(d.Strategy, "hybrid_") || d.Strategy == StrategySemanticHybrid
}

// #endregion

// #region decide

// Decide routes a prompt through the branch ladder. The prompt is expected
// lowercased and trimmed; evidence comes from the feedback store.
func Decide(f Factors, ev Evidence, prompt, featureType string, user UserInfo) Decision {
	// Branch 1: exact learned answer, personalized.
	if ev.HasExactMatch {
		return Decision{
			Strategy:       StrategyTrainingEnhanced,
			Response:       PersonalizeResponse(ev.ExactResponse, f, user),
			Confidence:     1.0,
			Reason:         fmt.Sprintf("Perfect match with personalization for %s level", f.UserSkillLevel),
			ImmersionLevel: "high",
			ContextApplied: []string{"exact_match", "personalized", "skill_adapted"},
		}
	}

	// Branch 2: advanced technique answered from the store, framed with
	// cultural context.
	if f.IsAdvancedTechnique && ev.Confidence > 0.25 && len(ev.RelevantExamples) > 0 {
		return Decision{
			Strategy:       StrategyTrainingCultural,
			Response:       AddCulturalContext(ev.RelevantExamples[0].Response, f.TechniqueCategory),
			Confidence:     ev.Confidence,
			Reason:         fmt.Sprintf("Advanced %s technique with cultural context", f.TechniqueCategory),
			ImmersionLevel: "very_high",
			ContextApplied: []string{"advanced_technique", "cultural_context", "historical_depth"},
		}
	}

	// Branch 3: troubleshooting, templated when confident, otherwise
	// handed to the model.
	if f.IsTroubleshooting {
		confidence := solutionConfidence(f, ev, prompt)
		if confidence > 0.7 {
			return Decision{
				Strategy:       StrategyTrainingTroubleshoot,
				Response:       TroubleshootingResponse(f.TroubleshootingCategory),
				Confidence:     confidence,
				Reason:         fmt.Sprintf("Known %s issue with guided solution", f.TroubleshootingCategory),
				ImmersionLevel: "high",
				ContextApplied: []string{"troubleshooting", "step_by_step", "user_guided"},
			}
		}
		return Decision{
			Strategy:       StrategyModelTroubleshoot,
			SystemMessage:  troubleshootingSystemMessage(f),
			UserMessage:    fmt.Sprintf("TROUBLESHOOT %s: %s", f.TroubleshootingCategory, prompt),
			Confidence:     0.8,
			Reason:         "Novel troubleshooting requiring AI analysis",
			ImmersionLevel: "medium",
			ContextApplied: []string{"ai_analysis", "problem_solving"},
		}
	}

	// Branch 4: creative request or a sufficiently complex prompt.
	if f.IsCreativeRequest || f.PromptComplexity >= 3.5 {
		if f.PersonalizationScore > 0.6 {
			return Decision{
				Strategy:        StrategyHybridCreative,
				SystemMessage:   personalizedCreativeSystemMessage(f, featureType),
				UserMessage:     prompt,
				TrainingContext: CreativeTrainingContext(ev.CreativeExamples),
				Confidence:      0.9,
				Reason:          fmt.Sprintf("Personalized creative guidance for %s expression", f.CreativeCategory),
				ImmersionLevel:  "very_high",
				ContextApplied:  []string{"creative_expression", "personalized", "style_guidance"},
			}
		}
		return Decision{
			Strategy:       StrategyModelCreative,
			SystemMessage:  creativeSystemMessage(featureType),
			UserMessage:    prompt,
			Confidence:     0.85,
			Reason:         "Creative request requiring artistic flexibility",
			ImmersionLevel: "high",
			ContextApplied: []string{"creative", "artistic_freedom"},
		}
	}

	// Branch 5: similar learned material plus a learning path.
	if ev.HasSimilarMatch && ev.Confidence > 0.3 {
		matches := ev.SemanticMatches
		if len(matches) > 3 {
			matches = matches[:3]
		}
		path := BuildLearningPath(f)
		return Decision{
			Strategy:        StrategySemanticHybrid,
			SystemMessage:   semanticHybridSystemMessage(f),
			TrainingContext: FormatSemanticContext(matches),
			LearningPath:    &path,
			Confidence:      0.88,
			Reason:          fmt.Sprintf("Semantic matching with %d examples and learning path", len(matches)),
			ImmersionLevel:  "very_high",
			ContextApplied:  []string{"semantic_matching", "learning_path", "skill_progression"},
		}
	}

	// Branch 6: skill-adapted general request.
	return Decision{
		Strategy:       StrategyModelSkillAdapted,
		SystemMessage:  skillAdaptedSystemMessage(f, featureType),
		UserMessage:    AdaptMessageToSkill(prompt, f),
		Confidence:     0.75,
		Reason:         fmt.Sprintf("Skill-adapted response for %s level", f.UserSkillLevel),
		ImmersionLevel: "high",
		ContextApplied: []string{"skill_adaptation", "domain_specific"},
	}
}

// solutionConfidence estimates whether the guided templates can resolve a
// troubleshooting prompt without a model call.
func solutionConfidence(f Factors, ev Evidence, prompt string) float64 {
	total := ev.Confidence * 0.8
	if ev.HasExactMatch {
		total += 1.0
	}
	for _, word := range []string{"tool", "brush", "canvas", "color"} {
		if strings.Contains(prompt, word) {
			total += 0.7
			break
		}
	}
	if f.UserSkillLevel == "beginner" || f.UserSkillLevel == "intermediate" {
		total += 0.6
	} else {
		total += 0.3
	}
	return min(total, 1.0)
}

// #endregion
