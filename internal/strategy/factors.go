// Package strategy decides how an incoming prompt should be answered:
// from learned responses, from templates, or by handing a composed
// message pair to the language model. Branches are evaluated in a fixed
// priority order and the first applicable one wins.
package strategy

import (
	"strings"

	"github.com/atelierhq/atelier/internal/classify"
)

// #region user

// UserInfo is the slice of account state the selector reads.
type UserInfo struct {
	TotalUses     int
	Premium       bool
	SavedDrawings int
}

// #endregion

// #region tables

type categoryTable struct {
	category string
	keywords []string
}

// Order matters: detection is first-match-wins.
var advancedTechniqueTable = []categoryTable{
	{"mathematical", []string{"fibonacci", "golden ratio", "fractal", "sacred geometry"}},
	{"classical", []string{"chiaroscuro", "sfumato", "impasto", "atmospheric perspective"}},
	{"cultural", []string{"mandala", "celtic knot", "chinese brush", "japanese wave"}},
	{"modern", []string{"pointillism", "cubism", "art nouveau", "abstract"}},
	{"technical", []string{"isometric", "perspective", "anatomical", "architectural"}},
}

var troubleshootingTable = []categoryTable{
	{"tool_issues", []string{"tool", "brush", "pencil", "eraser", "not working"}},
	{"technical_problems", []string{"canvas", "layer", "color", "save", "load"}},
	{"drawing_difficulties", []string{"proportions", "perspective", "shading", "blending"}},
	{"general_help", []string{"help", "problem", "issue", "error", "fix", "trouble"}},
}

var creativeTable = []categoryTable{
	{"original_creation", []string{"creative", "unique", "original", "new", "invent"}},
	{"artistic_expression", []string{"artistic", "expressive", "emotional", "mood"}},
	{"experimental", []string{"experimental", "abstract", "unconventional", "mixed"}},
	{"stylistic", []string{"style", "stylized", "interpretation", "version"}},
}

func matchCategory(table []categoryTable, prompt string) (string, bool) {
	for _, row := range table {
		for _, kw := range row.keywords {
			if strings.Contains(prompt, kw) {
				return row.category, true
			}
		}
	}
	return "", false
}

// #endregion

// #region factors

// ImmersionFactors quantify how strongly the prompt and account history
// pull toward a rich, personalized reply.
type ImmersionFactors struct {
	EmotionalEngagement float64
	DetailSeeking       float64
	PersonalConnection  float64
	ChallengeLevel      float64
	UserEngagement      float64
}

// SessionContext is derived account engagement state.
type SessionContext struct {
	SessionLength   int
	IsReturningUser bool
	HasPremium      bool
	EngagementLevel string
}

// Factors is everything the decision branches look at. Training-match
// evidence is filled in separately by the caller.
type Factors struct {
	UserSkillLevel          string
	LearningContext         classify.LearningContext
	ArtisticDomain          string
	IsAdvancedTechnique     bool
	TechniqueCategory       string
	IsTroubleshooting       bool
	TroubleshootingCategory string
	IsCreativeRequest       bool
	CreativeCategory        string
	PromptComplexity        float64
	Immersion               ImmersionFactors
	PersonalizationScore    float64
	Session                 SessionContext
}

// BuildFactors derives all prompt- and account-side decision factors.
// The prompt is expected lowercased and trimmed.
func BuildFactors(prompt string, user UserInfo) Factors {
	f := Factors{
		UserSkillLevel:       string(classify.SkillFromUsage(user.TotalUses)),
		LearningContext:      classify.Context(prompt),
		ArtisticDomain:       classify.Domain(prompt),
		PromptComplexity:     promptComplexity(prompt),
		Immersion:            immersionFactors(prompt, user),
		PersonalizationScore: personalizationScore(user),
		Session:              sessionContext(user),
	}

	if cat, ok := matchCategory(advancedTechniqueTable, prompt); ok {
		f.IsAdvancedTechnique = true
		f.TechniqueCategory = cat
	}
	if cat, ok := matchCategory(troubleshootingTable, prompt); ok {
		f.IsTroubleshooting = true
		f.TroubleshootingCategory = cat
	}
	if cat, ok := matchCategory(creativeTable, prompt); ok {
		f.IsCreativeRequest = true
		f.CreativeCategory = cat
	}
	return f
}

func promptComplexity(prompt string) float64 {
	words := strings.Fields(prompt)

	wordCount := min(float64(len(words))/3, 2.0)
	technical := 0.0
	subjects := 0.0
	detail := 0.0
	for _, w := range words {
		if len(w) > 8 {
			technical += 0.5
		}
		switch w {
		case "and", "with", "plus", "also":
			subjects += 0.3
		case "detailed", "realistic", "accurate", "professional":
			detail += 0.4
		}
	}
	return min(wordCount+technical+subjects+detail, 5.0)
}

func immersionFactors(prompt string, user UserInfo) ImmersionFactors {
	words := strings.Fields(prompt)
	count := func(vocab ...string) float64 {
		n := 0.0
		for _, w := range words {
			for _, v := range vocab {
				if w == v {
					n++
				}
			}
		}
		return n
	}

	return ImmersionFactors{
		EmotionalEngagement: count("love", "beautiful", "amazing", "inspire") * 0.2,
		DetailSeeking:       count("detailed", "realistic", "accurate") * 0.3,
		PersonalConnection:  count("my", "personal", "own", "custom") * 0.25,
		ChallengeLevel:      min(float64(len(words))/10, 0.3),
		UserEngagement:      min(float64(user.TotalUses)/20, 0.4),
	}
}

func personalizationScore(user UserInfo) float64 {
	score := min(float64(user.TotalUses)/30, 0.4)
	if user.Premium {
		score += 0.3
	} else {
		score += 0.1
	}
	if user.SavedDrawings > 0 {
		score += 0.2
	}
	return score + 0.1
}

func sessionContext(user UserInfo) SessionContext {
	engagement := "new"
	if user.TotalUses > 5 {
		engagement = "high"
	}
	return SessionContext{
		SessionLength:   min(user.TotalUses, 10),
		IsReturningUser: user.TotalUses > 1,
		HasPremium:      user.Premium,
		EngagementLevel: engagement,
	}
}

// #endregion
