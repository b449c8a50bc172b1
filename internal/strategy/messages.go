package strategy

import (
	"fmt"
	"strings"
)

// #region personalization

// PersonalizeResponse wraps a learned response with a skill-matched intro
// and encouragement when the personalization score justifies it.
func PersonalizeResponse(response string, f Factors, user UserInfo) string {
	if f.PersonalizationScore <= 0.6 {
		return response
	}

	userName := "fellow artist"
	if user.Premium {
		userName = "creative professional"
	}
	intro := fmt.Sprintf("🎨 Hey %s! Based on your %s level experience, here's a tailored approach:\n\n", userName, f.UserSkillLevel)

	var encouragement string
	switch f.UserSkillLevel {
	case "beginner":
		encouragement = "\n\n🌟 Remember: Every master was once a beginner. You're doing great!"
	case "intermediate":
		encouragement = "\n\n💪 You're developing solid skills! Ready for the next challenge?"
	default:
		encouragement = "\n\n🚀 Your advanced skills show - time to push creative boundaries!"
	}

	return intro + response + encouragement
}

// #endregion

// #region cultural-context

type culturalContext struct {
	intro   string
	history string
	modern  string
}

var culturalContexts = map[string]culturalContext{
	"mathematical": {
		intro:   "🔢 Mathematical art connects us to ancient wisdom:",
		history: "From Islamic geometric patterns to Renaissance golden ratio studies",
		modern:  "Today's digital artists still use these timeless principles",
	},
	"classical": {
		intro:   "🏛️ Classical techniques from the masters:",
		history: "Developed during Renaissance and Baroque periods",
		modern:  "These methods remain essential for contemporary realism",
	},
	"cultural": {
		intro:   "🌍 Cultural art forms carry deep meaning:",
		history: "Passed down through generations, each symbol tells a story",
		modern:  "Respecting traditions while adding your personal voice",
	},
}

// AddCulturalContext frames a learned response with historical context for
// the matched technique category. Categories without a frame pass through.
func AddCulturalContext(response, techniqueCategory string) string {
	ctx, ok := culturalContexts[techniqueCategory]
	if !ok {
		return response
	}
	return fmt.Sprintf("%s\n\n%s\n\n📚 **Cultural Note:** %s. %s.", ctx.intro, response, ctx.history, ctx.modern)
}

// #endregion

// #region troubleshooting

type troubleshootingTemplate struct {
	intro string
	steps []string
	outro string
}

var troubleshootingTemplates = map[string]troubleshootingTemplate{
	"tool_issues": {
		intro: "🔧 Let's get your tools working perfectly!",
		steps: []string{
			"1. Check tool selection (should be highlighted in blue)",
			"2. Verify brush size is > 1 pixel",
			"3. Ensure canvas is active (click on it once)",
			"4. Try refreshing the page if issues persist",
		},
		outro: "💡 Pro tip: Save your work frequently to prevent data loss!",
	},
	"technical_problems": {
		intro: "⚡ Technical issues? Let's solve this step-by-step:",
		steps: []string{
			"1. Check browser compatibility (Chrome/Firefox recommended)",
			"2. Clear cache and reload the page",
			"3. Disable browser extensions temporarily",
			"4. Try incognito/private browsing mode",
		},
		outro: "🌐 If problems persist, try a different browser or device.",
	},
	"drawing_difficulties": {
		intro: "🎨 Drawing challenges are part of the journey!",
		steps: []string{
			"1. Break complex subjects into simple shapes",
			"2. Use reference images for guidance",
			"3. Practice the specific technique daily for 10 minutes",
			"4. Don't aim for perfection - aim for progress",
		},
		outro: "🌟 Remember: Every expert was once a beginner. Keep practicing!",
	},
}

// TroubleshootingResponse renders the guided-solution template for a
// category. Unknown categories fall back to the tool guide.
func TroubleshootingResponse(category string) string {
	tpl, ok := troubleshootingTemplates[category]
	if !ok {
		tpl = troubleshootingTemplates["tool_issues"]
	}

	var b strings.Builder
	b.WriteString(tpl.intro)
	b.WriteString("\n\n")
	for _, step := range tpl.steps {
		b.WriteString(step)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(tpl.outro)
	return b.String()
}

func troubleshootingSystemMessage(f Factors) string {
	parts := []string{"You are an expert technical support specialist for digital drawing applications."}
	if f.TroubleshootingCategory != "" {
		parts = append(parts, fmt.Sprintf("Focus on %s issues.", strings.ReplaceAll(f.TroubleshootingCategory, "_", " ")))
	}
	if f.UserSkillLevel == "beginner" {
		parts = append(parts, "Use simple, non-technical language suitable for beginners.")
	}
	parts = append(parts,
		"Provide step-by-step solutions with encouraging tone.",
		"Include preventive tips to avoid future issues.")
	return strings.Join(parts, " ")
}

// #endregion

// #region creative

func personalizedCreativeSystemMessage(f Factors, featureType string) string {
	creative := f.CreativeCategory
	if creative == "" {
		creative = "general"
	}
	msg := fmt.Sprintf("You are an inspiring art instructor helping a %s level artist. Focus on %s in %s art. Encourage experimentation while providing practical guidance.",
		f.UserSkillLevel, creative, f.ArtisticDomain)
	if featureType == "premium" {
		msg += " Include professional techniques and industry insights."
	}
	return msg
}

func creativeSystemMessage(featureType string) string {
	msg := "You are a creative drawing instructor who inspires artistic expression. Encourage experimentation and provide multiple creative approaches."
	if featureType == "premium" {
		msg += " Include advanced artistic techniques and professional insights."
	}
	return msg
}

// CreativeTrainingContext formats successful creative examples, or a
// default inspiration line when none exist.
func CreativeTrainingContext(examples []Example) string {
	if len(examples) == 0 {
		return "Draw inspiration from your creative vision and artistic intuition."
	}

	var b strings.Builder
	b.WriteString("Creative inspiration from successful examples:\n\n")
	for i, ex := range examples {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "Example %d (%s):\n", i+1, ex.Category)
		fmt.Fprintf(&b, "Challenge: %s\n", ex.Prompt)
		fmt.Fprintf(&b, "Approach: %s...\n\n", truncate(ex.Response, 150))
	}
	return b.String()
}

// #endregion

// #region semantic-hybrid

func semanticHybridSystemMessage(f Factors) string {
	return fmt.Sprintf(`You are an expert art instructor with access to a comprehensive training database.

User Context:
- Skill Level: %s
- Artistic Domain: %s
- Learning Context: %s

Instructions:
1. Build upon the provided training examples
2. Adapt complexity to user's skill level
3. Include practical exercises
4. Provide encouraging, personalized guidance
5. Connect concepts to broader artistic knowledge`,
		f.UserSkillLevel, f.ArtisticDomain, f.LearningContext)
}

// FormatSemanticContext renders ranked matches with their per-component
// similarity scores for the model prompt.
func FormatSemanticContext(matches []SemanticMatch) string {
	if len(matches) == 0 {
		return "No relevant training examples found."
	}

	var b strings.Builder
	b.WriteString("Relevant training examples (with similarity analysis):\n\n")
	for i, m := range matches {
		fmt.Fprintf(&b, "Example %d (Similarity: %.2f):\n", i+1, m.Total)
		fmt.Fprintf(&b, "Q: %s\n", m.Prompt)
		fmt.Fprintf(&b, "A: %s...\n", truncate(m.Response, 200))
		fmt.Fprintf(&b, "Word: %.2f Semantic: %.2f Context: %.2f\n\n", m.WordScore, m.SemanticScore, m.ContextScore)
	}
	return b.String()
}

// #endregion

// #region learning-path

// LearningPath is a staged curriculum suggestion.
type LearningPath struct {
	CurrentFocus     []string
	NextGoals        []string
	LongTerm         []string
	PersonalizedNote string
}

var learningPathStages = map[string][3][]string{
	"beginner": {
		{"Basic shapes", "Line quality", "Simple shading"},
		{"Form and volume", "Color basics", "Composition"},
		{"Advanced techniques", "Personal style", "Complex subjects"},
	},
	"intermediate": {
		{"Perspective mastery", "Advanced shading", "Color harmony"},
		{"New mediums", "Different styles", "Complex compositions"},
		{"Professional techniques", "Personal projects", "Teaching others"},
	},
	"advanced": {
		{"Master-level techniques", "Artistic voice", "Innovation"},
		{"Cross-medium work", "Concept development", "Art business"},
		{"Teaching", "Original research", "Art leadership"},
	},
}

// BuildLearningPath returns the staged curriculum for a skill level.
// Levels without a dedicated curriculum use the intermediate one.
func BuildLearningPath(f Factors) LearningPath {
	stages, ok := learningPathStages[f.UserSkillLevel]
	if !ok {
		stages = learningPathStages["intermediate"]
	}
	return LearningPath{
		CurrentFocus:     stages[0],
		NextGoals:        stages[1],
		LongTerm:         stages[2],
		PersonalizedNote: fmt.Sprintf("Tailored for %s level in %s art", f.UserSkillLevel, f.ArtisticDomain),
	}
}

// #endregion

// #region skill-adapted

var skillAdaptations = map[string]string{
	"beginner":     "Please provide step-by-step beginner guidance for: ",
	"intermediate": "Help me improve my technique for: ",
	"advanced":     "Share advanced insights and techniques for: ",
	"expert":       "Discuss professional-level approaches to: ",
}

// AdaptMessageToSkill rewrites the user message for the model based on
// skill level and domain.
func AdaptMessageToSkill(prompt string, f Factors) string {
	adapted := skillAdaptations[f.UserSkillLevel] + prompt
	if f.ArtisticDomain != "general" {
		adapted += fmt.Sprintf(" in %s art", f.ArtisticDomain)
	}
	return adapted
}

var skillInstructions = map[string]string{
	"beginner":     "Use simple language, provide step-by-step instructions, encourage experimentation without fear of mistakes.",
	"intermediate": "Provide detailed techniques, suggest practice exercises, explain the 'why' behind methods.",
	"advanced":     "Share sophisticated techniques, discuss artistic theory, challenge with complex concepts.",
	"expert":       "Engage in professional-level discussion, share industry insights, focus on innovation and mastery.",
}

func skillAdaptedSystemMessage(f Factors, featureType string) string {
	instr, ok := skillInstructions[f.UserSkillLevel]
	if !ok {
		instr = skillInstructions["intermediate"]
	}
	msg := "You are an expert art instructor. " + instr
	if f.ArtisticDomain != "general" {
		msg += fmt.Sprintf(" Specialize your advice for %s art.", f.ArtisticDomain)
	}
	if featureType == "premium" {
		msg += " Include professional tips and advanced techniques."
	}
	return msg
}

// #endregion

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
