// Package classify derives categorical tags from raw prompt and response
// text via keyword heuristics. Every function is pure and total: unknown or
// empty input falls through to a default category, never an error.
package classify

import "strings"

// #region prompt-type

// PromptKind classifies the coarse intent of a prompt.
func PromptKind(prompt string) PromptType {
	lower := strings.ToLower(prompt)
	for _, row := range promptTypeTable {
		if containsAny(lower, row.terms) {
			return row.kind
		}
	}
	return PromptGeneral
}

// #endregion

// #region cognitive-complexity

// Complexity counts per-level indicator hits across prompt words and picks
// the dominant level. Ties resolve to the earliest level in table order, so
// an empty prompt classifies as basic.
func Complexity(prompt string) CognitiveComplexity {
	words := strings.Fields(strings.ToLower(prompt))
	hits := make(map[string]int, len(complexityTable))

	for _, row := range complexityTable {
		score := 0
		for _, w := range words {
			for _, ind := range row.terms {
				if strings.Contains(w, ind) {
					score++
					break
				}
			}
		}
		hits[row.name] = score
	}

	best := complexityTable[0].name
	for _, row := range complexityTable[1:] {
		if hits[row.name] > hits[best] {
			best = row.name
		}
	}

	return CognitiveComplexity{
		Level: best,
		Value: complexityValue[best],
		Hits:  hits,
	}
}

// #endregion

// #region semantic-depth

// Depth measures concept richness across a prompt/response pair.
func Depth(prompt, response string) SemanticDepth {
	promptLower := strings.ToLower(prompt)
	responseLower := strings.ToLower(response)

	promptConcepts := len(uniqueWords(promptLower))
	responseConcepts := len(uniqueWords(responseLower))

	vocabulary := 0
	for _, term := range artisticTerms {
		if strings.Contains(promptLower, term) || strings.Contains(responseLower, term) {
			vocabulary++
		}
	}

	return SemanticDepth{
		PromptConcepts:     promptConcepts,
		ResponseConcepts:   responseConcepts,
		ArtisticVocabulary: vocabulary,
		DepthScore:         (float64(vocabulary) + float64(responseConcepts)/10) / 2,
	}
}

// #endregion

// #region creative-elements

// Creativity counts creative indicators across a prompt/response pair.
// InnovationLevel normalizes the count to [0, 1] with a dampener of 3.
func Creativity(prompt, response string) CreativeElements {
	promptLower := strings.ToLower(prompt)
	responseLower := strings.ToLower(response)

	score := 0
	for _, ind := range creativeIndicators {
		if strings.Contains(promptLower, ind) || strings.Contains(responseLower, ind) {
			score++
		}
	}

	return CreativeElements{
		Score:           score,
		HasCreative:     score > 0,
		InnovationLevel: min(float64(score)/3, 1.0),
	}
}

// #endregion

// #region skill-level

// Skill infers the skill level a prompt asks for. Defaults to intermediate.
func Skill(prompt string) SkillLevel {
	lower := strings.ToLower(prompt)
	for _, row := range skillTable {
		if containsAny(lower, row.terms) {
			return row.level
		}
	}
	return SkillIntermediate
}

// SkillFromUsage buckets a user by historical usage count.
func SkillFromUsage(totalUses int) SkillLevel {
	switch {
	case totalUses < 5:
		return SkillBeginner
	case totalUses < 20:
		return SkillIntermediate
	case totalUses < 50:
		return SkillAdvanced
	default:
		return SkillExpert
	}
}

// #endregion

// #region concept-categories

// Concepts maps each matched category to the terms that matched it.
// Categories with no match are omitted.
func Concepts(prompt string) map[string][]string {
	lower := strings.ToLower(prompt)
	found := make(map[string][]string)
	for _, row := range conceptTable {
		var matched []string
		for _, term := range row.terms {
			if strings.Contains(lower, term) {
				matched = append(matched, term)
			}
		}
		if len(matched) > 0 {
			found[row.name] = matched
		}
	}
	return found
}

// #endregion

// #region learning-objectives

// Objectives lists every objective tag the prompt matches, in table order.
func Objectives(prompt string) []string {
	lower := strings.ToLower(prompt)
	var out []string
	for _, row := range objectiveTable {
		if containsAny(lower, row.terms) {
			out = append(out, row.name)
		}
	}
	return out
}

// #endregion

// #region multimodal

// Modalities lists the learning modalities a prompt activates.
func Modalities(prompt string) Multimodal {
	lower := strings.ToLower(prompt)
	var active []string
	for _, row := range modalityTable {
		if containsAny(lower, row.terms) {
			active = append(active, row.name)
		}
	}
	return Multimodal{
		ActiveModalities: active,
		Score:            len(active),
		IsMultimodal:     len(active) > 1,
	}
}

// #endregion

// #region contextual-relevance

// ContextFactors maps each matched situational factor to the terms that
// matched it.
func ContextFactors(prompt string) map[string][]string {
	lower := strings.ToLower(prompt)
	found := make(map[string][]string)
	for _, row := range contextFactorTable {
		var matched []string
		for _, term := range row.terms {
			if strings.Contains(lower, term) {
				matched = append(matched, term)
			}
		}
		if len(matched) > 0 {
			found[row.name] = matched
		}
	}
	return found
}

// #endregion

// #region training-category

// TrainingCategory picks the first dataset category matched by either the
// prompt or the response. Defaults to "general".
func TrainingCategory(prompt, response string) string {
	promptLower := strings.ToLower(prompt)
	responseLower := strings.ToLower(response)
	for _, row := range trainingCategoryTable {
		for _, term := range row.terms {
			if strings.Contains(promptLower, term) || strings.Contains(responseLower, term) {
				return row.name
			}
		}
	}
	return "general"
}

// #endregion

// #region technique-complexity

// TechniqueComplexity scores technical difficulty 1-5. Explicit level words
// win; otherwise named techniques bump the score, defaulting to 2.
func TechniqueComplexity(prompt string) int {
	lower := strings.ToLower(prompt)

	levels := []struct {
		name  string
		score int
	}{
		{"basic", 1}, {"intermediate", 2}, {"advanced", 3}, {"expert", 4}, {"professional", 5},
	}
	for _, l := range levels {
		if strings.Contains(lower, l.name) {
			return l.score
		}
	}

	if containsAny(lower, []string{"fibonacci", "golden ratio", "chiaroscuro", "sfumato"}) {
		return 5
	}
	if containsAny(lower, []string{"perspective", "composition", "blending"}) {
		return 3
	}
	return 2
}

// #endregion

// #region cultural-context

// Cultures lists every cultural tradition the prompt references.
func Cultures(prompt string) []string {
	lower := strings.ToLower(prompt)
	var found []string
	for _, row := range culturalTable {
		if containsAny(lower, row.terms) {
			found = append(found, row.name)
		}
	}
	return found
}

// #endregion

// #region mathematical-patterns

// MathPatterns lists mathematical constructions referenced by the prompt.
// A pattern matches when any underscore-separated part of its name appears.
func MathPatterns(prompt string) []MathPattern {
	lower := strings.ToLower(prompt)
	var found []MathPattern
	for _, p := range mathTable {
		if containsAny(lower, strings.Split(p.Pattern, "_")) {
			found = append(found, p)
		}
	}
	return found
}

// #endregion

// #region professional-level

// ProfessionalLevel estimates the professional register of a response from
// indicator phrases and long-word density.
func ProfessionalLevel(response string) string {
	lower := strings.ToLower(response)

	technicalDepth := 0
	for _, w := range strings.Fields(response) {
		if len(w) > 8 {
			technicalDepth++
		}
	}

	professionalTerms := 0
	for _, ind := range professionalIndicators {
		if strings.Contains(lower, ind) {
			professionalTerms++
		}
	}

	switch {
	case professionalTerms > 2 || technicalDepth > 20:
		return "professional"
	case professionalTerms > 0 || technicalDepth > 10:
		return "advanced"
	default:
		return "intermediate"
	}
}

// #endregion

// #region artistic-movement

// Movement classifies the artistic movement a prompt references.
// Defaults to "contemporary".
func Movement(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, row := range movementTable {
		if containsAny(lower, row.terms) {
			return row.name
		}
	}
	return "contemporary"
}

// #endregion

// #region scientific-accuracy

// ScientificAccuracy grades how much precision a response commits to.
func ScientificAccuracy(response string) string {
	lower := strings.ToLower(response)
	score := 0
	for _, term := range scientificTerms {
		if strings.Contains(lower, term) {
			score++
		}
	}
	switch {
	case score >= 3:
		return "high_precision"
	case score >= 1:
		return "moderate_precision"
	default:
		return "artistic_interpretation"
	}
}

// #endregion

// #region response-quality

// ResponseQuality blends the user rating with response-shape penalties and
// clamps to [1, 5]. A zero rating counts as neutral (3).
func ResponseQuality(response string, rating int) float64 {
	quality := float64(rating)
	if rating == 0 {
		quality = 3
	}

	if len(response) < 50 {
		quality -= 0.5
	} else if len(response) > 1000 {
		quality -= 0.3
	}

	lower := strings.ToLower(response)
	if strings.Contains(lower, "error") || strings.Contains(lower, "failed") {
		quality -= 1.0
	}

	return max(1, min(5, quality))
}

// #endregion

// #region learning-context

// Context infers the learning intent behind a prompt.
func Context(prompt string) LearningContext {
	lower := strings.ToLower(prompt)
	for _, row := range learningContextTable {
		if containsAny(lower, row.terms) {
			return row.ctx
		}
	}
	return ContextGeneralInquiry
}

// #endregion

// #region artistic-domain

// Domain identifies the artistic domain of a prompt. Defaults to "general".
func Domain(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, row := range domainTable {
		if containsAny(lower, row.terms) {
			return row.name
		}
	}
	return "general"
}

// #endregion

// #region helpers

func containsAny(haystack string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}

func uniqueWords(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		set[w] = struct{}{}
	}
	return set
}

// #endregion
