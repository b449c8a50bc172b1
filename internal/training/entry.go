// Package training is the feedback-learning core: it records rated
// interactions with their full analytical profile, keeps a cache of
// proven responses, drives the adaptive learning maps, and routes new
// prompts to a response strategy.
package training

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/classify"
)

// #region entry

// Entry is one recorded interaction with every derived dimension
// attached at collection time.
type Entry struct {
	Timestamp    time.Time
	SessionID    string
	Prompt       string
	Response     string
	Rating       int
	Correction   string
	ResponseTime time.Duration

	PromptType      classify.PromptType
	ResponseQuality float64

	Complexity       classify.CognitiveComplexity
	SemanticDepth    classify.SemanticDepth
	CreativeElements classify.CreativeElements
	SkillLevel       classify.SkillLevel
	Concepts         map[string][]string
	Objectives       []string
	Multimodal       classify.Multimodal
	ContextFactors   map[string][]string

	TrainingCategory    string
	TechniqueComplexity int
	CulturalContext     []string
	MathElements        []classify.MathPattern
	ProfessionalLevel   string
	ArtisticMovement    string
	ScientificAccuracy  string
}

// NewEntry analyzes one interaction across every classifier dimension.
// The prompt is normalized to lowercase with surrounding space removed.
func NewEntry(prompt, response string, rating int, correction string, responseTime time.Duration) Entry {
	normalized := strings.ToLower(strings.TrimSpace(prompt))

	return Entry{
		Timestamp:    time.Now(),
		SessionID:    uuid.NewString(),
		Prompt:       normalized,
		Response:     response,
		Rating:       rating,
		Correction:   correction,
		ResponseTime: responseTime,

		PromptType:      classify.PromptKind(prompt),
		ResponseQuality: classify.ResponseQuality(response, rating),

		Complexity:       classify.Complexity(prompt),
		SemanticDepth:    classify.Depth(prompt, response),
		CreativeElements: classify.Creativity(prompt, response),
		SkillLevel:       classify.Skill(prompt),
		Concepts:         classify.Concepts(prompt),
		Objectives:       classify.Objectives(prompt),
		Multimodal:       classify.Modalities(prompt),
		ContextFactors:   classify.ContextFactors(prompt),

		TrainingCategory:    classify.TrainingCategory(prompt, response),
		TechniqueComplexity: classify.TechniqueComplexity(prompt),
		CulturalContext:     classify.Cultures(prompt),
		MathElements:        classify.MathPatterns(prompt),
		ProfessionalLevel:   classify.ProfessionalLevel(response),
		ArtisticMovement:    classify.Movement(prompt),
		ScientificAccuracy:  classify.ScientificAccuracy(response),
	}
}

// Successful reports whether the user rated this interaction a success.
func (e Entry) Successful() bool { return e.Rating >= 4 }

// Failed reports whether the user rated this interaction a failure.
func (e Entry) Failed() bool { return e.Rating <= 2 }

// #endregion
