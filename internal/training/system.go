package training

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/atelierhq/atelier/internal/learning"
	"github.com/atelierhq/atelier/internal/similarity"
	"github.com/atelierhq/atelier/internal/strategy"
)

// #region system

// Archiver persists collected entries outside the process. Archival is
// best effort; failures are logged, never surfaced to the caller.
type Archiver interface {
	SaveTrainingData(ctx context.Context, userID, prompt, response string, rating int, correction string) error
}

// System is the feedback-learning facade. All access to the store, the
// metrics, and the learning maps is serialized through its lock.
type System struct {
	mu       sync.Mutex
	store    *Store
	metrics  Metrics
	maps     *learning.Maps
	archiver Archiver
	log      *slog.Logger
}

// NewSystem returns a ready system. archiver may be nil to disable
// persistence.
func NewSystem(archiver Archiver, log *slog.Logger) *System {
	if log == nil {
		log = slog.Default()
	}
	return &System{
		store:    NewStore(),
		maps:     learning.NewMaps(),
		archiver: archiver,
		log:      log.With("component", "training"),
	}
}

// #endregion

// #region collect

// Collect records one rated interaction: the entry is analyzed, logged,
// cached when successful, folded into the metrics and every learning
// map, and archived.
func (s *System) Collect(ctx context.Context, prompt, response string, rating int, correction string, responseTime time.Duration) Entry {
	entry := NewEntry(prompt, response, rating, correction, responseTime)

	s.mu.Lock()
	s.store.Add(entry)
	s.store.CacheResponse(entry.Prompt, entry.Response, entry.Rating)
	s.metrics.Observe(entry)
	s.maps.Update(learning.Observation{
		Timestamp:         entry.Timestamp,
		SessionID:         entry.SessionID,
		Prompt:            entry.Prompt,
		Response:          entry.Response,
		Rating:            entry.Rating,
		Correction:        entry.Correction,
		SkillLevel:        string(entry.SkillLevel),
		ConceptCategories: entry.Concepts,
		ComplexityLevel:   entry.Complexity.Level,
	})
	s.mu.Unlock()

	if s.archiver != nil {
		if err := s.archiver.SaveTrainingData(ctx, "system", prompt, response, rating, correction); err != nil {
			s.log.Warn("training archive failed", "error", err)
		}
	}
	return entry
}

// CacheSuccessfulResponse stores a proven answer for exact-match reuse.
func (s *System) CacheSuccessfulResponse(prompt, response string, rating int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.CacheResponse(prompt, response, rating)
}

// CachedSuggestion returns the proven answer for an exact prompt, with a
// note that it came from learned feedback.
func (s *System) CachedSuggestion(prompt string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, ok := s.store.CachedExact(prompt)
	if !ok {
		return "", false
	}
	return cached.Response + "<br><br>💡 <em>This suggestion was improved based on user feedback!</em>", true
}

// #endregion

// #region strategy

// DetermineStrategy routes a prompt through the decision branches using
// everything the system has learned so far.
func (s *System) DetermineStrategy(prompt, featureType string, user strategy.UserInfo) strategy.Decision {
	normalized := strings.ToLower(strings.TrimSpace(prompt))
	factors := strategy.BuildFactors(normalized, user)

	s.mu.Lock()
	ev := s.gatherEvidence(normalized, factors)
	s.mu.Unlock()

	return strategy.Decide(factors, ev, normalized, featureType, user)
}

// gatherEvidence assembles the training-data side of the decision.
// Callers hold the lock.
func (s *System) gatherEvidence(prompt string, factors strategy.Factors) strategy.Evidence {
	var ev strategy.Evidence

	if cached, ok := s.store.CachedExact(prompt); ok {
		ev.HasExactMatch = true
		ev.ExactResponse = cached.Response
		ev.Confidence = 1.0
	} else {
		candidates := make([]similarity.Candidate, 0, s.store.Len())
		for _, e := range s.store.Entries() {
			candidates = append(candidates, similarity.Candidate{
				Prompt:              e.Prompt,
				Response:            e.Response,
				Rating:              e.Rating,
				SkillLevel:          string(e.SkillLevel),
				TrainingCategory:    e.TrainingCategory,
				TechniqueComplexity: e.TechniqueComplexity,
			})
		}
		q := similarity.QueryContext{
			SkillLevel:        factors.UserSkillLevel,
			ArtisticDomain:    factors.ArtisticDomain,
			AdvancedTechnique: factors.IsAdvancedTechnique,
		}
		matches := similarity.Rank(prompt, q, candidates, similarity.MatchThreshold)
		if len(matches) > 0 {
			ev.HasSimilarMatch = true
			ev.Confidence = matches[0].Total
			if len(matches) > 5 {
				matches = matches[:5]
			}
			for _, m := range matches {
				ev.SemanticMatches = append(ev.SemanticMatches, strategy.SemanticMatch{
					Prompt:        m.Candidate.Prompt,
					Response:      m.Candidate.Response,
					WordScore:     m.WordScore,
					SemanticScore: m.SemanticScore,
					ContextScore:  m.ContextScore,
					Total:         m.Total,
				})
			}
		}
	}

	for _, sp := range s.store.FindSimilar(prompt, 0.2, 2) {
		ev.RelevantExamples = append(ev.RelevantExamples, strategy.Example{
			Prompt:   sp.Prompt,
			Response: sp.Response,
			Rating:   sp.Rating,
		})
	}

	for _, e := range s.store.Entries() {
		if e.CreativeElements.HasCreative && e.Successful() {
			ev.CreativeExamples = append(ev.CreativeExamples, strategy.Example{
				Prompt:   e.Prompt,
				Response: e.Response,
				Rating:   e.Rating,
				Category: e.TrainingCategory,
			})
			if len(ev.CreativeExamples) == 3 {
				break
			}
		}
	}
	return ev
}

// #endregion

// #region reports

// AnalyzeFeedbackPatterns aggregates the training log.
func (s *System) AnalyzeFeedbackPatterns() FeedbackAnalysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analyzeFeedback(s.store, s.metrics)
}

// ExportInsights produces the full exportable report.
func (s *System) ExportInsights() Insights {
	s.mu.Lock()
	defer s.mu.Unlock()

	analysis := analyzeFeedback(s.store, s.metrics)
	return Insights{
		GeneratedAt:       time.Now(),
		SystemPerformance: analysis,
		Recommendations:   systemRecommendations(analysis),
		DataQualityScore:  dataQualityScore(s.store),
	}
}

// PerformanceMetrics returns a copy of the running ledger.
func (s *System) PerformanceMetrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// IntelligenceMetrics sizes the learned aggregates for status reporting.
type IntelligenceMetrics struct {
	SemanticUnderstandingDepth int `json:"semantic_understanding_depth"`
	SkillProgressionUsers      int `json:"skill_progression_users"`
	LearningPathwaysDeveloped  int `json:"learning_pathways_developed"`
	ContextualMemoryPatterns   int `json:"contextual_memory_patterns"`
	AdaptiveDifficultyLevels   int `json:"adaptive_difficulty_levels"`
}

func (s *System) Intelligence() IntelligenceMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return IntelligenceMetrics{
		SemanticUnderstandingDepth: s.maps.SemanticWords(),
		SkillProgressionUsers:      s.maps.SessionCount(),
		LearningPathwaysDeveloped:  s.maps.PathwayCount(),
		ContextualMemoryPatterns:   s.maps.MemoryKeys(),
		AdaptiveDifficultyLevels:   s.maps.ScalingLevels(),
	}
}

// DistinctSessions counts unique feedback sessions seen so far.
func (s *System) DistinctSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	for _, e := range s.store.Entries() {
		seen[e.SessionID] = struct{}{}
	}
	return len(seen)
}

// FineTunePrompt composes an improvement prompt for the model from the
// accumulated feedback around a drawing context.
func (s *System) FineTunePrompt(drawingContext string) string {
	s.mu.Lock()
	analysis := analyzeFeedback(s.store, s.metrics)
	similar := s.store.FindSimilar(drawingContext, 0.3, 3)
	s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Context: %s\n\n", drawingContext)
	fmt.Fprintf(&b, "Success rate: %.1f%% over %d interactions, satisfaction %.2f/5.0\n",
		analysis.SuccessRate, analysis.TotalFeedback, analysis.Metrics.SatisfactionScore)
	if len(similar) > 0 {
		b.WriteString("\nSimilar successful prompts:\n")
		for _, sp := range similar {
			fmt.Fprintf(&b, "- %s (similarity %.2f)\n", sp.Prompt, sp.Similarity)
		}
	}
	b.WriteString(`
Generate an improved, personalized drawing instruction that:
1. Addresses common user preferences from successful interactions
2. Avoids patterns that led to negative feedback
3. Uses clear, step-by-step language
4. Includes specific tool recommendations`)
	return b.String()
}

// AdaptiveContext summarizes what the learning maps remember about this
// prompt: patterns that worked, failures to avoid, and overall
// performance. The result feeds the adaptive-learning model request.
func (s *System) AdaptiveContext(prompt string) string {
	s.mu.Lock()
	bucket := s.maps.Memory(prompt)
	metrics := s.metrics
	s.mu.Unlock()

	var b strings.Builder
	b.WriteString("- Success Patterns:")
	if bucket != nil {
		for _, p := range bucket.Successful {
			fmt.Fprintf(&b, "\n  * %s", p.Response)
		}
	}
	b.WriteString("\n- Common Failures to Avoid:")
	if bucket != nil {
		for _, f := range bucket.Failed {
			fmt.Fprintf(&b, "\n  * %s (correction: %s)", f.Response, f.Correction)
		}
	}
	fmt.Fprintf(&b, "\n- User Performance Data: %d interactions, satisfaction %.2f/5.0",
		metrics.TotalInteractions, metrics.SatisfactionScore)
	return b.String()
}

// #endregion

// #region learning-insights

// MultimodalEffectiveness compares outcomes for prompts that span
// several modalities against single-modality ones.
type MultimodalEffectiveness struct {
	MultimodalInteractions int     `json:"multimodal_interactions"`
	MultimodalAvgRating    float64 `json:"multimodal_avg_rating"`
	StandardAvgRating      float64 `json:"standard_avg_rating"`
}

// PredictiveTrend is a coarse direction estimate over recent ratings.
type PredictiveTrend struct {
	RecentAvgRating  float64 `json:"recent_avg_rating"`
	OverallAvgRating float64 `json:"overall_avg_rating"`
	Trend            string  `json:"trend"`
}

// LearningInsights is the cross-dimensional learning report.
type LearningInsights struct {
	SkillProgression          learning.ProgressionSummary          `json:"skill_progression_analysis"`
	ConceptMastery            map[string]learning.Mastery          `json:"concept_mastery_map"`
	PathwayOptimization       []learning.PathwayReport             `json:"learning_pathway_optimization"`
	SemanticKnowledgeGraph    map[string][]string                  `json:"semantic_knowledge_graph"`
	DifficultyRecommendations []learning.DifficultyRecommendation  `json:"adaptive_difficulty_recommendations"`
	Multimodal                MultimodalEffectiveness              `json:"multimodal_learning_effectiveness"`
	PersonalizationTargets    []string                             `json:"personalization_opportunities"`
	Predictive                PredictiveTrend                      `json:"predictive_learning_model"`
}

// ComprehensiveLearningInsights reports across every learning dimension.
func (s *System) ComprehensiveLearningInsights() LearningInsights {
	s.mu.Lock()
	defer s.mu.Unlock()

	mastery := s.maps.MasteryMap()
	graph := make(map[string][]string, len(mastery))
	for word, m := range mastery {
		graph[word] = m.RelatedConcepts
	}

	return LearningInsights{
		SkillProgression:          s.maps.AnalyzeProgression(),
		ConceptMastery:            mastery,
		PathwayOptimization:       s.maps.OptimizePathways(),
		SemanticKnowledgeGraph:    graph,
		DifficultyRecommendations: s.maps.DifficultyRecommendations(),
		Multimodal:                s.multimodalEffectiveness(),
		PersonalizationTargets:    personalizationTargets(mastery),
		Predictive:                s.predictiveTrend(),
	}
}

func (s *System) multimodalEffectiveness() MultimodalEffectiveness {
	var eff MultimodalEffectiveness
	multiSum, stdSum, stdCount := 0, 0, 0
	for _, e := range s.store.Entries() {
		if e.Multimodal.IsMultimodal {
			eff.MultimodalInteractions++
			multiSum += e.Rating
		} else {
			stdCount++
			stdSum += e.Rating
		}
	}
	if eff.MultimodalInteractions > 0 {
		eff.MultimodalAvgRating = round2(float64(multiSum) / float64(eff.MultimodalInteractions))
	}
	if stdCount > 0 {
		eff.StandardAvgRating = round2(float64(stdSum) / float64(stdCount))
	}
	return eff
}

// personalizationTargets surfaces the highest-priority words: concepts
// users succeed with but have not yet internalized.
func personalizationTargets(mastery map[string]learning.Mastery) []string {
	type scored struct {
		word     string
		priority float64
	}
	var all []scored
	for w, m := range mastery {
		if m.LearningPriority > 0.5 {
			all = append(all, scored{w, m.LearningPriority})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].priority != all[j].priority {
			return all[i].priority > all[j].priority
		}
		return all[i].word < all[j].word
	})

	out := make([]string, 0, 5)
	for i, sc := range all {
		if i == 5 {
			break
		}
		out = append(out, sc.word)
	}
	return out
}

func (s *System) predictiveTrend() PredictiveTrend {
	entries := s.store.Entries()
	if len(entries) == 0 {
		return PredictiveTrend{Trend: "insufficient_data"}
	}

	overall := 0
	for _, e := range entries {
		overall += e.Rating
	}
	overallAvg := float64(overall) / float64(len(entries))

	recent := entries
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	rsum := 0
	for _, e := range recent {
		rsum += e.Rating
	}
	recentAvg := float64(rsum) / float64(len(recent))

	trend := "stable"
	if recentAvg > overallAvg+0.25 {
		trend = "improving"
	} else if recentAvg < overallAvg-0.25 {
		trend = "declining"
	}
	return PredictiveTrend{
		RecentAvgRating:  round2(recentAvg),
		OverallAvgRating: round2(overallAvg),
		Trend:            trend,
	}
}

// Progression exposes a session's skill track for reporting.
func (s *System) Progression(sessionID string) *learning.Progression {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maps.Progression(sessionID)
}

// #endregion
