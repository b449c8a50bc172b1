package training

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atelierhq/atelier/internal/classify"
)

// #region feedback-analysis

// TypeStats counts interactions and successes for one prompt type.
type TypeStats struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
}

// WordCount is a success-pattern word with its occurrence count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// FeedbackAnalysis is the aggregate view over the whole training log.
type FeedbackAnalysis struct {
	TotalFeedback         int                               `json:"total_feedback"`
	PositiveFeedback      int                               `json:"positive_feedback"`
	NegativeFeedback      int                               `json:"negative_feedback"`
	SuccessRate           float64                           `json:"success_rate"`
	PromptTypePerformance map[classify.PromptType]TypeStats `json:"prompt_type_performance"`
	TopSuccessPatterns    []WordCount                       `json:"top_success_patterns"`
	FailurePatterns       map[string]string                 `json:"failure_patterns"`
	ImprovementAreas      []string                          `json:"improvement_areas"`
	Metrics               Metrics                           `json:"performance_metrics"`
}

func analyzeFeedback(store *Store, metrics Metrics) FeedbackAnalysis {
	analysis := FeedbackAnalysis{
		PromptTypePerformance: make(map[classify.PromptType]TypeStats),
		FailurePatterns:       make(map[string]string),
		Metrics:               metrics,
		SuccessRate:           metrics.SuccessRate(),
	}

	successWords := make(map[string]int)
	for _, e := range store.Entries() {
		analysis.TotalFeedback++

		stats := analysis.PromptTypePerformance[e.PromptType]
		stats.Total++
		if e.Successful() {
			stats.Positive++
		}
		analysis.PromptTypePerformance[e.PromptType] = stats

		switch {
		case e.Successful():
			analysis.PositiveFeedback++
			for _, w := range strings.Fields(e.Prompt) {
				if len(w) > 3 {
					successWords[w]++
				}
			}
		case e.Failed():
			analysis.NegativeFeedback++
			if e.Correction != "" {
				analysis.FailurePatterns[e.Prompt] = e.Correction
				analysis.ImprovementAreas = append(analysis.ImprovementAreas, e.Correction)
			}
		}
	}

	analysis.TopSuccessPatterns = topWords(successWords, 5)
	return analysis
}

func topWords(counts map[string]int, n int) []WordCount {
	out := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, WordCount{Word: w, Count: c})
	}
	// Count descending, word ascending for a stable order.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// #endregion

// #region insights-export

// Insights is the exportable system report.
type Insights struct {
	GeneratedAt       time.Time        `json:"generated_at"`
	SystemPerformance FeedbackAnalysis `json:"system_performance"`
	Recommendations   []string         `json:"recommendations"`
	DataQualityScore  float64          `json:"data_quality_score"`
}

func systemRecommendations(analysis FeedbackAnalysis) []string {
	var recs []string

	if analysis.SuccessRate < 70 {
		recs = append(recs, "Improve response quality - success rate below 70%")
	}
	if analysis.NegativeFeedback > analysis.PositiveFeedback {
		recs = append(recs, "Focus on addressing common user complaints")
	}

	types := make([]classify.PromptType, 0, len(analysis.PromptTypePerformance))
	for pt := range analysis.PromptTypePerformance {
		types = append(types, pt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, pt := range types {
		stats := analysis.PromptTypePerformance[pt]
		if stats.Total > 5 && float64(stats.Positive)/float64(stats.Total) < 0.6 {
			recs = append(recs, fmt.Sprintf("Improve %s response quality", pt))
		}
	}
	return recs
}

// #endregion

// #region data-quality

// dataQualityScore grades the training log on completeness, success
// density, and concept diversity, on a 0 to 100 scale.
func dataQualityScore(store *Store) float64 {
	entries := store.Entries()
	if len(entries) == 0 {
		return 0
	}
	total := float64(len(entries))

	complete := 0
	advanced := 0
	dataset := 0
	highQuality := 0
	conceptFingerprints := make(map[string]struct{})
	categories := make(map[string]struct{})

	for _, e := range entries {
		if e.Prompt != "" && e.Response != "" && e.Rating > 0 {
			complete++
		}
		if e.Complexity.Level != "" && e.SemanticDepth.DepthScore >= 0 && len(e.Concepts) > 0 {
			advanced++
		}
		if e.TrainingCategory != "" && e.TechniqueComplexity > 0 && e.ProfessionalLevel != "" {
			dataset++
		}
		if e.Successful() {
			highQuality++
		}
		conceptFingerprints[conceptFingerprint(e.Concepts)] = struct{}{}
		categories[e.TrainingCategory] = struct{}{}
	}

	score := (float64(complete)/total)*0.25 +
		(float64(advanced)/total)*0.25 +
		(float64(dataset)/total)*0.2 +
		(float64(highQuality)/total)*0.15 +
		min(float64(len(conceptFingerprints))/20, 1.0)*0.1 +
		min(float64(len(categories))/10, 1.0)*0.05
	return round1(score * 100)
}

func conceptFingerprint(concepts map[string][]string) string {
	keys := make([]string, 0, len(concepts))
	for k := range concepts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(strings.Join(concepts[k], ","))
		b.WriteString(";")
	}
	return b.String()
}

// #endregion
