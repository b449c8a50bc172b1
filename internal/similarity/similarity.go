// Package similarity scores how close a live prompt is to previously
// recorded prompts, blending lexical overlap, shared art-concept categories,
// and user-context relevance.
package similarity

import (
	"sort"
	"strings"
)

// #region concept-buckets

// conceptBuckets group known art-domain terms. Semantic similarity compares
// the sets of bucket names two prompts touch, not the raw words.
var conceptBuckets = []struct {
	name  string
	terms []string
}{
	{"shape", []string{"circle", "square", "triangle", "rectangle", "oval"}},
	{"technique", []string{"shading", "blending", "hatching", "cross-hatch"}},
	{"color", []string{"red", "blue", "green", "yellow", "purple", "orange"}},
	{"style", []string{"realistic", "cartoon", "anime", "abstract", "impressionist"}},
}

// #endregion

// #region candidate

// Candidate is the slice of a training entry the engine needs for scoring.
type Candidate struct {
	Prompt              string
	Response            string
	Rating              int
	SkillLevel          string
	TrainingCategory    string
	TechniqueComplexity int
}

// QueryContext carries the live request's user context into relevance scoring.
type QueryContext struct {
	SkillLevel        string
	ArtisticDomain    string
	AdvancedTechnique bool
}

// Match is a candidate that cleared the ranking threshold.
type Match struct {
	Candidate
	WordScore     float64
	SemanticScore float64
	ContextScore  float64
	Total         float64
}

// #endregion

// #region word-similarity

// Word is the Jaccard index over whitespace-tokenized lower-cased word sets.
// Returns 0 when either side has no words.
func Word(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// #endregion

// #region semantic-similarity

// Semantic is the Jaccard index over the concept-bucket sets two prompts
// touch. Returns 0 when either prompt matches no bucket.
func Semantic(a, b string) float64 {
	bucketsA := buckets(strings.ToLower(a))
	bucketsB := buckets(strings.ToLower(b))
	if len(bucketsA) == 0 || len(bucketsB) == 0 {
		return 0
	}

	intersection := 0
	for n := range bucketsA {
		if _, ok := bucketsB[n]; ok {
			intersection++
		}
	}
	union := len(bucketsA) + len(bucketsB) - intersection
	return float64(intersection) / float64(union)
}

func buckets(prompt string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, bucket := range conceptBuckets {
		for _, term := range bucket.terms {
			if strings.Contains(prompt, term) {
				out[bucket.name] = struct{}{}
				break
			}
		}
	}
	return out
}

// #endregion

// #region context-relevance

// ContextRelevance scores how well a candidate fits the live user context:
// 0.3 for a skill-level match, 0.4 for a category/domain match, 0.3 for
// technique depth when the query is an advanced technique. Capped at 1.0.
func ContextRelevance(q QueryContext, c Candidate) float64 {
	score := 0.0
	if c.SkillLevel == q.SkillLevel {
		score += 0.3
	}
	if c.TrainingCategory == q.ArtisticDomain {
		score += 0.4
	}
	if q.AdvancedTechnique && c.TechniqueComplexity >= 3 {
		score += 0.3
	}
	return min(score, 1.0)
}

// #endregion

// #region rank

// MatchThreshold is the combined-score floor for a usable training match.
const MatchThreshold = 0.3

// Rank scores every positively-rated candidate against the query and returns
// those above threshold, sorted by descending total. The sort is stable so
// equal scores keep log order.
func Rank(query string, q QueryContext, candidates []Candidate, threshold float64) []Match {
	var matches []Match
	for _, c := range candidates {
		if c.Rating < 4 {
			continue
		}

		word := Word(query, c.Prompt)
		semantic := Semantic(query, c.Prompt)
		context := ContextRelevance(q, c)
		total := word + 0.3*semantic + 0.2*context

		if total > threshold {
			matches = append(matches, Match{
				Candidate:     c,
				WordScore:     word,
				SemanticScore: semantic,
				ContextScore:  context,
				Total:         total,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Total > matches[j].Total
	})
	return matches
}

// #endregion

// #region helpers

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

// #endregion
