// Package learning maintains the adaptive aggregates derived from feedback:
// per-session skill progression, contextual memory keyed by prompt prefix,
// learning pathways, per-word semantic understanding, and difficulty scaling.
//
// The maps are not internally locked; the training facade is the single
// writer and holds its own lock across Update and every read.
package learning

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// #region capacities

// The upstream design grew these maps without bound; treat that as a leak
// and evict least-recently-updated keys past a fixed capacity.
const (
	maxMemoryKeys    = 512
	maxSemanticWords = 2048
	maxPatterns      = 25
	maxAssociations  = 20
	maxRelated       = 50

	promptKeyLen = 50
)

// #endregion

// #region maps

// Maps owns all five adaptive aggregates.
type Maps struct {
	progression map[string]*Progression
	memory      map[string]*MemoryBucket
	pathways    map[string]*Pathway
	semantics   map[string]*WordKnowledge
	scaling     map[string]*Difficulty
}

// NewMaps returns empty aggregates.
func NewMaps() *Maps {
	return &Maps{
		progression: make(map[string]*Progression),
		memory:      make(map[string]*MemoryBucket),
		pathways:    make(map[string]*Pathway),
		semantics:   make(map[string]*WordKnowledge),
		scaling:     make(map[string]*Difficulty),
	}
}

// Update feeds one observation into every aggregate. Must run exactly once
// per collected entry.
func (m *Maps) Update(obs Observation) {
	m.updateProgression(obs)
	m.updateMemory(obs)
	m.updatePathways(obs)
	m.updateSemantics(obs)
	m.updateScaling(obs)
}

// #endregion

// #region skill-progression

func (m *Maps) updateProgression(obs Observation) {
	p, ok := m.progression[obs.SessionID]
	if !ok {
		p = &Progression{CurrentLevel: obs.SkillLevel}
		m.progression[obs.SessionID] = p
	}

	p.History = append(p.History, ProgressionPoint{
		Timestamp:  obs.Timestamp,
		SkillLevel: obs.SkillLevel,
		Rating:     obs.Rating,
		Concepts:   obs.ConceptCategories,
	})

	if len(p.History) > 1 {
		recent := p.History
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}
		sum := 0
		for _, h := range recent {
			sum += h.Rating
		}
		p.ImprovementRate = float64(sum) / float64(len(recent))
	}
}

// Progression returns the track for a session id, or nil.
func (m *Maps) Progression(sessionID string) *Progression {
	return m.progression[sessionID]
}

// AnalyzeProgression aggregates improvement across all tracked sessions.
func (m *Maps) AnalyzeProgression() ProgressionSummary {
	summary := ProgressionSummary{SkillDistribution: make(map[string]int)}
	if len(m.progression) == 0 {
		return summary
	}

	total := 0.0
	for _, p := range m.progression {
		total += p.ImprovementRate
		summary.SkillDistribution[p.CurrentLevel]++
	}
	summary.TrackedSessions = len(m.progression)
	summary.AverageImprovementRate = total / float64(len(m.progression))
	return summary
}

// #endregion

// #region contextual-memory

func (m *Maps) updateMemory(obs Observation) {
	key := truncate(obs.Prompt, promptKeyLen)

	bucket, ok := m.memory[key]
	if !ok {
		if len(m.memory) >= maxMemoryKeys {
			evictOldest(m.memory, func(b *MemoryBucket) time.Time { return b.lastTouched })
		}
		bucket = &MemoryBucket{}
		m.memory[key] = bucket
	}
	bucket.lastTouched = obs.Timestamp

	switch {
	case obs.Rating >= 4:
		bucket.Successful = append(bucket.Successful, PatternRecord{
			Response:  truncate(obs.Response, 200),
			Concepts:  obs.ConceptCategories,
			Timestamp: obs.Timestamp,
		})
		if len(bucket.Successful) > maxPatterns {
			bucket.Successful = bucket.Successful[len(bucket.Successful)-maxPatterns:]
		}
	case obs.Rating <= 2:
		bucket.Failed = append(bucket.Failed, FailureRecord{
			Response:   truncate(obs.Response, 200),
			Correction: obs.Correction,
			Timestamp:  obs.Timestamp,
		})
		if len(bucket.Failed) > maxPatterns {
			bucket.Failed = bucket.Failed[len(bucket.Failed)-maxPatterns:]
		}
	}
}

// Memory returns the bucket for a prompt, keyed by its leading prefix.
func (m *Maps) Memory(prompt string) *MemoryBucket {
	return m.memory[truncate(prompt, promptKeyLen)]
}

// MemoryKeys reports how many prompt prefixes are tracked.
func (m *Maps) MemoryKeys() int { return len(m.memory) }

// SessionCount reports how many sessions have progression history.
func (m *Maps) SessionCount() int { return len(m.progression) }

// #endregion

// #region pathways

func (m *Maps) updatePathways(obs Observation) {
	for category, items := range obs.ConceptCategories {
		key := fmt.Sprintf("%s_%s", category, obs.SkillLevel)

		pathway, ok := m.pathways[key]
		if !ok {
			pathway = &Pathway{}
			m.pathways[key] = pathway
		}

		switch {
		case obs.Rating >= 4:
			pathway.SuccessIndicators = appendUnique(pathway.SuccessIndicators, items)
		case obs.Rating <= 2:
			pathway.CommonObstacles = appendUnique(pathway.CommonObstacles, items)
		}
	}
}

// Pathway returns the record for a category_skill key, or nil.
func (m *Maps) Pathway(key string) *Pathway {
	return m.pathways[key]
}

// OptimizePathways reports every pathway, flagging those whose success
// indicators outnumber obstacles as ready for harder material.
func (m *Maps) OptimizePathways() []PathwayReport {
	keys := make([]string, 0, len(m.pathways))
	for k := range m.pathways {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	reports := make([]PathwayReport, 0, len(keys))
	for _, k := range keys {
		p := m.pathways[k]
		reports = append(reports, PathwayReport{
			Key:               k,
			SuccessIndicators: p.SuccessIndicators,
			CommonObstacles:   p.CommonObstacles,
			ReadyToAdvance:    len(p.SuccessIndicators) > len(p.CommonObstacles),
		})
	}
	return reports
}

// PathwayCount reports how many pathway keys exist.
func (m *Maps) PathwayCount() int { return len(m.pathways) }

// #endregion

// #region semantics

func (m *Maps) updateSemantics(obs Observation) {
	responseWords := strings.Fields(strings.ToLower(obs.Response))

	for _, word := range strings.Fields(strings.ToLower(obs.Prompt)) {
		if len(word) <= 3 {
			continue
		}

		know, ok := m.semantics[word]
		if !ok {
			if len(m.semantics) >= maxSemanticWords {
				evictOldest(m.semantics, func(w *WordKnowledge) time.Time { return w.lastTouched })
			}
			know = &WordKnowledge{Related: make(map[string]struct{})}
			m.semantics[word] = know
		}

		know.Frequency++
		know.lastTouched = obs.Timestamp
		for _, rw := range responseWords {
			if len(know.Related) >= maxRelated {
				break
			}
			know.Related[rw] = struct{}{}
		}

		if obs.Rating >= 4 {
			know.SuccessCount++
			know.Associations = append(know.Associations, Association{
				Snippet: truncate(obs.Response, 100),
				Rating:  obs.Rating,
			})
			if len(know.Associations) > maxAssociations {
				know.Associations = know.Associations[len(know.Associations)-maxAssociations:]
			}
		}
	}
}

// Word returns the knowledge record for a prompt word, or nil.
func (m *Maps) Word(word string) *WordKnowledge {
	return m.semantics[word]
}

// SemanticWords reports how many distinct words are tracked.
func (m *Maps) SemanticWords() int { return len(m.semantics) }

// MasteryMap derives the per-word learning profile: mastery saturates at 10
// uses, and priority is high for words with low mastery but a strong
// success record.
func (m *Maps) MasteryMap() map[string]Mastery {
	out := make(map[string]Mastery, len(m.semantics))
	for word, know := range m.semantics {
		mastery := min(float64(know.Frequency)/10, 1.0)
		successRate := float64(know.SuccessCount) / float64(max(know.Frequency, 1))

		related := make([]string, 0, len(know.Related))
		for rw := range know.Related {
			related = append(related, rw)
		}
		sort.Strings(related)
		if len(related) > 5 {
			related = related[:5]
		}

		out[word] = Mastery{
			MasteryLevel:     mastery,
			SuccessRate:      successRate,
			RelatedConcepts:  related,
			LearningPriority: (1 - mastery) * successRate,
		}
	}
	return out
}

// #endregion

// #region difficulty-scaling

func (m *Maps) updateScaling(obs Observation) {
	level := obs.ComplexityLevel
	if level == "" {
		level = "basic"
	}

	d, ok := m.scaling[level]
	if !ok {
		d = &Difficulty{ChallengeThreshold: 3.5}
		m.scaling[level] = d
	}

	d.Attempts++
	success := 0.0
	if obs.Rating >= 4 {
		success = 1.0
	}
	d.SuccessRate = (d.SuccessRate*float64(d.Attempts-1) + success) / float64(d.Attempts)

	if d.SuccessRate > 0.8 {
		d.ChallengeThreshold = min(d.ChallengeThreshold+0.1, 5.0)
	} else if d.SuccessRate < 0.5 {
		d.ChallengeThreshold = max(d.ChallengeThreshold-0.1, 2.0)
	}
}

// Scaling returns the record for a complexity level, or nil.
func (m *Maps) Scaling(level string) *Difficulty {
	return m.scaling[level]
}

// DifficultyRecommendations reports per-level scaling advice in level order.
func (m *Maps) DifficultyRecommendations() []DifficultyRecommendation {
	levels := make([]string, 0, len(m.scaling))
	for l := range m.scaling {
		levels = append(levels, l)
	}
	sort.Strings(levels)

	out := make([]DifficultyRecommendation, 0, len(levels))
	for _, l := range levels {
		d := m.scaling[l]
		rec := "hold difficulty steady"
		if d.SuccessRate > 0.8 {
			rec = "increase challenge"
		} else if d.SuccessRate < 0.5 {
			rec = "simplify material"
		}
		out = append(out, DifficultyRecommendation{
			Level:              l,
			Attempts:           d.Attempts,
			SuccessRate:        d.SuccessRate,
			ChallengeThreshold: d.ChallengeThreshold,
			Recommendation:     rec,
		})
	}
	return out
}

// ScalingLevels reports how many complexity levels are tracked.
func (m *Maps) ScalingLevels() int { return len(m.scaling) }

// #endregion

// #region helpers

// truncate cuts to n characters, never splitting a multibyte rune.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func appendUnique(dst []string, items []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, s := range dst {
		seen[s] = struct{}{}
	}
	for _, s := range items {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			dst = append(dst, s)
		}
	}
	return dst
}

func evictOldest[V any](m map[string]V, touched func(V) time.Time) {
	var oldestKey string
	var oldest time.Time
	first := true
	for k, v := range m {
		if t := touched(v); first || t.Before(oldest) {
			oldestKey, oldest = k, t
			first = false
		}
	}
	if !first {
		delete(m, oldestKey)
	}
}

// #endregion
