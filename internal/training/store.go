package training

import (
	"math"
	"sort"
	"strings"
	"time"
)

// #region cache

// Cache bounds. Past the high-water mark the oldest entries are dropped
// until only the most recent remain.
const (
	cacheHighWater = 100
	cacheKeep      = 80
)

// CachedResponse is a proven answer stored under its exact prompt.
type CachedResponse struct {
	Response  string
	Rating    int
	Timestamp time.Time
}

// #endregion

// #region store

// Store holds the in-memory training log and the proven-response cache.
// It is not internally locked; System serializes access.
type Store struct {
	entries []Entry
	cache   map[string]CachedResponse
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{cache: make(map[string]CachedResponse)}
}

// Add appends one entry to the log.
func (s *Store) Add(e Entry) {
	s.entries = append(s.entries, e)
}

// Entries returns the log. Callers must not mutate it.
func (s *Store) Entries() []Entry { return s.entries }

// Len reports the log size.
func (s *Store) Len() int { return len(s.entries) }

// CacheResponse stores a proven answer under its normalized prompt.
// Ratings below 4 are ignored. When the cache passes the high-water mark
// it is trimmed to the most recent entries by timestamp.
func (s *Store) CacheResponse(prompt, response string, rating int) {
	if rating < 4 {
		return
	}
	key := strings.ToLower(strings.TrimSpace(prompt))
	s.cache[key] = CachedResponse{
		Response:  response,
		Rating:    rating,
		Timestamp: time.Now(),
	}

	if len(s.cache) <= cacheHighWater {
		return
	}
	type kv struct {
		key string
		val CachedResponse
	}
	all := make([]kv, 0, len(s.cache))
	for k, v := range s.cache {
		all = append(all, kv{k, v})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].val.Timestamp.After(all[j].val.Timestamp) })

	trimmed := make(map[string]CachedResponse, cacheKeep)
	for _, e := range all[:cacheKeep] {
		trimmed[e.key] = e.val
	}
	s.cache = trimmed
}

// CachedExact returns the proven answer for the exact normalized prompt.
// Entries whose rating has fallen below the success bar do not match.
func (s *Store) CachedExact(prompt string) (CachedResponse, bool) {
	key := strings.ToLower(strings.TrimSpace(prompt))
	cached, ok := s.cache[key]
	if !ok || cached.Rating < 4 {
		return CachedResponse{}, false
	}
	return cached, true
}

// CacheSize reports how many proven answers are held.
func (s *Store) CacheSize() int { return len(s.cache) }

// #endregion

// #region similar

// SimilarPrompt is a successful log entry close to a query prompt.
type SimilarPrompt struct {
	Prompt     string
	Response   string
	Rating     int
	Similarity float64
}

// FindSimilar returns successful entries whose word overlap with the
// query clears the threshold, best first.
func (s *Store) FindSimilar(query string, threshold float64, limit int) []SimilarPrompt {
	queryWords := wordSet(strings.ToLower(query))
	var out []SimilarPrompt

	for _, e := range s.entries {
		if !e.Successful() {
			continue
		}
		sim := jaccard(queryWords, wordSet(e.Prompt))
		if sim > threshold {
			out = append(out, SimilarPrompt{
				Prompt:     e.Prompt,
				Response:   e.Response,
				Rating:     e.Rating,
				Similarity: sim,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// #endregion

// #region metrics

// Metrics is the running performance ledger.
type Metrics struct {
	TotalInteractions   int
	SuccessfulResponses int
	SatisfactionScore   float64
	CreativeSolutions   int
}

// Observe folds one rated entry into the ledger. The satisfaction score
// is a rolling average rounded to two decimals.
func (m *Metrics) Observe(e Entry) {
	m.TotalInteractions++
	if e.Successful() {
		m.SuccessfulResponses++
	}
	if e.CreativeElements.HasCreative && e.Successful() {
		m.CreativeSolutions++
	}

	total := float64(m.TotalInteractions)
	m.SatisfactionScore = round2((m.SatisfactionScore*(total-1) + float64(e.Rating)) / total)
}

// SuccessRate reports the success percentage rounded to one decimal.
func (m *Metrics) SuccessRate() float64 {
	if m.TotalInteractions == 0 {
		return 0
	}
	return round1(float64(m.SuccessfulResponses) / float64(m.TotalInteractions) * 100)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

// #endregion
