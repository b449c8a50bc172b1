package llm

import (
	"math"
	"sync"
	"time"
)

// #region tracker

// UsageTracker counts model requests for the status endpoints. Daily
// counters roll over on the first request of a new day.
type UsageTracker struct {
	mu            sync.Mutex
	total         int
	successful    int
	failed        int
	rateLimitHits int
	daily         int
	dailyHistory  map[string]int
	lastReset     string

	now func() time.Time
}

// NewUsageTracker returns an empty tracker.
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{
		dailyHistory: make(map[string]int),
		lastReset:    time.Now().Format(time.DateOnly),
		now:          time.Now,
	}
}

// Track records one request outcome.
func (u *UsageTracker) Track(success, rateLimited bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	today := u.now().Format(time.DateOnly)
	if today != u.lastReset {
		u.dailyHistory[u.lastReset] = u.daily
		u.daily = 0
		u.lastReset = today
	}

	u.total++
	u.daily++
	if success {
		u.successful++
	} else {
		u.failed++
	}
	if rateLimited {
		u.rateLimitHits++
	}
}

// #endregion

// #region stats

// UsageStats is the snapshot served by the status endpoints.
type UsageStats struct {
	TotalRequests int            `json:"total_requests"`
	SuccessRate   float64        `json:"success_rate"`
	DailyRequests int            `json:"daily_requests"`
	RateLimitHits int            `json:"rate_limit_hits"`
	DailyHistory  map[string]int `json:"daily_usage_history"`
	HealthStatus  string         `json:"health_status"`
}

// Stats returns the current usage snapshot.
func (u *UsageTracker) Stats() UsageStats {
	u.mu.Lock()
	defer u.mu.Unlock()

	successRate := 0.0
	if u.total > 0 {
		successRate = math.Round(float64(u.successful)/float64(u.total)*1000) / 10
	}

	health := "critical"
	switch {
	case u.total == 0, successRate > 95:
		health = "healthy"
	case successRate > 80:
		health = "needs_attention"
	}

	history := make(map[string]int, len(u.dailyHistory))
	for k, v := range u.dailyHistory {
		history[k] = v
	}

	return UsageStats{
		TotalRequests: u.total,
		SuccessRate:   successRate,
		DailyRequests: u.daily,
		RateLimitHits: u.rateLimitHits,
		DailyHistory:  history,
		HealthStatus:  health,
	}
}

// #endregion
