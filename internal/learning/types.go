package learning

import "time"

// #region observation

// Observation is the slice of a recorded interaction the maps consume.
// The training facade builds one per collected entry and feeds it to
// Maps.Update exactly once; replays double-count.
type Observation struct {
	Timestamp         time.Time
	SessionID         string
	Prompt            string
	Response          string
	Rating            int
	Correction        string
	SkillLevel        string
	ConceptCategories map[string][]string
	ComplexityLevel   string
}

// #endregion

// #region progression

// ProgressionPoint is one step in a session's skill history.
type ProgressionPoint struct {
	Timestamp  time.Time
	SkillLevel string
	Rating     int
	Concepts   map[string][]string
}

// Progression is the per-session skill track.
type Progression struct {
	CurrentLevel    string
	History         []ProgressionPoint
	ImprovementRate float64
}

// #endregion

// #region contextual-memory

// PatternRecord is a successful response pattern stored under a prompt prefix.
type PatternRecord struct {
	Response  string
	Concepts  map[string][]string
	Timestamp time.Time
}

// FailureRecord is a failed response pattern plus the user's correction.
type FailureRecord struct {
	Response   string
	Correction string
	Timestamp  time.Time
}

// MemoryBucket separates what worked from what failed for one prompt prefix.
type MemoryBucket struct {
	Successful []PatternRecord
	Failed     []FailureRecord

	lastTouched time.Time
}

// #endregion

// #region pathway

// Pathway accumulates concept terms per (category, skill level) pair.
type Pathway struct {
	SuccessIndicators []string
	CommonObstacles   []string
}

// #endregion

// #region word-knowledge

// Association is a successful response snippet tied to a prompt word.
type Association struct {
	Snippet string
	Rating  int
}

// WordKnowledge tracks how a single prompt word is used and what it leads to.
type WordKnowledge struct {
	Frequency    int
	SuccessCount int
	Related      map[string]struct{}
	Associations []Association

	lastTouched time.Time
}

// Mastery is the derived per-word learning profile.
type Mastery struct {
	MasteryLevel     float64
	SuccessRate      float64
	RelatedConcepts  []string
	LearningPriority float64
}

// #endregion

// #region difficulty

// Difficulty is the adaptive scaling record for one complexity level.
type Difficulty struct {
	Attempts           int
	SuccessRate        float64
	ChallengeThreshold float64
}

// #endregion

// #region summaries

// ProgressionSummary aggregates skill progression across sessions.
type ProgressionSummary struct {
	AverageImprovementRate float64
	SkillDistribution      map[string]int
	TrackedSessions        int
}

// PathwayReport summarizes one learning pathway for reporting.
type PathwayReport struct {
	Key               string
	SuccessIndicators []string
	CommonObstacles   []string
	ReadyToAdvance    bool
}

// DifficultyRecommendation is the per-level scaling advice.
type DifficultyRecommendation struct {
	Level              string
	Attempts           int
	SuccessRate        float64
	ChallengeThreshold float64
	Recommendation     string
}

// #endregion
