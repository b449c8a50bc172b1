package training

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/atelierhq/atelier/internal/strategy"
)

// #region fakes

type fakeArchiver struct {
	calls int
	err   error
}

func (f *fakeArchiver) SaveTrainingData(ctx context.Context, userID, prompt, response string, rating int, correction string) error {
	f.calls++
	return f.err
}

// #endregion

// #region entry

func TestNewEntryNormalizesPrompt(t *testing.T) {
	e := NewEntry("  Draw a CAT  ", "start with two circles", 5, "", 0)

	if e.Prompt != "draw a cat" {
		t.Fatalf("Prompt = %q", e.Prompt)
	}
	if e.SessionID == "" {
		t.Fatal("SessionID must be set")
	}
	if e.PromptType != "drawing_instruction" {
		t.Fatalf("PromptType = %q", e.PromptType)
	}
	if !e.Successful() || e.Failed() {
		t.Fatal("rating 5 must classify as success")
	}
}

func TestNewEntryDerivedDimensions(t *testing.T) {
	e := NewEntry("fibonacci sequence tutorial", "professional master technique with precise anatomical proportion and accurate structure detail", 4, "", 0)

	if e.TrainingCategory != "mathematical_art" {
		t.Fatalf("TrainingCategory = %q", e.TrainingCategory)
	}
	if e.TechniqueComplexity != 5 {
		t.Fatalf("TechniqueComplexity = %d", e.TechniqueComplexity)
	}
	if len(e.MathElements) == 0 {
		t.Fatal("fibonacci prompt must yield math elements")
	}
	if e.ScientificAccuracy != "high_precision" {
		t.Fatalf("ScientificAccuracy = %q", e.ScientificAccuracy)
	}
}

// #endregion

// #region cache

func TestCacheRejectsLowRatings(t *testing.T) {
	s := NewStore()
	s.CacheResponse("draw a cat", "two circles", 3)
	if s.CacheSize() != 0 {
		t.Fatal("ratings below 4 must not be cached")
	}
}

func TestCacheExactNormalization(t *testing.T) {
	s := NewStore()
	s.CacheResponse("Draw a Cat ", "two circles", 5)

	cached, ok := s.CachedExact("  draw a cat")
	if !ok {
		t.Fatal("normalized lookup must hit")
	}
	if cached.Response != "two circles" {
		t.Fatalf("Response = %q", cached.Response)
	}
}

func TestCacheEviction(t *testing.T) {
	s := NewStore()
	for i := 0; i <= cacheHighWater; i++ {
		s.CacheResponse(fmt.Sprintf("prompt %d", i), "answer", 5)
		time.Sleep(time.Millisecond)
	}

	if got := s.CacheSize(); got != cacheKeep {
		t.Fatalf("CacheSize = %d, want %d", got, cacheKeep)
	}
	if _, ok := s.CachedExact("prompt 0"); ok {
		t.Fatal("oldest entry must be evicted")
	}
	if _, ok := s.CachedExact(fmt.Sprintf("prompt %d", cacheHighWater)); !ok {
		t.Fatal("newest entry must survive")
	}
}

// #endregion

// #region metrics

func TestMetricsRollingAverage(t *testing.T) {
	var m Metrics
	for _, r := range []int{5, 4, 3} {
		m.Observe(NewEntry("draw a cat", "a full response that easily clears the minimum length bar", r, "", 0))
	}

	if m.TotalInteractions != 3 || m.SuccessfulResponses != 2 {
		t.Fatalf("counts = %d/%d", m.TotalInteractions, m.SuccessfulResponses)
	}
	if m.SatisfactionScore != 4.0 {
		t.Fatalf("SatisfactionScore = %v, want 4.0", m.SatisfactionScore)
	}
	if m.SuccessRate() != 66.7 {
		t.Fatalf("SuccessRate = %v, want 66.7", m.SuccessRate())
	}
}

// #endregion

// #region analysis

func TestAnalyzeFeedbackPatterns(t *testing.T) {
	sys := NewSystem(nil, nil)
	ctx := context.Background()

	sys.Collect(ctx, "sketch shading gradients", "build value in layers", 5, "", 0)
	sys.Collect(ctx, "draw shading spheres", "map the light source first", 4, "", 0)
	sys.Collect(ctx, "paint a dragon", "too vague", 1, "give concrete steps", 0)

	a := sys.AnalyzeFeedbackPatterns()
	if a.TotalFeedback != 3 || a.PositiveFeedback != 2 || a.NegativeFeedback != 1 {
		t.Fatalf("counts = %d/%d/%d", a.TotalFeedback, a.PositiveFeedback, a.NegativeFeedback)
	}
	if a.FailurePatterns["paint a dragon"] != "give concrete steps" {
		t.Fatalf("FailurePatterns = %v", a.FailurePatterns)
	}

	// "shading" appears in both successful prompts and must rank first.
	if len(a.TopSuccessPatterns) == 0 || a.TopSuccessPatterns[0].Word != "shading" {
		t.Fatalf("TopSuccessPatterns = %v", a.TopSuccessPatterns)
	}
	stats := a.PromptTypePerformance["drawing_instruction"]
	if stats.Total != 3 || stats.Positive != 2 {
		t.Fatalf("drawing_instruction stats = %+v", stats)
	}
}

func TestExportInsights(t *testing.T) {
	sys := NewSystem(nil, nil)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		sys.Collect(ctx, "sketch a landscape", "layer the scene back to front with lighter values in the distance", 2, "", 0)
	}

	ins := sys.ExportInsights()
	if ins.DataQualityScore <= 0 {
		t.Fatalf("DataQualityScore = %v", ins.DataQualityScore)
	}
	found := false
	for _, r := range ins.Recommendations {
		if strings.Contains(r, "success rate below 70%") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing low-success recommendation: %v", ins.Recommendations)
	}
}

func TestDataQualityEmptyStore(t *testing.T) {
	if got := dataQualityScore(NewStore()); got != 0 {
		t.Fatalf("empty store quality = %v, want 0", got)
	}
}

// #endregion

// #region collect

func TestCollectFeedsLearningMaps(t *testing.T) {
	sys := NewSystem(nil, nil)
	e := sys.Collect(context.Background(), "practice shading techniques", "work from a single light source", 5, "", 0)

	if sys.Progression(e.SessionID) == nil {
		t.Fatal("collection must create a progression track")
	}

	ins := sys.ComprehensiveLearningInsights()
	if _, ok := ins.ConceptMastery["shading"]; !ok {
		t.Fatalf("ConceptMastery missing tracked word: %v", ins.ConceptMastery)
	}
	if ins.Predictive.Trend == "insufficient_data" {
		t.Fatal("one entry should yield a trend")
	}
}

func TestCollectArchivesBestEffort(t *testing.T) {
	arch := &fakeArchiver{}
	sys := NewSystem(arch, nil)
	sys.Collect(context.Background(), "draw a cat", "two circles and a triangle nose, then refine the outline", 4, "", 0)
	if arch.calls != 1 {
		t.Fatalf("archiver calls = %d", arch.calls)
	}

	// Archival errors are swallowed.
	arch.err = errors.New("disk full")
	sys.Collect(context.Background(), "draw a dog", "start from the spine line and block in the body masses", 4, "", 0)
	if sys.PerformanceMetrics().TotalInteractions != 2 {
		t.Fatal("failed archival must not drop the entry")
	}
}

// #endregion

// #region strategy-routing

func TestDetermineStrategyExactMatch(t *testing.T) {
	sys := NewSystem(nil, nil)
	sys.CacheSuccessfulResponse("draw a cat", "two circles, then ears", 5)

	d := sys.DetermineStrategy("Draw a CAT", "free", strategy.UserInfo{TotalUses: 3})
	if d.Strategy != strategy.StrategyTrainingEnhanced {
		t.Fatalf("Strategy = %q", d.Strategy)
	}
	if !strings.Contains(d.Response, "two circles, then ears") {
		t.Fatalf("Response = %q", d.Response)
	}
}

func TestCollectSeedsResponseCache(t *testing.T) {
	sys := NewSystem(nil, nil)
	ctx := context.Background()

	sys.Collect(ctx, "how do I draw a cat", "Start with two overlapping circles.", 5, "", 0)

	d := sys.DetermineStrategy("how do i draw a cat", "basic", strategy.UserInfo{TotalUses: 3})
	if d.Strategy != strategy.StrategyTrainingEnhanced {
		t.Fatalf("Strategy = %q, want %q", d.Strategy, strategy.StrategyTrainingEnhanced)
	}
	if d.Confidence != 1.0 {
		t.Fatalf("Confidence = %v, want 1.0", d.Confidence)
	}
	if !strings.Contains(d.Response, "two overlapping circles") {
		t.Fatalf("Response = %q", d.Response)
	}

	// Low-rated interactions must not seed the cache.
	sys.Collect(ctx, "draw a fish", "just a blob", 2, "too vague", 0)
	if d := sys.DetermineStrategy("draw a fish", "basic", strategy.UserInfo{TotalUses: 3}); d.Strategy == strategy.StrategyTrainingEnhanced {
		t.Fatal("failed interaction must not become an exact match")
	}
}

func TestDetermineStrategySimilarMatch(t *testing.T) {
	sys := NewSystem(nil, nil)
	ctx := context.Background()
	sys.Collect(ctx, "sketch a mountain landscape", "block in three overlapping ridgelines and fade the farthest", 5, "", 0)

	d := sys.DetermineStrategy("sketch a mountain valley", "free", strategy.UserInfo{TotalUses: 10})
	if d.Strategy != strategy.StrategySemanticHybrid {
		t.Fatalf("Strategy = %q", d.Strategy)
	}
	if !strings.Contains(d.TrainingContext, "sketch a mountain landscape") {
		t.Fatalf("TrainingContext = %q", d.TrainingContext)
	}
}

func TestDetermineStrategyFallback(t *testing.T) {
	sys := NewSystem(nil, nil)
	d := sys.DetermineStrategy("draw a quokka", "free", strategy.UserInfo{TotalUses: 0})
	if d.Strategy != strategy.StrategyModelSkillAdapted {
		t.Fatalf("Strategy = %q", d.Strategy)
	}
	if !d.NeedsModel() {
		t.Fatal("fallback must require a model call")
	}
}

func TestCachedSuggestionNote(t *testing.T) {
	sys := NewSystem(nil, nil)
	if _, ok := sys.CachedSuggestion("draw a cat"); ok {
		t.Fatal("empty cache must miss")
	}
	sys.CacheSuccessfulResponse("draw a cat", "two circles", 5)
	got, ok := sys.CachedSuggestion("draw a cat")
	if !ok || !strings.Contains(got, "improved based on user feedback") {
		t.Fatalf("CachedSuggestion = %q, %v", got, ok)
	}
}

// #endregion
