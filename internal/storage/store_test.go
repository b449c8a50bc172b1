package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func tempDB(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetUserNotFound(t *testing.T) {
	s := tempDB(t)
	_, err := s.GetUser(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestEnsureUserIdempotent(t *testing.T) {
	s := tempDB(t)
	ctx := context.Background()

	u, err := s.EnsureUser(ctx, "alice")
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	if u.ID != "alice" || u.Premium || u.TotalUses != 0 {
		t.Fatalf("fresh user = %+v", u)
	}
	if u.TrialStart != nil {
		t.Fatal("fresh user must have no trial start")
	}

	again, err := s.EnsureUser(ctx, "alice")
	if err != nil {
		t.Fatalf("EnsureUser again: %v", err)
	}
	if again.CreatedAt != u.CreatedAt {
		t.Fatal("second ensure must not recreate the row")
	}
}

func TestIncrementUsage(t *testing.T) {
	s := tempDB(t)
	ctx := context.Background()
	s.EnsureUser(ctx, "alice")

	for want := 1; want <= 3; want++ {
		got, err := s.IncrementUsage(ctx, "alice")
		if err != nil {
			t.Fatalf("IncrementUsage: %v", err)
		}
		if got != want {
			t.Fatalf("total = %d, want %d", got, want)
		}
	}

	if _, err := s.IncrementUsage(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user err = %v", err)
	}
}

func TestStartTrialOnlyOnce(t *testing.T) {
	s := tempDB(t)
	ctx := context.Background()
	s.EnsureUser(ctx, "alice")

	first := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if err := s.StartTrial(ctx, "alice", first); err != nil {
		t.Fatalf("StartTrial: %v", err)
	}

	// A second start must not move the date.
	if err := s.StartTrial(ctx, "alice", first.AddDate(0, 1, 0)); err != nil {
		t.Fatalf("StartTrial again: %v", err)
	}

	u, err := s.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.TrialStart == nil || !u.TrialStart.Equal(first) {
		t.Fatalf("TrialStart = %v, want %v", u.TrialStart, first)
	}
}

func TestSetPremiumRoundTrip(t *testing.T) {
	s := tempDB(t)
	ctx := context.Background()
	s.EnsureUser(ctx, "alice")

	expiry := time.Now().UTC().AddDate(0, 0, 30).Truncate(time.Second)
	if err := s.SetPremium(ctx, "alice", true, &expiry, "monthly"); err != nil {
		t.Fatalf("SetPremium: %v", err)
	}

	u, _ := s.GetUser(ctx, "alice")
	if !u.Premium || u.PaymentPlan != "monthly" {
		t.Fatalf("user = %+v", u)
	}
	if u.PremiumExpiry == nil || !u.PremiumExpiry.Equal(expiry) {
		t.Fatalf("PremiumExpiry = %v, want %v", u.PremiumExpiry, expiry)
	}

	// Downgrade clears the flag but may keep history fields.
	if err := s.SetPremium(ctx, "alice", false, nil, ""); err != nil {
		t.Fatalf("downgrade: %v", err)
	}
	u, _ = s.GetUser(ctx, "alice")
	if u.Premium || u.PremiumExpiry != nil {
		t.Fatalf("after downgrade = %+v", u)
	}
}

func TestGalleryOrdering(t *testing.T) {
	s := tempDB(t)
	ctx := context.Background()
	s.EnsureUser(ctx, "alice")

	if _, err := s.SaveDrawing(ctx, "alice", "first", "data1"); err != nil {
		t.Fatalf("SaveDrawing: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	id2, err := s.SaveDrawing(ctx, "alice", "second", "data2")
	if err != nil {
		t.Fatalf("SaveDrawing: %v", err)
	}

	drawings, err := s.Gallery(ctx, "alice")
	if err != nil {
		t.Fatalf("Gallery: %v", err)
	}
	if len(drawings) != 2 {
		t.Fatalf("len = %d", len(drawings))
	}
	if drawings[0].ID != id2 {
		t.Fatalf("newest first, got %q", drawings[0].Title)
	}

	n, err := s.DrawingCount(ctx, "alice")
	if err != nil || n != 2 {
		t.Fatalf("DrawingCount = %d, %v", n, err)
	}
}

func TestSaveTrainingData(t *testing.T) {
	s := tempDB(t)
	ctx := context.Background()

	if err := s.SaveTrainingData(ctx, "system", "draw a cat", "two circles", 5, ""); err != nil {
		t.Fatalf("SaveTrainingData: %v", err)
	}
	n, err := s.TrainingDataCount(ctx)
	if err != nil || n != 1 {
		t.Fatalf("TrainingDataCount = %d, %v", n, err)
	}
}

func TestListTrainingDataOrder(t *testing.T) {
	s := tempDB(t)
	ctx := context.Background()

	if err := s.SaveTrainingData(ctx, "system", "draw a cat", "two circles", 5, ""); err != nil {
		t.Fatalf("SaveTrainingData: %v", err)
	}
	if err := s.SaveTrainingData(ctx, "system", "draw a dog", "start with the snout", 2, "too vague"); err != nil {
		t.Fatalf("SaveTrainingData: %v", err)
	}

	records, err := s.ListTrainingData(ctx)
	if err != nil {
		t.Fatalf("ListTrainingData: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].Prompt != "draw a cat" || records[1].Prompt != "draw a dog" {
		t.Fatalf("order wrong: %q, %q", records[0].Prompt, records[1].Prompt)
	}
	if records[1].Correction != "too vague" {
		t.Fatalf("correction = %q", records[1].Correction)
	}
	if records[0].CreatedAt.IsZero() {
		t.Fatal("CreatedAt not parsed")
	}
}
