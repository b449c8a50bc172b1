// Package account implements the trial and premium lifecycle on top of
// the storage layer.
package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/storage"
)

// #region constants

const (
	// TrialDays is the length of the free trial.
	TrialDays = 10

	monthlyPriceCents = 999
	yearlyPriceCents  = 9999
)

// #endregion

// #region manager

// Manager answers account-status questions and drives the demo payment
// flow.
type Manager struct {
	store *storage.Store
	now   func() time.Time
}

// NewManager returns a manager backed by the given store.
func NewManager(store *storage.Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// #endregion

// #region status

// Status is the derived account state served to clients.
type Status struct {
	TrialDaysRemaining int        `json:"trial_days_remaining"`
	TrialActive        bool       `json:"trial_active"`
	IsPremium          bool       `json:"is_premium"`
	TotalUses          int        `json:"total_uses"`
	PremiumExpiry      *time.Time `json:"premium_expiry"`
	TrialStarted       bool       `json:"trial_started"`
}

// Status derives the current account state. Users who never started a
// trial still have the full allowance ahead of them. An expired premium
// flag is cleared in storage as a side effect.
func (m *Manager) Status(ctx context.Context, userID string) (Status, error) {
	u, err := m.store.EnsureUser(ctx, userID)
	if err != nil {
		return Status{}, fmt.Errorf("load user: %w", err)
	}

	st := Status{
		TotalUses:     u.TotalUses,
		PremiumExpiry: u.PremiumExpiry,
		TrialStarted:  u.TrialStart != nil,
	}

	if u.TrialStart != nil {
		st.TrialDaysRemaining = max(0, TrialDays-m.daysSince(*u.TrialStart))
		st.TrialActive = st.TrialDaysRemaining > 0
	} else {
		st.TrialDaysRemaining = TrialDays
		st.TrialActive = true
	}

	st.IsPremium = u.Premium
	if u.Premium && u.PremiumExpiry != nil && !m.now().Before(*u.PremiumExpiry) {
		st.IsPremium = false
		if err := m.store.SetPremium(ctx, userID, false, nil, ""); err != nil {
			return Status{}, fmt.Errorf("clear expired premium: %w", err)
		}
	}
	return st, nil
}

// HasPremiumAccess reports whether premium features are available, via
// either subscription or an active trial.
func (m *Manager) HasPremiumAccess(ctx context.Context, userID string) (bool, error) {
	st, err := m.Status(ctx, userID)
	if err != nil {
		return false, err
	}
	return st.IsPremium || st.TrialActive, nil
}

func (m *Manager) daysSince(t time.Time) int {
	return int(m.now().Sub(t).Hours() / 24)
}

// #endregion

// #region trial

// TrialResult reports the outcome of a trial start request.
type TrialResult struct {
	Success            bool   `json:"success"`
	Message            string `json:"message,omitempty"`
	TrialDaysRemaining int    `json:"trial_days_remaining,omitempty"`
}

// StartTrial begins the trial, or reports remaining days when one is
// already running.
func (m *Manager) StartTrial(ctx context.Context, userID string) (TrialResult, error) {
	u, err := m.store.EnsureUser(ctx, userID)
	if err != nil {
		return TrialResult{}, fmt.Errorf("load user: %w", err)
	}

	if u.TrialStart == nil {
		if err := m.store.StartTrial(ctx, userID, m.now()); err != nil {
			return TrialResult{}, err
		}
		return TrialResult{
			Success:            true,
			Message:            fmt.Sprintf("%d-day trial started!", TrialDays),
			TrialDaysRemaining: TrialDays,
		}, nil
	}

	remaining := max(0, TrialDays-m.daysSince(*u.TrialStart))
	if remaining > 0 {
		return TrialResult{Success: true, TrialDaysRemaining: remaining}, nil
	}
	return TrialResult{Success: false, Message: "Trial period expired"}, nil
}

// EnsureTrial starts the trial silently if it has never started. Used by
// the analyze path to auto-enroll first-time premium feature use.
func (m *Manager) EnsureTrial(ctx context.Context, userID string) error {
	u, err := m.store.EnsureUser(ctx, userID)
	if err != nil {
		return err
	}
	if u.TrialStart != nil {
		return nil
	}
	return m.store.StartTrial(ctx, userID, m.now())
}

// #endregion

// #region payments

// PaymentIntent is the demo checkout handle.
type PaymentIntent struct {
	ClientSecret string `json:"client_secret"`
	Amount       int    `json:"amount"`
	Currency     string `json:"currency"`
	Plan         string `json:"plan"`
}

// CreatePaymentIntent issues a demo payment intent for a plan. Unknown
// plans fall back to monthly.
func (m *Manager) CreatePaymentIntent(plan string) PaymentIntent {
	amount := monthlyPriceCents
	if plan == "yearly" {
		amount = yearlyPriceCents
	} else {
		plan = "monthly"
	}
	return PaymentIntent{
		ClientSecret: fmt.Sprintf("pi_demo_%s_%s", plan, uuid.NewString()[:8]),
		Amount:       amount,
		Currency:     "usd",
		Plan:         plan,
	}
}

// VerifyPayment checks a demo payment intent and activates premium for
// the plan's duration.
func (m *Manager) VerifyPayment(ctx context.Context, userID, paymentIntentID, plan string) (bool, string, error) {
	if !strings.HasPrefix(paymentIntentID, "pi_demo_") {
		return false, "Payment verification failed", nil
	}

	days := 30
	if plan == "yearly" {
		days = 365
	} else {
		plan = "monthly"
	}
	if _, err := m.store.EnsureUser(ctx, userID); err != nil {
		return false, "", err
	}
	expiry := m.now().AddDate(0, 0, days)
	if err := m.store.SetPremium(ctx, userID, true, &expiry, plan); err != nil {
		return false, "", fmt.Errorf("activate premium: %w", err)
	}
	return true, fmt.Sprintf("Premium activated! (%s plan)", plan), nil
}

// ActivatePremium grants 30 days of premium without payment. Demo only.
func (m *Manager) ActivatePremium(ctx context.Context, userID string) error {
	expiry := m.now().AddDate(0, 0, 30)
	if _, err := m.store.EnsureUser(ctx, userID); err != nil {
		return err
	}
	return m.store.SetPremium(ctx, userID, true, &expiry, "")
}

// #endregion
