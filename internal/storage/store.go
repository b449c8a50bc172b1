// Package storage persists user accounts, saved drawings, and archived
// training data in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id        TEXT PRIMARY KEY,
	premium        INTEGER NOT NULL DEFAULT 0,
	premium_expiry TEXT,
	payment_plan   TEXT,
	trial_start    TEXT,
	total_uses     INTEGER NOT NULL DEFAULT 0,
	created_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS drawings (
	drawing_id  TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	title       TEXT NOT NULL,
	data        TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(user_id)
);

CREATE TABLE IF NOT EXISTS ai_training_data (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id     TEXT NOT NULL,
	prompt      TEXT NOT NULL,
	response    TEXT NOT NULL,
	rating      INTEGER NOT NULL,
	correction  TEXT,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_drawings_user ON drawings(user_id, created_at);
`
// #endregion schema

// #region store

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion

// #region users

// User is one account row.
type User struct {
	ID            string
	Premium       bool
	PremiumExpiry *time.Time
	PaymentPlan   string
	TrialStart    *time.Time
	TotalUses     int
	CreatedAt     time.Time
}

// GetUser loads an account. Returns ErrNotFound for unknown ids.
func (s *Store) GetUser(ctx context.Context, userID string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, premium, premium_expiry, payment_plan, trial_start, total_uses, created_at
		 FROM users WHERE user_id = ?`, userID)

	var u User
	var premium int
	var expiry, plan, trial sql.NullString
	var created string
	err := row.Scan(&u.ID, &premium, &expiry, &plan, &trial, &u.TotalUses, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scan user: %w", err)
	}

	u.Premium = premium != 0
	u.PaymentPlan = plan.String
	if u.PremiumExpiry, err = parseNullTime(expiry); err != nil {
		return User{}, fmt.Errorf("premium expiry: %w", err)
	}
	if u.TrialStart, err = parseNullTime(trial); err != nil {
		return User{}, fmt.Errorf("trial start: %w", err)
	}
	if u.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return User{}, fmt.Errorf("created at: %w", err)
	}
	return u, nil
}

// EnsureUser loads an account, creating an empty one when it is new.
func (s *Store) EnsureUser(ctx context.Context, userID string) (User, error) {
	u, err := s.GetUser(ctx, userID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, created_at) VALUES (?, ?)
		 ON CONFLICT(user_id) DO NOTHING`,
		userID, now.Format(time.RFC3339Nano))
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return s.GetUser(ctx, userID)
}

// IncrementUsage bumps the account's usage counter and returns the new
// total.
func (s *Store) IncrementUsage(ctx context.Context, userID string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET total_uses = total_uses + 1 WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("increment usage: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, ErrNotFound
	}

	var total int
	err = s.db.QueryRowContext(ctx,
		`SELECT total_uses FROM users WHERE user_id = ?`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("read usage: %w", err)
	}
	return total, nil
}

// StartTrial records the trial start when not already set.
func (s *Store) StartTrial(ctx context.Context, userID string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET trial_start = ? WHERE user_id = ? AND trial_start IS NULL`,
		startedAt.UTC().Format(time.RFC3339Nano), userID)
	if err != nil {
		return fmt.Errorf("start trial: %w", err)
	}
	return nil
}

// SetPremium updates the premium flag, expiry, and plan.
func (s *Store) SetPremium(ctx context.Context, userID string, premium bool, expiry *time.Time, plan string) error {
	flag := 0
	if premium {
		flag = 1
	}
	var expiryStr any
	if expiry != nil {
		expiryStr = expiry.UTC().Format(time.RFC3339Nano)
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET premium = ?, premium_expiry = ?, payment_plan = ? WHERE user_id = ?`,
		flag, expiryStr, plan, userID)
	if err != nil {
		return fmt.Errorf("set premium: %w", err)
	}
	return nil
}

func parseNullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// #endregion

// #region drawings

// Drawing is one saved gallery item.
type Drawing struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"created"`
}

// SaveDrawing stores a drawing in the user's gallery and returns its id.
func (s *Store) SaveDrawing(ctx context.Context, userID, title, data string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO drawings (drawing_id, user_id, title, data, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, userID, title, data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("save drawing: %w", err)
	}
	return id, nil
}

// Gallery lists the user's drawings, newest first.
func (s *Store) Gallery(ctx context.Context, userID string) ([]Drawing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT drawing_id, title, data, created_at FROM drawings
		 WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query gallery: %w", err)
	}
	defer rows.Close()

	var out []Drawing
	for rows.Next() {
		var d Drawing
		var created string
		if err := rows.Scan(&d.ID, &d.Title, &d.Data, &created); err != nil {
			return nil, fmt.Errorf("scan drawing: %w", err)
		}
		if d.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("drawing created at: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DrawingCount reports how many drawings the user has saved.
func (s *Store) DrawingCount(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM drawings WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count drawings: %w", err)
	}
	return n, nil
}

// #endregion

// #region training-archive

// SaveTrainingData archives one collected training entry.
func (s *Store) SaveTrainingData(ctx context.Context, userID, prompt, response string, rating int, correction string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ai_training_data (user_id, prompt, response, rating, correction, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, prompt, response, rating, correction, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("archive training data: %w", err)
	}
	return nil
}

// TrainingRecord is one archived feedback row.
type TrainingRecord struct {
	UserID     string
	Prompt     string
	Response   string
	Rating     int
	Correction string
	CreatedAt  time.Time
}

// ListTrainingData returns archived entries in insertion order.
func (s *Store) ListTrainingData(ctx context.Context) ([]TrainingRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, prompt, response, rating, correction, created_at
		 FROM ai_training_data ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list training data: %w", err)
	}
	defer rows.Close()

	var records []TrainingRecord
	for rows.Next() {
		var rec TrainingRecord
		var correction sql.NullString
		var created string
		if err := rows.Scan(&rec.UserID, &rec.Prompt, &rec.Response, &rec.Rating, &correction, &created); err != nil {
			return nil, fmt.Errorf("scan training data: %w", err)
		}
		rec.Correction = correction.String
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// TrainingDataCount reports how many entries have been archived.
func (s *Store) TrainingDataCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ai_training_data`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count training data: %w", err)
	}
	return n, nil
}

// #endregion
