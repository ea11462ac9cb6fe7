// Package store handles SQLite persistence for best times, attempts, and
// preferences.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chi-feng/typing-game/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Preference names used in the prefs table.
const (
	PrefSet            = "set"
	PrefSpeakKeys      = "speak-keys"
	PrefShowKeyboard   = "show-keyboard"
	PrefShowSpaceGlyph = "show-space-glyph"
)

// Store wraps SQLite access for game data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS best_times (
			phrase TEXT PRIMARY KEY,
			best_ms INTEGER NOT NULL,
			achieved_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY,
			set_key TEXT NOT NULL,
			phrase TEXT NOT NULL,
			chars INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			completed_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS prefs (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_completed_at ON attempts(completed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_phrase ON attempts(phrase);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// BestTime returns the stored record for a phrase, keyed by its typing form.
func (s *Store) BestTime(ctx context.Context, phrase string) (model.BestTime, bool, error) {
	var (
		bt         model.BestTime
		achievedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT phrase, best_ms, achieved_at FROM best_times WHERE phrase = ?`, phrase).
		Scan(&bt.Phrase, &bt.BestMs, &achievedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BestTime{}, false, nil
	}
	if err != nil {
		return model.BestTime{}, false, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, achievedAt)
	if err != nil {
		return model.BestTime{}, false, err
	}
	bt.AchievedAt = parsed
	return bt, true, nil
}

// SaveBestTime inserts or replaces the record for a phrase.
func (s *Store) SaveBestTime(ctx context.Context, bt model.BestTime) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO best_times (phrase, best_ms, achieved_at) VALUES (?, ?, ?)
		 ON CONFLICT(phrase) DO UPDATE SET best_ms = excluded.best_ms, achieved_at = excluded.achieved_at`,
		bt.Phrase, bt.BestMs, bt.AchievedAt.Format(time.RFC3339Nano))
	return err
}

// ListBestTimes returns every stored record, most recently achieved first.
func (s *Store) ListBestTimes(ctx context.Context) ([]model.BestTime, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT phrase, best_ms, achieved_at FROM best_times ORDER BY achieved_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.BestTime
	for rows.Next() {
		var (
			bt         model.BestTime
			achievedAt string
		)
		if err := rows.Scan(&bt.Phrase, &bt.BestMs, &achievedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, achievedAt)
		if err != nil {
			return nil, err
		}
		bt.AchievedAt = parsed
		result = append(result, bt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// InsertAttempt stores one completed phrase.
func (s *Store) InsertAttempt(ctx context.Context, a model.Attempt) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (set_key, phrase, chars, duration_ms, completed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		a.SetKey, a.Phrase, a.Chars, a.DurationMs, a.CompletedAt.Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAttempts returns attempts filtered by the times config, oldest first.
// When cfg.Last is positive only the most recent attempts are returned.
func (s *Store) ListAttempts(ctx context.Context, cfg model.TimesConfig) ([]model.Attempt, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.SetKey != "" {
		clauses = append(clauses, "set_key = ?")
		args = append(args, cfg.SetKey)
	}
	query := fmt.Sprintf(`SELECT id, set_key, phrase, chars, duration_ms, completed_at
		FROM attempts
		WHERE %s
		ORDER BY completed_at ASC, id ASC`, strings.Join(clauses, " AND "))
	if cfg.Last > 0 {
		query = fmt.Sprintf(`SELECT id, set_key, phrase, chars, duration_ms, completed_at
			FROM (SELECT * FROM attempts WHERE %s ORDER BY completed_at DESC, id DESC LIMIT ?)
			ORDER BY completed_at ASC, id ASC`, strings.Join(clauses, " AND "))
		args = append(args, cfg.Last)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []model.Attempt
	for rows.Next() {
		var (
			a           model.Attempt
			completedAt string
		)
		if err := rows.Scan(&a.ID, &a.SetKey, &a.Phrase, &a.Chars, &a.DurationMs, &completedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, completedAt)
		if err != nil {
			return nil, err
		}
		a.CompletedAt = parsed
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}

// Pref returns a stored preference value.
func (s *Store) Pref(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SavePref inserts or replaces a preference value.
func (s *Store) SavePref(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prefs (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		name, value)
	return err
}

// SaveTogglePref stores a boolean preference.
func (s *Store) SaveTogglePref(ctx context.Context, name string, value bool) error {
	return s.SavePref(ctx, name, strconv.FormatBool(value))
}

// LoadToggles applies stored toggle preferences on top of base. Missing or
// unparsable values leave the base value unchanged.
func (s *Store) LoadToggles(ctx context.Context, base model.Toggles) (model.Toggles, error) {
	toggles := base
	fields := []struct {
		name string
		dst  *bool
	}{
		{name: PrefSpeakKeys, dst: &toggles.SpeakKeys},
		{name: PrefShowKeyboard, dst: &toggles.ShowKeyboard},
		{name: PrefShowSpaceGlyph, dst: &toggles.ShowSpaceGlyph},
	}
	for _, f := range fields {
		value, ok, err := s.Pref(ctx, f.name)
		if err != nil {
			return base, err
		}
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			continue
		}
		*f.dst = parsed
	}
	return toggles, nil
}
