package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pmarkov/probledger/internal/model"

	_ "modernc.org/sqlite"
)

// SQLite implements Store on a SQLite database
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) a SQLite ledger at the given path.
// Pass ":memory:" for an ephemeral in-memory ledger.
func NewSQLite(path string) (*SQLite, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		// Each pool connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		event      TEXT PRIMARY KEY,
		value      REAL NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Put inserts or replaces the entry for entry.Event
func (s *SQLite) Put(ctx context.Context, entry model.Entry) error {
	at := entry.UpdatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (event, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(event) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, entry.Event, entry.Value, at)
	if err != nil {
		return fmt.Errorf("failed to put entry: %w", err)
	}
	return nil
}

// Create inserts the entry only if the event name is free. The conflict
// check happens inside the INSERT, so concurrent callers cannot race it.
func (s *SQLite) Create(ctx context.Context, entry model.Entry) error {
	at := entry.UpdatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (event, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(event) DO NOTHING
	`, entry.Event, entry.Value, at)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check create result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrExists, entry.Event)
	}
	return nil
}

// Get returns the entry for the given event
func (s *SQLite) Get(ctx context.Context, event string) (model.Entry, error) {
	var entry model.Entry
	err := s.db.QueryRowContext(ctx, `
		SELECT event, value, updated_at FROM entries WHERE event = ?
	`, event).Scan(&entry.Event, &entry.Value, &entry.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, ErrNotFound
	}
	if err != nil {
		return model.Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// List returns all entries ordered by event name, then value
func (s *SQLite) List(ctx context.Context) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event, value, updated_at FROM entries ORDER BY event, value
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var entry model.Entry
		if err := rows.Scan(&entry.Event, &entry.Value, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Delete removes the entry for the given event
func (s *SQLite) Delete(ctx context.Context, event string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE event = ?`, event)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Adjust adds delta to the stored value and returns the updated entry
func (s *SQLite) Adjust(ctx context.Context, event string, delta float64) (model.Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Entry{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE entries SET value = value + ?, updated_at = ? WHERE event = ?
	`, delta, time.Now().UTC(), event)
	if err != nil {
		return model.Entry{}, fmt.Errorf("failed to adjust entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Entry{}, fmt.Errorf("failed to check adjust result: %w", err)
	}
	if affected == 0 {
		return model.Entry{}, ErrNotFound
	}

	var entry model.Entry
	err = tx.QueryRowContext(ctx, `
		SELECT event, value, updated_at FROM entries WHERE event = ?
	`, event).Scan(&entry.Event, &entry.Value, &entry.UpdatedAt)
	if err != nil {
		return model.Entry{}, fmt.Errorf("failed to read adjusted entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Entry{}, fmt.Errorf("failed to commit adjustment: %w", err)
	}
	return entry, nil
}

// Rename changes an entry's event name
func (s *SQLite) Rename(ctx context.Context, oldEvent, newEvent string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM entries WHERE event = ?
	`, newEvent).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check target name: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", ErrExists, newEvent)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE entries SET event = ?, updated_at = ? WHERE event = ?
	`, newEvent, time.Now().UTC(), oldEvent)
	if err != nil {
		return fmt.Errorf("failed to rename entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rename result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// Swap exchanges the values of two entries atomically
func (s *SQLite) Swap(ctx context.Context, eventA, eventB string) error {
	if eventA == eventB {
		return fmt.Errorf("cannot swap %q with itself", eventA)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var valueA, valueB float64
	if err := tx.QueryRowContext(ctx, `SELECT value FROM entries WHERE event = ?`, eventA).Scan(&valueA); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, eventA)
		}
		return fmt.Errorf("failed to read %q: %w", eventA, err)
	}
	if err := tx.QueryRowContext(ctx, `SELECT value FROM entries WHERE event = ?`, eventB).Scan(&valueB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, eventB)
		}
		return fmt.Errorf("failed to read %q: %w", eventB, err)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		UPDATE entries SET value = ?, updated_at = ? WHERE event = ?
	`, valueB, now, eventA); err != nil {
		return fmt.Errorf("failed to update %q: %w", eventA, err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE entries SET value = ?, updated_at = ? WHERE event = ?
	`, valueA, now, eventB); err != nil {
		return fmt.Errorf("failed to update %q: %w", eventB, err)
	}

	return tx.Commit()
}

// Close closes the underlying database
func (s *SQLite) Close() error {
	return s.db.Close()
}
