/*
Package sqlite persists the calculation history.

PURPOSE:
  Every calculation served by the API is recorded append-only: the raw
  input, the full result and a timestamp. The engines themselves never
  touch storage - callers own persistence, and this store is how the
  HTTP surface does it.

APPEND-ONLY:
  No UPDATE, no DELETE. A calculation record is evidence of what was
  served; a corrected calculation is a new record.

WAL MODE:
  SQLite is opened with WAL so history reads never block writes.

USAGE:
  store, err := sqlite.New("./data/penal.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - api/handlers.go: the only writer
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
)

// CalculationRecord is one served calculation.
type CalculationRecord struct {
	ID        string
	Kind      string // "sentence" | "sentence_quick" | "alimony"
	Input     json.RawMessage
	Result    json.RawMessage
	CreatedAt time.Time
}

// Store is the SQLite-backed calculation history.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database. Use ":memory:" in tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Calculation history (append-only)
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		input_json TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_calculations_kind_created
		ON calculations(kind, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveCalculation appends one record.
func (s *Store) SaveCalculation(ctx context.Context, rec CalculationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (id, kind, input_json, result_json, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Kind, string(rec.Input), string(rec.Result),
		rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save calculation: %w", err)
	}
	return nil
}

// ListCalculations returns the most recent records, newest first.
func (s *Store) ListCalculations(ctx context.Context, limit int) ([]CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, input_json, result_json, created_at
		FROM calculations
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var recs []CalculationRecord
	for rows.Next() {
		rec, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// GetCalculation returns one record, or sql.ErrNoRows.
func (s *Store) GetCalculation(ctx context.Context, id string) (CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, input_json, result_json, created_at
		FROM calculations WHERE id = ?`, id)
	return scanCalculation(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row rowScanner) (CalculationRecord, error) {
	var rec CalculationRecord
	var input, result, createdAt string
	if err := row.Scan(&rec.ID, &rec.Kind, &input, &result, &createdAt); err != nil {
		return CalculationRecord{}, err
	}
	rec.Input = json.RawMessage(input)
	rec.Result = json.RawMessage(result)
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return rec, nil
}
