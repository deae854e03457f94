package sqlite

import (
	"context"
	"countries/internal/adapters"
	"database/sql"
	"fmt"
	"time"
)

// timestamps are stored as fixed-width UTC text so they sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	sqlDB *sql.DB
	db    querier
	inTx  bool
}

func (s *Store) Countries() adapters.CountryRepository {
	return &CountryRepository{db: s.db}
}

func (s *Store) Meta() adapters.MetaRepository {
	return &MetaRepository{db: s.db}
}

// WithinTx runs fn against repositories sharing one transaction. Nested calls
// reuse the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(tx adapters.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err = fn(&Store{sqlDB: s.sqlDB, db: tx, inTx: true}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func NewStore(sqlDB *sql.DB) *Store {
	return &Store{sqlDB: sqlDB, db: sqlDB}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
