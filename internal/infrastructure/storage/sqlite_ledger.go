package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"goodnews/internal/domain"
	"goodnews/internal/ports"
)

// watched_at holds unix seconds so range comparisons stay exact.
const schema = `
CREATE TABLE IF NOT EXISTS watched (
    url        TEXT PRIMARY KEY,
    watched_at INTEGER NOT NULL
)`

// SQLiteLedger persists processed URLs in a file-backed SQLite database so
// deduplication survives process restarts.
type SQLiteLedger struct {
	db *sql.DB
}

var _ ports.Ledger = (*SQLiteLedger)(nil)

// Open creates (if needed) and opens the ledger database at path.
func Open(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}

	return &SQLiteLedger{db: db}, nil
}

// Seen reports whether url was already marked. Exact string match, no
// canonicalization.
func (l *SQLiteLedger) Seen(ctx context.Context, url string) (bool, error) {
	query, args, err := sq.Select("1").
		From("watched").
		Where(sq.Eq{"url": url}).
		ToSql()
	if err != nil {
		return false, &domain.StoreError{Op: "seen", Err: err}
	}

	var one int
	err = l.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &domain.StoreError{Op: "seen", Err: err}
	}

	return true, nil
}

// MarkSeen records url as processed. Idempotent: re-inserting an existing URL
// is a no-op, not an error.
func (l *SQLiteLedger) MarkSeen(ctx context.Context, url string) error {
	query, args, err := sq.Insert("watched").
		Columns("url", "watched_at").
		Values(url, time.Now().UTC().Unix()).
		Suffix("ON CONFLICT(url) DO NOTHING").
		ToSql()
	if err != nil {
		return &domain.StoreError{Op: "mark seen", Err: err}
	}

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return &domain.StoreError{Op: "mark seen", Err: err}
	}

	return nil
}

// PruneBefore removes entries older than cutoff and reports how many went.
func (l *SQLiteLedger) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := sq.Delete("watched").
		Where(sq.Lt{"watched_at": cutoff.UTC().Unix()}).
		ToSql()
	if err != nil {
		return 0, &domain.StoreError{Op: "prune", Err: err}
	}

	res, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, &domain.StoreError{Op: "prune", Err: err}
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, &domain.StoreError{Op: "prune", Err: err}
	}

	return removed, nil
}

// Entries returns the most recently marked entries, newest first, capped at
// limit. Intended for inspection and tests, so it is not part of the port.
func (l *SQLiteLedger) Entries(ctx context.Context, limit uint64) ([]domain.LedgerEntry, error) {
	query, args, err := sq.Select("url", "watched_at").
		From("watched").
		OrderBy("watched_at DESC", "url").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, &domain.StoreError{Op: "entries", Err: err}
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StoreError{Op: "entries", Err: err}
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var url string
		var watchedAt int64
		if err := rows.Scan(&url, &watchedAt); err != nil {
			return nil, &domain.StoreError{Op: "entries", Err: err}
		}
		entries = append(entries, domain.LedgerEntry{
			URL:       url,
			WatchedAt: time.Unix(watchedAt, 0).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "entries", Err: err}
	}

	return entries, nil
}

// Close releases the underlying database handle.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
