// Package store persists lookup results and price history in Postgres.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"grocerscan/matcher"
)

// Repository wraps the Postgres connection for lookup persistence.
type Repository struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS lookups (
	id           BIGSERIAL PRIMARY KEY,
	query        TEXT NOT NULL,
	matched_name TEXT NOT NULL,
	retailer     TEXT,
	price        NUMERIC(10,2),
	unit_price   NUMERIC(10,4),
	weight       NUMERIC(12,2),
	confidence   DOUBLE PRECISION NOT NULL,
	match_type   TEXT NOT NULL,
	issues       TEXT,
	url          TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_lookups_query ON lookups(query);
CREATE INDEX IF NOT EXISTS idx_lookups_created ON lookups(created_at DESC);
`

// Open connects to Postgres and ensures the schema exists.
func Open(databaseURL string) (*Repository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// SaveResult records one lookup outcome.
func (r *Repository) SaveResult(ctx context.Context, query string, res *matcher.MatchResult) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lookups (query, matched_name, retailer, price, unit_price, weight, confidence, match_type, issues, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		query, res.Name, nullString(res.Retailer), res.Price, res.UnitPrice, res.Weight,
		res.Confidence, string(res.MatchType), nullString(strings.Join(res.ValidationIssues, "; ")),
		nullString(res.URL))
	if err != nil {
		return fmt.Errorf("saving lookup for %q: %w", query, err)
	}
	return nil
}

// HistoryEntry is one stored lookup, newest first in History results.
type HistoryEntry struct {
	Query      string    `json:"query"`
	Name       string    `json:"name"`
	Retailer   string    `json:"retailer,omitempty"`
	Price      *float64  `json:"price,omitempty"`
	Confidence float64   `json:"confidence"`
	MatchType  string    `json:"match_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// History returns the stored lookups for a query, newest first.
func (r *Repository) History(ctx context.Context, query string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT query, matched_name, COALESCE(retailer, ''), price, confidence, match_type, created_at
		FROM lookups
		WHERE query = $1
		ORDER BY created_at DESC
		LIMIT $2`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("loading history for %q: %w", query, err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Query, &e.Name, &e.Retailer, &e.Price, &e.Confidence, &e.MatchType, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// StaleQueries returns distinct queries whose most recent lookup is older
// than maxAge, oldest first, for the scheduled refresher.
func (r *Repository) StaleQueries(ctx context.Context, maxAge time.Duration, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT query
		FROM lookups
		GROUP BY query
		HAVING MAX(created_at) < NOW() - $1::interval
		ORDER BY MAX(created_at) ASC
		LIMIT $2`, fmt.Sprintf("%d seconds", int(maxAge.Seconds())), limit)
	if err != nil {
		return nil, fmt.Errorf("loading stale queries: %w", err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("scanning stale query: %w", err)
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// QueryStat summarises lookup activity for one query.
type QueryStat struct {
	Query       string     `json:"query"`
	Lookups     int        `json:"lookups"`
	BestPrice   *float64   `json:"best_price,omitempty"`
	LastChecked *time.Time `json:"last_checked,omitempty"`
}

// TopQueries returns the most frequently looked-up queries with their
// best seen price.
func (r *Repository) TopQueries(ctx context.Context, limit int) ([]QueryStat, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT query, COUNT(*), MIN(price), MAX(created_at)
		FROM lookups
		GROUP BY query
		ORDER BY COUNT(*) DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("loading top queries: %w", err)
	}
	defer rows.Close()

	var stats []QueryStat
	for rows.Next() {
		var s QueryStat
		if err := rows.Scan(&s.Query, &s.Lookups, &s.BestPrice, &s.LastChecked); err != nil {
			return nil, fmt.Errorf("scanning query stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Close releases the database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
