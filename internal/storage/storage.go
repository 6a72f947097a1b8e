// Package storage persists users, tokens and the four finance record kinds
// in SQLite. All finance queries are scoped by the owning user id.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jeamar123/budget-api/internal/core"

	_ "modernc.org/sqlite"
)

// dateLayout is the stored representation of dates. Lexicographic order on
// this layout matches chronological order, so BETWEEN-style filters compare
// strings directly.
const dateLayout = "2006-01-02 15:04:05"

type Repository struct {
	db *sql.DB
}

func Open(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// DateRange is an inclusive date filter.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func encodeDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func decodeDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		// Older rows may carry a bare date.
		t, err = time.Parse("2006-01-02", s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("decode date %q: %w", s, err)
	}
	return t, nil
}

func encodeAmount(d decimal.Decimal) string {
	return d.String()
}

func decodeAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode amount %q: %w", s, err)
	}
	return d, nil
}

func encodeCategoryIDs(s core.CategorySet) (string, error) {
	if s == nil {
		s = core.CategorySet{}
	}
	b, err := json.Marshal([]int64(s))
	if err != nil {
		return "", fmt.Errorf("encode category ids: %w", err)
	}
	return string(b), nil
}

func decodeCategoryIDs(raw string) (core.CategorySet, error) {
	if raw == "" {
		return core.CategorySet{}, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode category ids %q: %w", raw, err)
	}
	return core.CategorySet(ids), nil
}
