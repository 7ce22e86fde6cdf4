// Package db persists analysis history in PostgreSQL or SQLite.
package db

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when deleting an analysis that does not exist
var ErrNotFound = errors.New("analysis not found")

// Store is the analysis history. Get returns nil, nil for a missing ID.
type Store interface {
	SaveAnalysis(ctx context.Context, a *Analysis) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error)
	ListAnalyses(ctx context.Context, limit, offset int) ([]Analysis, error)
	DeleteAnalysis(ctx context.Context, id uuid.UUID) error
	Statistics(ctx context.Context) (*Statistics, error)
	Close()
}

// DefaultListLimit applies when a non-positive limit is requested
const DefaultListLimit = 50

// MaxListLimit caps the page size of ListAnalyses.
const MaxListLimit = 500

// Open connects to the backend named by dsn: postgres:// and postgresql:// URLs
// use PostgreSQL, "sqlite:" prefixed DSNs and plain file paths use SQLite. The
// schema is created if missing.
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case dsn == "":
		return nil, errors.New("database DSN is empty")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := Connect(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	default:
		path := strings.TrimPrefix(strings.TrimPrefix(dsn, "sqlite://"), "sqlite:")
		return OpenSQLite(ctx, path)
	}
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
