package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/skill-matcher/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the analyses table if it does not exist
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS analyses (
		id                 UUID PRIMARY KEY,
		resume_preview     TEXT NOT NULL,
		job_preview        TEXT NOT NULL,
		resume_file        TEXT NOT NULL DEFAULT '',
		job_file           TEXT NOT NULL DEFAULT '',
		overall_score      DOUBLE PRECISION NOT NULL,
		result             JSONB,
		processing_time_ms BIGINT NOT NULL DEFAULT 0,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("failed to create analyses table: %w", err)
	}
	_, err = db.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC)`)
	if err != nil {
		return fmt.Errorf("failed to create analyses index: %w", err)
	}
	return nil
}

// SaveAnalysis stores an analysis record
func (db *DB) SaveAnalysis(ctx context.Context, a *Analysis) error {
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal match result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, resume_preview, job_preview, resume_file, job_file,
		                       overall_score, result, processing_time_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.ResumePreview, a.JobPreview, a.ResumeFile, a.JobFile,
		a.OverallScore, resultJSON, a.ProcessingTimeMS, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves an analysis by ID, or nil if it does not exist
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var a Analysis
	var resultJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, resume_preview, job_preview, resume_file, job_file,
		        overall_score, result, processing_time_ms, created_at
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.ResumePreview, &a.JobPreview, &a.ResumeFile, &a.JobFile,
		&a.OverallScore, &resultJSON, &a.ProcessingTimeMS, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if len(resultJSON) > 0 {
		var result types.MatchResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match result: %w", err)
		}
		a.Result = &result
	}
	return &a, nil
}

// ListAnalyses returns analyses newest first, without their full results
func (db *DB) ListAnalyses(ctx context.Context, limit, offset int) ([]Analysis, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_preview, job_preview, resume_file, job_file,
		        overall_score, processing_time_ms, created_at
		 FROM analyses ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	analyses := []Analysis{}
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.ID, &a.ResumePreview, &a.JobPreview, &a.ResumeFile, &a.JobFile,
			&a.OverallScore, &a.ProcessingTimeMS, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return analyses, nil
}

// DeleteAnalysis removes an analysis, returning ErrNotFound if it does not exist
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Statistics returns the count, mean and best overall score
func (db *DB) Statistics(ctx context.Context) (*Statistics, error) {
	var s Statistics
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(overall_score), 0), COALESCE(MAX(overall_score), 0) FROM analyses`,
	).Scan(&s.Count, &s.AverageScore, &s.BestScore)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	s.AverageScore = round1(s.AverageScore)
	return &s, nil
}
