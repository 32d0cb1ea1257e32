package repository

import (
	"context"
	"fmt"

	"communication-service/src/db"
	"communication-service/src/models"
)

// VisitorRepository persists advisory visitor telemetry.
type VisitorRepository struct {
	db *db.DB
}

// NewVisitorRepository creates a new visitor repository
func NewVisitorRepository(database *db.DB) *VisitorRepository {
	return &VisitorRepository{
		db: database,
	}
}

// UpsertVisitor records a page view, creating the visitor session on first
// sight and updating the page on subsequent ones.
func (r *VisitorRepository) UpsertVisitor(ctx context.Context, visitor *models.VisitorSession) error {
	query := `
		INSERT INTO visitor_sessions (visitor_id, page_path, referrer, user_agent, started_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (visitor_id) DO UPDATE
		SET page_path = EXCLUDED.page_path
	`

	_, err := r.db.GetConnection().ExecContext(
		ctx,
		query,
		visitor.VisitorID,
		visitor.PagePath,
		nullIfEmpty(visitor.Referrer),
		nullIfEmpty(visitor.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert visitor session: %w", err)
	}

	return nil
}

// EndVisitor stamps a visitor session with its accumulated duration. An
// unknown visitor id is not an error; the telemetry is advisory only.
func (r *VisitorRepository) EndVisitor(ctx context.Context, visitorID string, durationSec int) error {
	query := `
		UPDATE visitor_sessions
		SET ended_at = NOW(), duration_sec = $1
		WHERE visitor_id = $2
	`

	if _, err := r.db.GetConnection().ExecContext(ctx, query, durationSec, visitorID); err != nil {
		return fmt.Errorf("failed to end visitor session: %w", err)
	}

	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
