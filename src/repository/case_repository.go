package repository

import (
	"context"
	"database/sql"
	"fmt"

	"communication-service/src/db"
	"communication-service/src/models"
)

// CaseRepository reads the case rows this service needs for participant
// authorization. Cases are owned by the case-management service; nothing
// here writes them.
type CaseRepository struct {
	db *db.DB
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(database *db.DB) *CaseRepository {
	return &CaseRepository{
		db: database,
	}
}

// GetCase retrieves a case by ID.
func (r *CaseRepository) GetCase(ctx context.Context, caseID string) (*models.Case, error) {
	query := `
		SELECT case_id, client_id, assigned_lawyer_id, created_at, closed_at
		FROM cases
		WHERE case_id = $1
	`

	var c models.Case
	err := r.db.GetConnection().QueryRowContext(ctx, query, caseID).Scan(
		&c.CaseID,
		&c.ClientID,
		&c.AssignedLawyerID,
		&c.CreatedAt,
		&c.ClosedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrCaseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	return &c, nil
}
