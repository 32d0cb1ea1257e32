package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"communication-service/src/db"
)

// RecordingRepository handles retention cleanup of recording metadata.
type RecordingRepository struct {
	db *db.DB
}

// NewRecordingRepository creates a new recording repository
func NewRecordingRepository(database *db.DB) *RecordingRepository {
	return &RecordingRepository{
		db: database,
	}
}

// PurgeExpiredRecordings deletes metadata of completed recordings older
// than the retention window. In-flight and failed recordings are never
// touched; failed ones are kept for manual inspection.
func (r *RecordingRepository) PurgeExpiredRecordings(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `
		DELETE FROM call_recordings
		WHERE status = 'completed'
		  AND created_at < NOW() - make_interval(secs => $1)
	`

	result, err := r.db.GetConnection().ExecContext(ctx, query, olderThan.Seconds())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired recordings: %w", err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if purged > 0 {
		slog.Info("Purged expired recording metadata", "count", purged)
	}

	return purged, nil
}
