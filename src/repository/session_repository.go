package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"communication-service/src/db"
	"communication-service/src/models"

	"github.com/lib/pq"
)

// SessionRepository handles all database operations for communication
// sessions. Every status change goes through TransitionStatus so the
// status-guarded UPDATE is the single concurrency-control point shared by
// manual termination, emergency cleanup and the reclamation sweep.
type SessionRepository struct {
	db *db.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(database *db.DB) *SessionRepository {
	return &SessionRepository{
		db: database,
	}
}

// CreateSession persists a freshly provisioned session. The caller has
// already allocated the room; a failure here is reported as-is and leaves
// no session row behind.
func (r *SessionRepository) CreateSession(ctx context.Context, session *models.CommunicationSession) error {
	query := `
		INSERT INTO communication_sessions
		(session_id, case_id, room_name, room_url, kind, status, initiator_id, created_at, last_activity_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`

	_, err := r.db.GetConnection().ExecContext(
		ctx,
		query,
		session.SessionID,
		session.CaseID,
		session.RoomName,
		session.RoomURL,
		session.Kind,
		session.Status,
		session.InitiatorID,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("Created communication session",
		"session_id", session.SessionID,
		"case_id", session.CaseID,
		"kind", session.Kind)

	return nil
}

// GetSession retrieves a session by ID.
func (r *SessionRepository) GetSession(ctx context.Context, sessionID string) (*models.CommunicationSession, error) {
	query := `
		SELECT session_id, case_id, room_name, room_url, kind, status,
		       initiator_id, created_at, ended_at
		FROM communication_sessions
		WHERE session_id = $1
	`

	var session models.CommunicationSession
	err := r.db.GetConnection().QueryRowContext(ctx, query, sessionID).Scan(
		&session.SessionID,
		&session.CaseID,
		&session.RoomName,
		&session.RoomURL,
		&session.Kind,
		&session.Status,
		&session.InitiatorID,
		&session.CreatedAt,
		&session.EndedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// TouchAndGetStatus reads the current status while refreshing the
// last-activity timestamp, so polling validators double as heartbeats for
// the staleness sweep.
func (r *SessionRepository) TouchAndGetStatus(ctx context.Context, sessionID string) (models.SessionStatus, *time.Time, error) {
	query := `
		UPDATE communication_sessions
		SET last_activity_at = NOW()
		WHERE session_id = $1
		RETURNING status, ended_at
	`

	var status models.SessionStatus
	var endedAt *time.Time
	err := r.db.GetConnection().QueryRowContext(ctx, query, sessionID).Scan(&status, &endedAt)

	if err == sql.ErrNoRows {
		return "", nil, models.ErrSessionNotFound
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to read session status: %w", err)
	}

	return status, endedAt, nil
}

// TransitionStatus applies "transition to `to` only if current status is in
// `allowedFrom`" as a single conditional UPDATE. It returns whether the
// transition applied; a losing concurrent writer observes false rather
// than corrupting state. endedAt must be non-nil exactly when `to` is
// ended.
func (r *SessionRepository) TransitionStatus(ctx context.Context, sessionID string, to models.SessionStatus, endedAt *time.Time, allowedFrom ...models.SessionStatus) (bool, error) {
	from := make([]string, 0, len(allowedFrom))
	for _, s := range allowedFrom {
		from = append(from, string(s))
	}

	query := `
		UPDATE communication_sessions
		SET status = $1, ended_at = $2, last_activity_at = NOW()
		WHERE session_id = $3 AND status = ANY($4)
	`

	result, err := r.db.GetConnection().ExecContext(ctx, query, to, endedAt, sessionID, pq.Array(from))
	if err != nil {
		return false, fmt.Errorf("failed to transition session status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		slog.Info("Session status transition applied",
			"session_id", sessionID,
			"status", to)
	}

	return rowsAffected > 0, nil
}

// ListSessionsByCase returns all sessions of a case, newest first.
func (r *SessionRepository) ListSessionsByCase(ctx context.Context, caseID string) ([]*models.CommunicationSession, error) {
	query := `
		SELECT session_id, case_id, room_name, room_url, kind, status,
		       initiator_id, created_at, ended_at
		FROM communication_sessions
		WHERE case_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.GetConnection().QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.CommunicationSession
	for rows.Next() {
		var session models.CommunicationSession
		if err := rows.Scan(
			&session.SessionID,
			&session.CaseID,
			&session.RoomName,
			&session.RoomURL,
			&session.Kind,
			&session.Status,
			&session.InitiatorID,
			&session.CreatedAt,
			&session.EndedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

// CleanupStaleSessions invokes the server-side stored procedure that
// reclaims every non-terminal session whose last activity is older than
// the threshold. Doing the scan inside the store keeps concurrent sweep
// instances from racing each other.
func (r *SessionRepository) CleanupStaleSessions(ctx context.Context, threshold time.Duration) (int64, error) {
	query := `SELECT cleanup_stale_communication_sessions(make_interval(secs => $1))`

	var reclaimed int64
	err := r.db.GetConnection().QueryRowContext(ctx, query, threshold.Seconds()).Scan(&reclaimed)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup stale sessions: %w", err)
	}

	if reclaimed > 0 {
		slog.Info("Reclaimed stale sessions", "count", reclaimed)
	}

	return reclaimed, nil
}
