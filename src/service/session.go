package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"communication-service/src/metrics"
	"communication-service/src/models"
	"communication-service/src/rabbitmq"
	"communication-service/src/rooms"
	"communication-service/src/schemas"

	"github.com/google/uuid"
)

const (
	// RoomExpiry is how long a provisioned room stays open. Sessions not
	// torn down by then are picked up by the staleness sweep.
	RoomExpiry = 2 * time.Hour

	// RoomMaxParticipants covers the case's client and its counsel.
	RoomMaxParticipants = 2

	// RecordingRetention is the window after which completed recording
	// metadata is purged by the sweep.
	RecordingRetention = 30 * 24 * time.Hour
)

// SessionStore is the persistence interface the lifecycle manager needs.
// *repository.SessionRepository implements it.
type SessionStore interface {
	CreateSession(ctx context.Context, session *models.CommunicationSession) error
	GetSession(ctx context.Context, sessionID string) (*models.CommunicationSession, error)
	TouchAndGetStatus(ctx context.Context, sessionID string) (models.SessionStatus, *time.Time, error)
	TransitionStatus(ctx context.Context, sessionID string, to models.SessionStatus, endedAt *time.Time, allowedFrom ...models.SessionStatus) (bool, error)
	ListSessionsByCase(ctx context.Context, caseID string) ([]*models.CommunicationSession, error)
	CleanupStaleSessions(ctx context.Context, threshold time.Duration) (int64, error)
}

// CaseStore resolves case participants for authorization.
type CaseStore interface {
	GetCase(ctx context.Context, caseID string) (*models.Case, error)
}

// RecordingStore handles recording retention cleanup.
type RecordingStore interface {
	PurgeExpiredRecordings(ctx context.Context, olderThan time.Duration) (int64, error)
}

// RoomProvisioner allocates call rooms from the external video provider.
type RoomProvisioner interface {
	CreateRoom(ctx context.Context, request rooms.RoomRequest) (*rooms.Room, error)
}

// SessionService owns the communication-session state machine:
//
//	pending/scheduled -> active -> ended
//	any non-terminal  -> failed
//
// All coordination between concurrent actors (multiple tabs, the sweep,
// manual termination) is pushed down into the store's status-guarded
// transition; this layer never holds session state in memory.
type SessionService struct {
	sessions   SessionStore
	cases      CaseStore
	recordings RecordingStore
	rooms      RoomProvisioner
	publisher  rabbitmq.Publisher

	staleThreshold time.Duration
	now            func() time.Time
}

// NewSessionService wires the lifecycle manager. publisher may be nil when
// the broker is unavailable; events are then skipped.
func NewSessionService(sessions SessionStore, cases CaseStore, recordings RecordingStore, provisioner RoomProvisioner, publisher rabbitmq.Publisher, staleThreshold time.Duration) *SessionService {
	return &SessionService{
		sessions:       sessions,
		cases:          cases,
		recordings:     recordings,
		rooms:          provisioner,
		publisher:      publisher,
		staleThreshold: staleThreshold,
		now:            time.Now,
	}
}

// CreateSession authorizes the requester against the case, provisions a
// room and persists the session as pending. A provisioning failure aborts
// before any persistence, so no orphan session rows exist; a persistence
// failure after provisioning leaves only an expiring room behind.
func (s *SessionService) CreateSession(ctx context.Context, caseID string, kind models.SessionKind, requesterID string) (*models.CommunicationSession, error) {
	if !kind.IsValid() {
		return nil, schemas.NewBadRequestError(models.ErrInvalidKind.Error())
	}

	legalCase, err := s.cases.GetCase(ctx, caseID)
	if err != nil {
		if errors.Is(err, models.ErrCaseNotFound) {
			return nil, schemas.NewNotFoundError(fmt.Sprintf("case %s not found", caseID))
		}
		return nil, schemas.NewPersistenceError(fmt.Sprintf("failed to load case: %v", err))
	}

	if !legalCase.IsParticipant(requesterID) {
		return nil, schemas.NewUnauthorizedError("requester is neither the case's client nor its assigned counsel")
	}

	sessionID := uuid.New().String()
	roomName := fmt.Sprintf("case-%s-%s", caseID, sessionID[:8])
	now := s.now()

	room, err := s.rooms.CreateRoom(ctx, rooms.RoomRequest{
		Name:    roomName,
		Privacy: "private",
		Properties: rooms.RoomProperties{
			MaxParticipants:   RoomMaxParticipants,
			Exp:               now.Add(RoomExpiry).Unix(),
			EnableChat:        true,
			EnableRecording:   kind == models.KindVideo,
			EnableScreenshare: kind == models.KindVideo,
			StartAudioOff:     false,
			StartVideoOff:     kind == models.KindVoice,
		},
	})
	if err != nil {
		metrics.ProvisioningFailures.Inc()
		slog.Error("Room provisioning failed",
			"case_id", caseID,
			"kind", kind,
			"error", err.Error())
		return nil, schemas.NewRoomProvisioningError(err.Error())
	}

	session := &models.CommunicationSession{
		SessionID:   sessionID,
		CaseID:      caseID,
		RoomName:    room.Name,
		RoomURL:     room.URL,
		Kind:        kind,
		Status:      models.StatusPending,
		InitiatorID: requesterID,
		CreatedAt:   now,
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		// The provisioned room is not reclaimed here; it expires on its own.
		return nil, schemas.NewPersistenceError(err.Error())
	}

	metrics.SessionsCreated.WithLabelValues(string(kind)).Inc()
	s.publishEvent(rabbitmq.SessionEvent{
		Event:     rabbitmq.EventSessionCreated,
		SessionID: session.SessionID,
		CaseID:    session.CaseID,
		Kind:      string(session.Kind),
		Status:    string(session.Status),
		Timestamp: now,
	})

	return session, nil
}

// ValidateSession reads the current status, refreshing the session's
// last-activity timestamp. A missing record is reported as absent, not as
// an error, so pollers can treat it like a terminal observation.
func (s *SessionService) ValidateSession(ctx context.Context, sessionID string) (models.SessionStatus, *time.Time, bool, error) {
	status, endedAt, err := s.sessions.TouchAndGetStatus(ctx, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return "", nil, false, nil
		}
		return "", nil, false, schemas.NewPersistenceError(err.Error())
	}
	return status, endedAt, true, nil
}

// ActivateSession marks a join as observed: pending/scheduled -> active.
// Re-activating an already active session is a no-op success; activating a
// terminal session is a conflict.
func (s *SessionService) ActivateSession(ctx context.Context, sessionID string) error {
	applied, err := s.sessions.TransitionStatus(ctx, sessionID, models.StatusActive, nil,
		models.StatusPending, models.StatusScheduled)
	if err != nil {
		return schemas.NewPersistenceError(err.Error())
	}
	if applied {
		metrics.SessionsActivated.Inc()
		s.publishEvent(rabbitmq.SessionEvent{
			Event:     rabbitmq.EventSessionActivated,
			SessionID: sessionID,
			Status:    string(models.StatusActive),
			Timestamp: s.now(),
		})
		return nil
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return schemas.NewNotFoundError(fmt.Sprintf("session %s not found", sessionID))
		}
		return schemas.NewPersistenceError(err.Error())
	}
	if session.Status == models.StatusActive {
		return nil
	}
	return schemas.NewConflictError(models.ErrSessionTerminal.Error())
}

// EndSession terminates a session. It is idempotent: ending an already
// terminal session succeeds without touching the row, so the stored
// ended_at never moves once set.
func (s *SessionService) EndSession(ctx context.Context, sessionID string) (*models.CommunicationSession, error) {
	endedAt := s.now()
	applied, err := s.sessions.TransitionStatus(ctx, sessionID, models.StatusEnded, &endedAt,
		models.NonTerminalStatuses()...)
	if err != nil {
		return nil, schemas.NewPersistenceError(err.Error())
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return nil, schemas.NewNotFoundError(fmt.Sprintf("session %s not found", sessionID))
		}
		return nil, schemas.NewPersistenceError(err.Error())
	}

	if applied {
		metrics.SessionsEnded.WithLabelValues(metrics.ReasonManual).Inc()
		s.publishEvent(rabbitmq.SessionEvent{
			Event:     rabbitmq.EventSessionEnded,
			SessionID: session.SessionID,
			CaseID:    session.CaseID,
			Kind:      string(session.Kind),
			Status:    string(session.Status),
			Timestamp: endedAt,
		})
	}

	return session, nil
}

// EmergencyCleanup conditionally ends a session that a client abandoned
// mid-call (tab closed, browser gone). Only active -> ended is applied; any
// other state is a no-op, which guards against racing a normal EndSession
// or the sweep. The reported end time from the beacon is advisory; the
// server clock wins.
func (s *SessionService) EmergencyCleanup(ctx context.Context, sessionID string) (bool, error) {
	endedAt := s.now()
	applied, err := s.sessions.TransitionStatus(ctx, sessionID, models.StatusEnded, &endedAt,
		models.StatusActive)
	if err != nil {
		return false, schemas.NewPersistenceError(err.Error())
	}

	if applied {
		metrics.SessionsEnded.WithLabelValues(metrics.ReasonEmergency).Inc()
		s.publishEvent(rabbitmq.SessionEvent{
			Event:     rabbitmq.EventSessionEnded,
			SessionID: sessionID,
			Status:    string(models.StatusEnded),
			Timestamp: endedAt,
		})
		slog.Info("Emergency cleanup ended session", "session_id", sessionID)
	}

	return applied, nil
}

// ReclaimStaleSessions runs one reclamation sweep: the store's idempotent
// cleanup procedure forces stale non-terminal sessions into a terminal
// state, then expired recording metadata is purged. The two steps are
// independent; a failure in one is reported but does not stop the other.
func (s *SessionService) ReclaimStaleSessions(ctx context.Context) (int64, int64, error) {
	var errs []error

	reclaimed, err := s.sessions.CleanupStaleSessions(ctx, s.staleThreshold)
	if err != nil {
		slog.Error("Stale session cleanup failed", "error", err.Error())
		errs = append(errs, err)
	} else if reclaimed > 0 {
		metrics.SessionsEnded.WithLabelValues(metrics.ReasonReclaimed).Add(float64(reclaimed))
		s.publishEvent(rabbitmq.SessionEvent{
			Event:     rabbitmq.EventSessionReclaimed,
			Status:    string(models.StatusEnded),
			Count:     reclaimed,
			Timestamp: s.now(),
		})
	}

	purged, err := s.recordings.PurgeExpiredRecordings(ctx, RecordingRetention)
	if err != nil {
		slog.Error("Recording retention cleanup failed", "error", err.Error())
		errs = append(errs, err)
	} else if purged > 0 {
		metrics.RecordingsPurged.Add(float64(purged))
	}

	if len(errs) > 0 {
		return reclaimed, purged, schemas.NewPersistenceError(errors.Join(errs...).Error())
	}
	return reclaimed, purged, nil
}

// ListCaseSessions returns a case's call history, newest first, after
// checking the requester is a participant.
func (s *SessionService) ListCaseSessions(ctx context.Context, caseID, requesterID string) ([]*models.CommunicationSession, error) {
	legalCase, err := s.cases.GetCase(ctx, caseID)
	if err != nil {
		if errors.Is(err, models.ErrCaseNotFound) {
			return nil, schemas.NewNotFoundError(fmt.Sprintf("case %s not found", caseID))
		}
		return nil, schemas.NewPersistenceError(fmt.Sprintf("failed to load case: %v", err))
	}
	if !legalCase.IsParticipant(requesterID) {
		return nil, schemas.NewUnauthorizedError("requester is neither the case's client nor its assigned counsel")
	}

	sessions, err := s.sessions.ListSessionsByCase(ctx, caseID)
	if err != nil {
		return nil, schemas.NewPersistenceError(err.Error())
	}
	return sessions, nil
}

// publishEvent emits a lifecycle event. Failures are logged and swallowed;
// the state machine never depends on the broker.
func (s *SessionService) publishEvent(event rabbitmq.SessionEvent) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to encode session event", "event", event.Event, "error", err.Error())
		return
	}
	if err := s.publisher.Publish(rabbitmq.SessionEventsExchange, body); err != nil {
		slog.Error("Failed to publish session event",
			"event", event.Event,
			"session_id", event.SessionID,
			"error", err.Error())
	}
}
