package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"communication-service/src/db"
	"communication-service/src/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*SessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewSessionRepository(db.NewWithConnection(conn)), mock
}

func TestCreateSessionInsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	session := &models.CommunicationSession{
		SessionID:   "s1",
		CaseID:      "c1",
		RoomName:    "case-c1-s1",
		RoomURL:     "https://rooms.example/case-c1-s1",
		Kind:        models.KindVideo,
		Status:      models.StatusPending,
		InitiatorID: "u1",
		CreatedAt:   time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO communication_sessions")).
		WithArgs(session.SessionID, session.CaseID, session.RoomName, session.RoomURL,
			session.Kind, session.Status, session.InitiatorID, session.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM communication_sessions")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{
			"session_id", "case_id", "room_name", "room_url", "kind", "status",
			"initiator_id", "created_at", "ended_at",
		}))

	_, err := repo.GetSession(context.Background(), "ghost")
	if !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestTouchAndGetStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	endedAt := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SET last_activity_at = NOW()")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "ended_at"}).
			AddRow("ended", endedAt))

	status, got, err := repo.TouchAndGetStatus(context.Background(), "s1")
	if err != nil {
		t.Fatalf("TouchAndGetStatus failed: %v", err)
	}
	if status != models.StatusEnded {
		t.Errorf("status = %s, want ended", status)
	}
	if got == nil || !got.Equal(endedAt) {
		t.Errorf("ended_at = %v, want %v", got, endedAt)
	}
}

func TestTouchAndGetStatusMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SET last_activity_at = NOW()")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"status", "ended_at"}))

	_, _, err := repo.TouchAndGetStatus(context.Background(), "ghost")
	if !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestTransitionStatusApplied(t *testing.T) {
	repo, mock := newMockRepo(t)

	endedAt := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE communication_sessions")).
		WithArgs(models.StatusEnded, sqlmock.AnyArg(), "s1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	applied, err := repo.TransitionStatus(context.Background(), "s1", models.StatusEnded, &endedAt,
		models.StatusActive)
	if err != nil {
		t.Fatalf("TransitionStatus failed: %v", err)
	}
	if !applied {
		t.Error("applied = false, want true")
	}
}

func TestTransitionStatusLosesRace(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Another writer already moved the row out of the allowed set; the
	// guarded UPDATE matches nothing and the caller observes a no-op.
	endedAt := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE communication_sessions")).
		WithArgs(models.StatusEnded, sqlmock.AnyArg(), "s1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := repo.TransitionStatus(context.Background(), "s1", models.StatusEnded, &endedAt,
		models.StatusActive)
	if err != nil {
		t.Fatalf("TransitionStatus failed: %v", err)
	}
	if applied {
		t.Error("applied = true, want false")
	}
}

func TestCleanupStaleSessions(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT cleanup_stale_communication_sessions")).
		WithArgs(float64(7200)).
		WillReturnRows(sqlmock.NewRows([]string{"cleanup_stale_communication_sessions"}).AddRow(3))

	reclaimed, err := repo.CleanupStaleSessions(context.Background(), 2*time.Hour)
	if err != nil {
		t.Fatalf("CleanupStaleSessions failed: %v", err)
	}
	if reclaimed != 3 {
		t.Errorf("reclaimed = %d, want 3", reclaimed)
	}
}

func TestListSessionsByCase(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"session_id", "case_id", "room_name", "room_url", "kind", "status",
		"initiator_id", "created_at", "ended_at",
	}).
		AddRow("s2", "c1", "r2", "u2", "voice", "active", "u1", now, nil).
		AddRow("s1", "c1", "r1", "u1", "video", "ended", "u1", now.Add(-time.Hour), now)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("c1").
		WillReturnRows(rows)

	sessions, err := repo.ListSessionsByCase(context.Background(), "c1")
	if err != nil {
		t.Fatalf("ListSessionsByCase failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len(sessions) = %d, want 2", len(sessions))
	}
	if sessions[0].SessionID != "s2" {
		t.Errorf("first session = %s, want s2 (newest first)", sessions[0].SessionID)
	}
	if sessions[1].EndedAt == nil {
		t.Error("ended session missing ended_at")
	}
}
