package schemas

import (
	"time"

	"communication-service/src/models"
)

// CreateSessionRequest represents the body of a request to start a call.
type CreateSessionRequest struct {
	CaseID string `json:"case_id" binding:"required"`
	Kind   string `json:"kind" binding:"required"`
}

// CreateSessionResponse represents the response after a room was
// provisioned and the session row persisted.
type CreateSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	RoomURL   string `json:"room_url"`
	Status    string `json:"status"`
}

// SessionStatusResponse is what pollers consume. Exists is false when the
// record is gone, in which case Status is empty.
type SessionStatusResponse struct {
	Success bool   `json:"success"`
	Exists  bool   `json:"exists"`
	Status  string `json:"status,omitempty"`
	EndedAt string `json:"ended_at,omitempty"`
}

// EndSessionResponse represents the response to a manual termination.
type EndSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	EndedAt   string `json:"ended_at,omitempty"`
}

// EmergencyCleanupRequest is the beacon payload sent as the page unloads.
// EndTime is RFC 3339; it is advisory and the server clock wins.
type EmergencyCleanupRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	EndTime   string `json:"end_time,omitempty"`
}

// EmergencyCleanupResponse reports whether the conditional transition
// applied. Applied is false when the session was not active.
type EmergencyCleanupResponse struct {
	Success bool `json:"success"`
	Applied bool `json:"applied"`
}

// ReclaimResponse summarizes one reclamation sweep.
type ReclaimResponse struct {
	Success           bool  `json:"success"`
	SessionsReclaimed int64 `json:"sessions_reclaimed"`
	RecordingsPurged  int64 `json:"recordings_purged"`
}

// SessionView is the JSON shape of a session as returned by list/detail
// endpoints.
type SessionView struct {
	SessionID string `json:"session_id"`
	CaseID    string `json:"case_id"`
	RoomURL   string `json:"room_url"`
	Kind      string `json:"kind"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	EndedAt   string `json:"ended_at,omitempty"`
}

// NewSessionView converts a model into its API representation.
func NewSessionView(s *models.CommunicationSession) SessionView {
	view := SessionView{
		SessionID: s.SessionID,
		CaseID:    s.CaseID,
		RoomURL:   s.RoomURL,
		Kind:      string(s.Kind),
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
	}
	if s.EndedAt != nil {
		view.EndedAt = s.EndedAt.UTC().Format(time.RFC3339)
	}
	return view
}
