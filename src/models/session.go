package models

import "time"

// SessionStatus represents the status of a communication session.
type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusScheduled SessionStatus = "scheduled"
	StatusActive    SessionStatus = "active"
	StatusEnded     SessionStatus = "ended"
	StatusFailed    SessionStatus = "failed"
)

// IsTerminal reports whether the status admits no further transitions.
func (s SessionStatus) IsTerminal() bool {
	return s == StatusEnded || s == StatusFailed
}

// NonTerminalStatuses lists every status a session can still leave.
func NonTerminalStatuses() []SessionStatus {
	return []SessionStatus{StatusPending, StatusScheduled, StatusActive}
}

// SessionKind distinguishes voice-only calls from full video calls.
type SessionKind string

const (
	KindVoice SessionKind = "voice"
	KindVideo SessionKind = "video"
)

// IsValid reports whether the kind is one this service provisions.
func (k SessionKind) IsValid() bool {
	return k == KindVoice || k == KindVideo
}

// CommunicationSession represents one voice/video call attached to a case.
// Exactly one row exists per externally provisioned room, and ended_at is
// set if and only if the status is ended.
type CommunicationSession struct {
	SessionID   string        `json:"session_id"`
	CaseID      string        `json:"case_id"`
	RoomName    string        `json:"room_name"`
	RoomURL     string        `json:"room_url"`
	Kind        SessionKind   `json:"kind"`
	Status      SessionStatus `json:"status"`
	InitiatorID string        `json:"initiator_id"`
	CreatedAt   time.Time     `json:"created_at"`
	EndedAt     *time.Time    `json:"ended_at,omitempty"`
}
