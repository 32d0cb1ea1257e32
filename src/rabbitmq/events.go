package rabbitmq

import "time"

// SessionEventsExchange is the fanout exchange session lifecycle events are
// published to. Consumers include the notification service and the case
// timeline worker.
const SessionEventsExchange = "communication.session.events"

// Event names carried in SessionEvent.Event.
const (
	EventSessionCreated   = "session.created"
	EventSessionActivated = "session.activated"
	EventSessionEnded     = "session.ended"
	EventSessionReclaimed = "session.reclaimed"
)

// SessionEvent is the JSON payload published for every lifecycle
// transition. Publishing is best-effort: a failed publish is logged and
// never rolls back the committed transition.
type SessionEvent struct {
	Event     string    `json:"event"`
	SessionID string    `json:"session_id,omitempty"`
	CaseID    string    `json:"case_id,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	Status    string    `json:"status"`
	Count     int64     `json:"count,omitempty"` // sweep events only
	Timestamp time.Time `json:"timestamp"`
}
