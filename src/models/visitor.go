package models

import "time"

// VisitorSession is advisory telemetry about a browser session: a
// client-generated identifier plus the page it landed on. It carries no
// correctness guarantees and is never joined against communication
// sessions.
type VisitorSession struct {
	VisitorID   string     `json:"visitor_id"`
	PagePath    string     `json:"page_path"`
	Referrer    string     `json:"referrer,omitempty"`
	UserAgent   string     `json:"user_agent,omitempty"`
	DurationSec int        `json:"duration_sec"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}
