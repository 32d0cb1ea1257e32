package schemas

// TrackVisitorRequest records a page view for an ephemeral visitor session.
type TrackVisitorRequest struct {
	VisitorID string `json:"visitor_id" binding:"required"`
	PagePath  string `json:"page_path" binding:"required"`
	Referrer  string `json:"referrer,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// EndVisitorRequest closes a visitor session with its accumulated duration.
type EndVisitorRequest struct {
	VisitorID   string `json:"visitor_id" binding:"required"`
	DurationSec int    `json:"duration_sec"`
}

// VisitorResponse acknowledges a telemetry write.
type VisitorResponse struct {
	Success   bool   `json:"success"`
	VisitorID string `json:"visitor_id"`
}
