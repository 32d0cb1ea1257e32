package models

import "time"

// RecordingStatus represents the processing state of a call recording.
type RecordingStatus string

const (
	RecordingInProgress RecordingStatus = "in_progress"
	RecordingCompleted  RecordingStatus = "completed"
	RecordingFailed     RecordingStatus = "failed"
)

// Recording is metadata about a recorded call segment. The media itself is
// stored by the video provider; this row only tracks its lifecycle so the
// retention sweep knows what is safe to purge. Only completed recordings
// past the retention window are ever deleted, never in-flight ones.
type Recording struct {
	RecordingID string          `json:"recording_id"`
	SessionID   string          `json:"session_id"`
	Status      RecordingStatus `json:"status"`
	DurationSec int             `json:"duration_sec"`
	CreatedAt   time.Time       `json:"created_at"`
}
