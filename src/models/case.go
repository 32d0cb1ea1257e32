package models

import "time"

// Case is the slice of a legal case this service needs for authorization:
// the owning client and the counsel assigned to it. Case management itself
// lives in a sibling service; rows here are read-only.
type Case struct {
	CaseID           string     `json:"case_id"`
	ClientID         string     `json:"client_id"`
	AssignedLawyerID *string    `json:"assigned_lawyer_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	ClosedAt         *time.Time `json:"closed_at,omitempty"`
}

// IsParticipant reports whether userID is the case's client or its
// assigned counsel.
func (c *Case) IsParticipant(userID string) bool {
	if userID == "" {
		return false
	}
	if c.ClientID == userID {
		return true
	}
	return c.AssignedLawyerID != nil && *c.AssignedLawyerID == userID
}
