package models

import "errors"

// Sentinel errors shared between the repository and service layers. The
// service translates these into API errors; repositories never shape HTTP
// responses themselves.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrCaseNotFound     = errors.New("case not found")
	ErrUnauthorized     = errors.New("requester is not a participant of the case")
	ErrInvalidKind      = errors.New("session kind must be voice or video")
	ErrSessionTerminal  = errors.New("session is already in a terminal state")
	ErrRoomProvisioning = errors.New("room provisioning failed")
)
