// Package rooms wraps the external video provider's room-provisioning API.
// The provider's room mechanics are opaque to this service: we ask for a
// room, get back a name and a join URL, and never look inside again.
package rooms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"communication-service/src/models"
)

// RoomProperties is the properties bag the provider accepts when a room is
// created. Exp is epoch seconds after which the provider closes the room.
type RoomProperties struct {
	MaxParticipants   int   `json:"max_participants"`
	Exp               int64 `json:"exp"`
	EnableChat        bool  `json:"enable_chat"`
	EnableRecording   bool  `json:"enable_recording"`
	EnableScreenshare bool  `json:"enable_screenshare"`
	StartAudioOff     bool  `json:"start_audio_off"`
	StartVideoOff     bool  `json:"start_video_off"`
}

// RoomRequest is the body of a room-creation call.
type RoomRequest struct {
	Name       string         `json:"name"`
	Privacy    string         `json:"privacy"`
	Properties RoomProperties `json:"properties"`
}

// Room is what the provider returns for a successfully created room.
type Room struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Client talks to the room provider over HTTP with a bearer API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a provisioning client. baseURL is the provider's API
// root without a trailing slash.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateRoom allocates one room. Any non-2xx response or malformed body is
// reported as a room-provisioning error; the caller aborts session
// creation before persisting anything.
func (c *Client) CreateRoom(ctx context.Context, request RoomRequest) (*Room, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode room request: %v", models.ErrRoomProvisioning, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rooms", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRoomProvisioning, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", models.ErrRoomProvisioning, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", models.ErrRoomProvisioning, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: provider returned status %d: %s",
			models.ErrRoomProvisioning, resp.StatusCode, string(respBody))
	}

	var room Room
	if err := json.Unmarshal(respBody, &room); err != nil {
		return nil, fmt.Errorf("%w: malformed provider response: %v", models.ErrRoomProvisioning, err)
	}
	if room.Name == "" || room.URL == "" {
		return nil, fmt.Errorf("%w: provider response missing room name or url", models.ErrRoomProvisioning)
	}

	return &room, nil
}
