package watch

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Notifier delivers the emergency-cleanup payload when a call UI is torn
// down abruptly. Delivery is at-most-once and unacknowledged: the primary
// attempt is fire-and-forget with a tight deadline, and if it cannot be
// started a synchronous fallback carrying the bearer credential is made.
// Failures are swallowed; the periodic reclamation sweep compensates.
type Notifier struct {
	endpoint string
	token    string
	client   *http.Client
	now      func() time.Time
}

// NewNotifier creates a notifier for the cleanup endpoint. token is used
// only by the fallback request.
func NewNotifier(endpoint, token string) *Notifier {
	return &Notifier{
		endpoint: endpoint,
		token:    token,
		client: &http.Client{
			Timeout: 3 * time.Second,
		},
		now: time.Now,
	}
}

// Notify attempts delivery of the cleanup payload for sessionID. It never
// returns an error: by the time it runs, nobody is left to handle one.
func (n *Notifier) Notify(sessionID string) {
	payload, err := json.Marshal(map[string]string{
		"session_id": sessionID,
		"end_time":   n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	if n.sendPrimary(payload) {
		return
	}
	n.sendFallback(payload)
}

// sendPrimary is the beacon-style attempt: no credentials, tight deadline,
// response discarded. Returns false when the attempt could not be made.
func (n *Notifier) sendPrimary(payload []byte) bool {
	resp, err := n.client.Post(n.endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		slog.Debug("Primary cleanup delivery failed", "error", err.Error())
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// sendFallback retries synchronously with the bearer credential attached.
func (n *Notifier) sendFallback(payload []byte) {
	req, err := http.NewRequest(http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		slog.Debug("Fallback cleanup delivery failed", "error", err.Error())
		return
	}
	resp.Body.Close()
}
