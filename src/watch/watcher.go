// Package watch contains the client-side pieces of the session lifecycle:
// a polling validator that detects termination, and a best-effort notifier
// that reports abrupt teardown. Both are owned by whatever renders the
// call and hold no global state.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"communication-service/src/models"
)

// DefaultPollInterval is how often the watcher validates the session.
const DefaultPollInterval = 15 * time.Second

// StatusChecker reads the current status of a session. exists is false
// when the record is gone, which the watcher treats like a terminal
// observation.
type StatusChecker func(ctx context.Context, sessionID string) (status models.SessionStatus, exists bool, err error)

// Watcher polls a session's status and invokes a termination callback
// exactly once when the session is observed ended, failed or missing.
// After the callback fires the watcher stops itself; the owner can also
// cancel it at any time with Stop.
type Watcher struct {
	sessionID  string
	check      StatusChecker
	interval   time.Duration
	onTerminal func(models.SessionStatus)

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewWatcher creates a watcher for one session. interval <= 0 selects
// DefaultPollInterval. onTerminal receives the last observed status, or ""
// when the record vanished.
func NewWatcher(sessionID string, check StatusChecker, interval time.Duration, onTerminal func(models.SessionStatus)) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		sessionID:  sessionID,
		check:      check,
		interval:   interval,
		onTerminal: onTerminal,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start begins polling in its own goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop cancels polling. It is idempotent and safe to call after the
// watcher already stopped itself. A poll in flight is not interrupted; its
// late result is discarded.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
}

// Done is closed once the poll loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) loop() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			if w.pollOnce() {
				w.Stop()
				return
			}
		}
	}
}

// pollOnce returns true when a terminal state was observed and the
// callback fired. Transient check errors keep the loop going.
func (w *Watcher) pollOnce() bool {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	status, exists, err := w.check(ctx, w.sessionID)
	if err != nil {
		slog.Debug("Session status check failed, will retry",
			"session_id", w.sessionID,
			"error", err.Error())
		return false
	}

	if exists && !status.IsTerminal() {
		return false
	}

	select {
	case <-w.stop:
		// The owner cancelled while the check was in flight; the late
		// result is discarded and the callback never fires.
		return true
	default:
	}

	if w.onTerminal != nil {
		w.onTerminal(status)
	}
	return true
}

// HTTPStatusChecker builds a StatusChecker against the service's public
// status endpoint.
func HTTPStatusChecker(baseURL string, client *http.Client) StatusChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, sessionID string) (models.SessionStatus, bool, error) {
		url := fmt.Sprintf("%s/sessions/%s/status", baseURL, sessionID)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", false, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return "", false, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", false, fmt.Errorf("status endpoint returned %d", resp.StatusCode)
		}

		var body struct {
			Exists bool   `json:"exists"`
			Status string `json:"status"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", false, err
		}
		return models.SessionStatus(body.Status), body.Exists, nil
	}
}
