// Package sweeper runs the periodic reclamation sweep in-process. External
// schedulers can also hit the HTTP trigger; both paths call the same
// idempotent service operation, so overlapping runs are harmless.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"communication-service/src/service"

	"github.com/robfig/cron/v3"
)

// Sweeper schedules ReclaimStaleSessions on a cron expression.
type Sweeper struct {
	cron     *cron.Cron
	sessions *service.SessionService
}

// New creates a sweeper from a cron expression such as "@every 10m".
func New(sessions *service.SessionService, schedule string) (*Sweeper, error) {
	s := &Sweeper{
		cron:     cron.New(),
		sessions: sessions,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins the schedule in its own goroutine.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	reclaimed, purged, err := s.sessions.ReclaimStaleSessions(ctx)
	if err != nil {
		// Partial failures were already logged per step; the sweep itself
		// keeps its schedule.
		slog.Error("Reclamation sweep finished with errors", "error", err.Error())
	}

	slog.Info("Reclamation sweep finished",
		"sessions_reclaimed", reclaimed,
		"recordings_purged", purged)
}
