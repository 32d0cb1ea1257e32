package service

import (
	"context"

	"communication-service/logger"
	"communication-service/src/models"
)

// VisitorStore persists visitor telemetry.
type VisitorStore interface {
	UpsertVisitor(ctx context.Context, visitor *models.VisitorSession) error
	EndVisitor(ctx context.Context, visitorID string, durationSec int) error
}

// VisitorService records advisory browsing telemetry. Nothing here carries
// correctness guarantees: failures are logged and the caller still gets an
// acknowledgment, so a broken telemetry pipeline never breaks the UI.
type VisitorService struct {
	visitors VisitorStore
}

// NewVisitorService creates a new visitor telemetry service.
func NewVisitorService(visitors VisitorStore) *VisitorService {
	return &VisitorService{
		visitors: visitors,
	}
}

// Track records a page view for a visitor session.
func (s *VisitorService) Track(ctx context.Context, visitor *models.VisitorSession) {
	if err := s.visitors.UpsertVisitor(ctx, visitor); err != nil {
		logger.Logger.Warn("Failed to record visitor session: ", err.Error())
	}
}

// End closes a visitor session with its accumulated duration.
func (s *VisitorService) End(ctx context.Context, visitorID string, durationSec int) {
	if err := s.visitors.EndVisitor(ctx, visitorID, durationSec); err != nil {
		logger.Logger.Warn("Failed to end visitor session: ", err.Error())
	}
}
