package queue

import (
	"context"

	"go.uber.org/zap"
)

// CacheInvalidator drops cached entries under a key prefix
type CacheInvalidator interface {
	InvalidatePrefix(ctx context.Context, prefix string)
}

// UserEventProcessor applies user lifecycle events to this service.
// Audit columns reference user IDs, so a deleted or updated user makes
// cached listings stale.
type UserEventProcessor struct {
	cache  CacheInvalidator
	logger *zap.Logger
}

// NewUserEventProcessor creates a UserEventProcessor. A nil cache
// disables invalidation.
func NewUserEventProcessor(cache CacheInvalidator, logger *zap.Logger) *UserEventProcessor {
	return &UserEventProcessor{cache: cache, logger: logger}
}

// HandleUserEvent implements UserEventHandler
func (p *UserEventProcessor) HandleUserEvent(ctx context.Context, event UserEvent) error {
	p.logger.Info("user event received",
		zap.String("type", event.Type),
		zap.String("user_id", event.UserID),
		zap.String("company_id", event.CompanyID),
	)

	if event.Type == EventUserCreated {
		return nil
	}

	if p.cache != nil {
		p.cache.InvalidatePrefix(ctx, "")
	}
	return nil
}

// Ensure UserEventProcessor implements UserEventHandler
var _ UserEventHandler = (*UserEventProcessor)(nil)
