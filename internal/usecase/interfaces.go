package usecase

import (
	"context"

	"github.com/xavierca1/landing-leads/internal/infra/queue"
)

// LeadEventPublisher hands captured leads to the notification pipeline.
type LeadEventPublisher interface {
	PublishLeadCaptured(ctx context.Context, event queue.LeadCapturedEvent) error
}
