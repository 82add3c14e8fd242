package main

import (
	"context"

	"github.com/xavierca1/landing-leads/internal/infra/http/middleware"
	"github.com/xavierca1/landing-leads/internal/infra/queue"
	"github.com/xavierca1/landing-leads/internal/usecase"
)

type instrumentedPublisher struct {
	next usecase.LeadEventPublisher
}

func (p instrumentedPublisher) PublishLeadCaptured(ctx context.Context, event queue.LeadCapturedEvent) error {
	err := p.next.PublishLeadCaptured(ctx, event)
	if err != nil {
		middleware.RecordIntegrationError("rabbitmq")
	}
	return err
}

type instrumentedSender struct {
	next queue.WelcomeSender
}

func (s instrumentedSender) SendLeadWelcome(to, name string) error {
	if err := s.next.SendLeadWelcome(to, name); err != nil {
		middleware.RecordWelcomeEmail("failed")
		middleware.RecordIntegrationError("smtp")
		return err
	}
	middleware.RecordWelcomeEmail("sent")
	return nil
}
