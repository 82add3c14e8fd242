package entity

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AnalyticsEvent struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	SessionID       string          `json:"session_id"`
	Data            json.RawMessage `json:"data"`
	ClientTimestamp *time.Time      `json:"client_timestamp,omitempty"`
	UserAgent       string          `json:"user_agent"`
	IPAddress       string          `json:"ip_address"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewAnalyticsEvent(eventType, sessionID string, data json.RawMessage, clientTS *time.Time, userAgent, ip string) (*AnalyticsEvent, error) {
	if strings.TrimSpace(eventType) == "" {
		return nil, errors.New("type is required")
	}
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	return &AnalyticsEvent{
		ID:              uuid.New().String(),
		Type:            eventType,
		SessionID:       sessionID,
		Data:            data,
		ClientTimestamp: clientTS,
		UserAgent:       userAgent,
		IPAddress:       ip,
		CreatedAt:       time.Now(),
	}, nil
}

type AnalyticsRepositoryInterface interface {
	Create(ctx context.Context, event *AnalyticsEvent) error
	CountByType(ctx context.Context) (map[string]int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
