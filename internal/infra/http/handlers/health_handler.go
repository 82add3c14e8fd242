package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// BrokerConnection is satisfied by *amqp091.Connection.
type BrokerConnection interface {
	IsClosed() bool
}

var _ BrokerConnection = (*amqp091.Connection)(nil)

type HealthHandler struct {
	Databases map[string]*sql.DB
	RabbitMQ  BrokerConnection
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler checks every named database. rabbitMQ may be nil when the
// notification pipeline is disabled.
func NewHealthHandler(databases map[string]*sql.DB, rabbitMQ BrokerConnection) *HealthHandler {
	return &HealthHandler{
		Databases: databases,
		RabbitMQ:  rabbitMQ,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]string)
	degraded := false

	for name, db := range h.Databases {
		if db == nil {
			deps[name] = "not configured"
			continue
		}
		if err := db.PingContext(ctx); err != nil {
			deps[name] = fmt.Sprintf("unhealthy: %v", err)
			degraded = true
		} else {
			deps[name] = "healthy"
		}
	}

	switch {
	case h.RabbitMQ == nil:
		deps["rabbitmq"] = "not configured"
	case h.RabbitMQ.IsClosed():
		deps["rabbitmq"] = "unhealthy: connection closed"
		degraded = true
	default:
		deps["rabbitmq"] = "healthy"
	}

	status := "healthy"
	code := http.StatusOK
	if degraded {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
