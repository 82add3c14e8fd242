package worker

import (
	"context"
	"log"
	"time"
)

// EventPurger deletes analytics events created before cutoff.
type EventPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AnalyticsRetentionWorker periodically drops analytics events past the retention window.
type AnalyticsRetentionWorker struct {
	purger       EventPurger
	retention    time.Duration
	tickInterval time.Duration
	now          func() time.Time
}

func NewAnalyticsRetentionWorker(purger EventPurger, retention time.Duration) *AnalyticsRetentionWorker {
	return &AnalyticsRetentionWorker{
		purger:       purger,
		retention:    retention,
		tickInterval: 1 * time.Hour,
		now:          time.Now,
	}
}

func (w *AnalyticsRetentionWorker) Start(ctx context.Context) {
	if w.retention <= 0 {
		log.Println("🕒 Retenção de analytics desativada")
		return
	}

	log.Printf("🕒 Analytics Retention Worker iniciado (janela de %s)", w.retention)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.purge(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Analytics Retention Worker encerrado")
			return
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *AnalyticsRetentionWorker) purge(ctx context.Context) {
	cutoff := w.now().Add(-w.retention)

	n, err := w.purger.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Erro ao remover eventos antigos: %v", err)
		return
	}

	if n > 0 {
		log.Printf("✅ %d evento(s) de analytics removidos (anteriores a %s)", n, cutoff.Format(time.RFC3339))
	}
}
