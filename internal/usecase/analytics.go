package usecase

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/landing-leads/internal/entity"
)

type AnalyticsService struct {
	Repo entity.AnalyticsRepositoryInterface
}

func NewAnalyticsService(repo entity.AnalyticsRepositoryInterface) *AnalyticsService {
	return &AnalyticsService{Repo: repo}
}

func (s *AnalyticsService) TrackEvent(ctx context.Context, input TrackEventInput, meta RequestMeta) *Result {
	if errs := ValidateTrackEventInput(input); len(errs) > 0 {
		return fail("", &DomainError{Code: CodeValidation, Message: joinValidationErrors(errs)})
	}

	var clientTS *time.Time
	if input.Timestamp != "" {
		if t, err := parseTimestamp(input.Timestamp); err == nil {
			clientTS = &t
		}
	}

	data := input.Data
	if len(data) > 0 && !isJSONObject(data) {
		// Scalars and arrays are kept under a single key so the column stays an object.
		data = append(append([]byte(`{"value":`), data...), '}')
	}

	event, err := entity.NewAnalyticsEvent(input.Type, input.SessionID, data, clientTS, meta.UserAgent, meta.IPAddress)
	if err != nil {
		return fail("", &DomainError{Code: CodeValidation, Message: err.Error()})
	}

	if err := s.Repo.Create(ctx, event); err != nil {
		return fail("Erro ao registrar evento: ", technical("falha ao gravar evento", err))
	}

	return succeed("Evento registrado com sucesso")
}

// EventCounts reports how many events of each type were stored. Failures give an empty map.
func (s *AnalyticsService) EventCounts(ctx context.Context) map[string]int {
	counts, err := s.Repo.CountByType(ctx)
	if err != nil {
		log.Printf("❌ Erro ao contar eventos: %v", err)
		return map[string]int{}
	}
	if counts == nil {
		return map[string]int{}
	}
	return counts
}

// PurgeOlderThan removes events created before cutoff.
func (s *AnalyticsService) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.Repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, technical("falha ao remover eventos antigos", err)
	}
	return n, nil
}
