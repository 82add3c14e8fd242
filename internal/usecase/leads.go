package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/xavierca1/landing-leads/internal/entity"
	"github.com/xavierca1/landing-leads/internal/infra/queue"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 10000
	ExportLimit      = 10000
)

type LeadService struct {
	Repo      entity.LeadRepositoryInterface
	Publisher LeadEventPublisher
}

// NewLeadService builds the service. publisher may be nil when the notification
// pipeline is disabled.
func NewLeadService(repo entity.LeadRepositoryInterface, publisher LeadEventPublisher) *LeadService {
	return &LeadService{Repo: repo, Publisher: publisher}
}

func (s *LeadService) CaptureLead(ctx context.Context, input CaptureLeadInput, meta RequestMeta) *Result {
	if errs := ValidateCaptureLeadInput(input); len(errs) > 0 {
		return fail("", &DomainError{Code: CodeValidation, Message: "Nome e e-mail são obrigatórios"})
	}

	exists, err := s.Repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return fail("Erro ao capturar lead: ", technical("falha ao verificar email", err))
	}
	if exists {
		return fail("", duplicateLeadEmail())
	}

	lead, err := entity.NewLead(input.Name, input.Email, input.TimeOnPage, input.PageURL, meta.UserAgent, meta.IPAddress)
	if err != nil {
		return fail("", &DomainError{Code: CodeValidation, Message: err.Error()})
	}

	if err := s.Repo.Create(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return fail("", duplicateLeadEmail())
		}
		return fail("Erro ao capturar lead: ", technical("falha ao inserir lead", err))
	}

	s.publishCaptured(ctx, lead)

	return succeed("Lead capturado com sucesso")
}

func (s *LeadService) publishCaptured(ctx context.Context, lead *entity.Lead) {
	if s.Publisher == nil {
		return
	}

	event := queue.LeadCapturedEvent{
		LeadID:     lead.ID,
		Name:       lead.Name,
		Email:      lead.Email,
		PageURL:    lead.PageURL,
		TimeOnPage: lead.TimeOnPage,
		CapturedAt: lead.CreatedAt,
	}

	// The lead is already stored; a broker outage must not turn the capture into a failure.
	if err := s.Publisher.PublishLeadCaptured(context.WithoutCancel(ctx), event); err != nil {
		log.Printf("⚠️ Lead %d salvo, mas falha ao publicar evento: %v", lead.ID, err)
	}
}

func duplicateLeadEmail() *DomainError {
	return &DomainError{Code: CodeDuplicateEmail, Message: "Email já cadastrado"}
}

// GetLeadByID returns nil when the lead does not exist or cannot be read.
func (s *LeadService) GetLeadByID(ctx context.Context, id int64) *entity.Lead {
	lead, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entity.ErrLeadNotFound) {
			log.Printf("❌ Erro ao buscar lead %d: %v", id, err)
		}
		return nil
	}
	return lead
}

// GetAllLeads lists leads newest first. Failures degrade to an empty list.
func (s *LeadService) GetAllLeads(ctx context.Context, limit, offset int) []entity.Lead {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	leads, err := s.Repo.FindAll(ctx, limit, offset)
	if err != nil {
		log.Printf("❌ Erro ao listar leads: %v", err)
		return []entity.Lead{}
	}
	if leads == nil {
		return []entity.Lead{}
	}
	return leads
}

func (s *LeadService) GetLeadsByEmail(ctx context.Context, email string) []entity.Lead {
	leads, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("❌ Erro ao buscar leads por email: %v", err)
		return []entity.Lead{}
	}
	if leads == nil {
		return []entity.Lead{}
	}
	return leads
}

func (s *LeadService) MarkAsProcessed(ctx context.Context, id int64, notes string) *Result {
	if err := s.Repo.MarkProcessed(ctx, id, notes); err != nil {
		return fail("Erro ao processar lead: ", technical("falha ao atualizar lead", err))
	}
	return succeed("Lead marcado como processado")
}

func (s *LeadService) MarkAsUnprocessed(ctx context.Context, id int64) *Result {
	if err := s.Repo.MarkUnprocessed(ctx, id); err != nil {
		return fail("Erro ao desmarcar lead: ", technical("falha ao atualizar lead", err))
	}
	return succeed("Lead marcado como não processado")
}

// DeleteLead does not check that the lead exists.
func (s *LeadService) DeleteLead(ctx context.Context, id int64) *Result {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fail("Erro ao deletar lead: ", technical("falha ao remover lead", err))
	}
	return succeed("Lead deletado com sucesso")
}

// UpdateLead applies only name, email and notes; other keys are dropped.
// Name and email may be changed but not blanked.
// Email uniqueness is enforced only by the storage constraint here.
func (s *LeadService) UpdateLead(ctx context.Context, id int64, data map[string]any) *Result {
	fields := make(map[string]any)
	for field, value := range data {
		if entity.IsUpdatableLeadField(field) {
			fields[field] = normalizeFieldValue(value)
		}
	}

	if len(fields) == 0 {
		return fail("", &DomainError{Code: CodeNoValidFields, Message: "Nenhum campo válido para atualizar"})
	}

	for _, required := range []string{"name", "email"} {
		value, ok := fields[required]
		if !ok {
			continue
		}
		if s, _ := value.(string); strings.TrimSpace(s) == "" {
			return fail("", &DomainError{Code: CodeValidation, Message: "Nome e e-mail não podem ficar vazios"})
		}
	}

	if err := s.Repo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return fail("", duplicateLeadEmail())
		}
		return fail("Erro ao atualizar lead: ", technical("falha ao atualizar lead", err))
	}
	return succeed("Lead atualizado com sucesso")
}

// normalizeFieldValue keeps strings and nulls, and renders anything else as text.
func normalizeFieldValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// GetLeadStats returns nil when the aggregates cannot be computed.
func (s *LeadService) GetLeadStats(ctx context.Context) *entity.LeadStats {
	stats, err := s.Repo.Stats(ctx)
	if err != nil {
		log.Printf("❌ Erro ao calcular estatísticas de leads: %v", err)
		return nil
	}

	stats.AvgTime = math.Round(stats.AvgTime*100) / 100
	if stats.ByPage == nil {
		stats.ByPage = []entity.LeadPageCount{}
	}
	return stats
}

// ExportLeads loads the rows for a CSV export. Unlike the listing operations it
// reports failures, so the caller can answer with an envelope before streaming.
func (s *LeadService) ExportLeads(ctx context.Context) ([]entity.Lead, error) {
	leads, err := s.Repo.FindAll(ctx, ExportLimit, 0)
	if err != nil {
		return nil, technical("falha ao carregar leads para exportação", err)
	}
	return leads, nil
}

// ExportFilename follows leads_export_2006-01-02_15-04-05.csv.
func ExportFilename(now time.Time) string {
	return "leads_export_" + now.Format("2006-01-02_15-04-05") + ".csv"
}
