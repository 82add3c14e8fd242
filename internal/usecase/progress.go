package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"log"

	"github.com/xavierca1/landing-leads/internal/entity"
)

type ProgressService struct {
	Repo entity.ProgressRepositoryInterface
}

func NewProgressService(repo entity.ProgressRepositoryInterface) *ProgressService {
	return &ProgressService{Repo: repo}
}

// SaveProgress merges data's top-level keys over what is stored for the user.
func (s *ProgressService) SaveProgress(ctx context.Context, userID int64, data json.RawMessage) *Result {
	if userID <= 0 {
		return fail("", &DomainError{Code: CodeValidation, Message: "Usuário não informado"})
	}
	if !isJSONObject(data) {
		return fail("", &DomainError{Code: CodeValidation, Message: "Dados de progresso inválidos"})
	}

	p := &entity.Progress{UserID: userID, Data: data}
	if err := s.Repo.Merge(ctx, p); err != nil {
		return fail("Erro ao salvar progresso: ", technical("falha ao gravar progresso", err))
	}

	return succeed("Progresso salvo com sucesso")
}

// GetProgress returns the stored document, or an empty object.
func (s *ProgressService) GetProgress(ctx context.Context, userID int64) json.RawMessage {
	p, err := s.Repo.FindByUserID(ctx, userID)
	if err != nil {
		log.Printf("❌ Erro ao carregar progresso do usuário %d: %v", userID, err)
		return json.RawMessage("{}")
	}
	if p == nil || len(p.Data) == 0 {
		return json.RawMessage("{}")
	}
	return p.Data
}

func isJSONObject(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Valid(trimmed)
}
