package services

import (
	"context"

	"advogadovirtual/internal/domain/models"
)

// CreateAtendimentoRequest is the payload for creating an intake case.
type CreateAtendimentoRequest struct {
	ClienteID   string  `json:"cliente_id"`
	Area        string  `json:"area"`
	TipoServico *string `json:"tipo_servico,omitempty"`
	ModoInput   string  `json:"modo_input"`
	Transcricao string  `json:"transcricao"`
}

// UpdateTranscricaoRequest replaces the intake transcript after an edit
// or re-transcription.
type UpdateTranscricaoRequest struct {
	Transcricao string `json:"transcricao"`
}

// AtendimentoService manages case-intake records.
type AtendimentoService interface {
	Create(ctx context.Context, ident models.Identity, req *CreateAtendimentoRequest) (*models.Atendimento, error)
	Get(ctx context.Context, ident models.Identity, id string) (*models.Atendimento, error)
	UpdateTranscricao(ctx context.Context, ident models.Identity, id string, req *UpdateTranscricaoRequest) error
}
