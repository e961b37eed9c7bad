package repositories

import (
	"context"

	"advogadovirtual/internal/domain/models"
)

// AtendimentoRepository persists case-intake records. Every lookup is
// scoped by escritorioID; a cross-tenant miss is domain.ErrNotFound.
type AtendimentoRepository interface {
	Create(ctx context.Context, atendimento *models.Atendimento) error
	GetByID(ctx context.Context, id, escritorioID string) (*models.Atendimento, error)
	UpdateTranscricao(ctx context.Context, id, escritorioID, transcricao string) error
}
