package repositories

import (
	"context"

	"advogadovirtual/internal/domain/models"
)

// DocumentoRepository reads uploaded documents. Rows are written by the
// upload path (out of scope here) and never mutated.
type DocumentoRepository interface {
	GetByID(ctx context.Context, id, escritorioID string) (*models.Documento, error)
	// ListByIDs returns the documents matching ids within the tenant,
	// preserving the requested order. Ids belonging to another tenant
	// are silently absent from the result.
	ListByIDs(ctx context.Context, ids []string, escritorioID string) ([]models.Documento, error)
	ListByAtendimento(ctx context.Context, atendimentoID, escritorioID string) ([]models.Documento, error)
}
