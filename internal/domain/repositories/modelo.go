package repositories

import (
	"context"

	"advogadovirtual/internal/domain/models"
)

// ModeloRepository persists tenant document templates, one per
// (escritorio, tipo_peca).
type ModeloRepository interface {
	Upsert(ctx context.Context, modelo *models.ModeloDocumento) error
	GetByTipo(ctx context.Context, escritorioID, tipoPeca string) (*models.ModeloDocumento, error)
}
