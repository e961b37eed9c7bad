package repositories

import (
	"context"

	"advogadovirtual/internal/domain/models"
)

// UsoIARepository appends usage log entries. Append-only; entries are
// never mutated or deleted by the pipeline.
type UsoIARepository interface {
	Create(ctx context.Context, entry *models.UsoIA) error
}
