package services

import (
	"context"

	"advogadovirtual/internal/domain/models"
)

// ExportResult is a rendered document ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a piece through the external document renderer
// and marks it exported.
type ExportService interface {
	Exportar(ctx context.Context, ident models.Identity, pecaID string) (*ExportResult, error)
}
