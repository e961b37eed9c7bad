package service

import (
	"context"
	"fmt"
	"log/slog"

	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/repositories"
	"advogadovirtual/internal/domain/services"
	"advogadovirtual/internal/export"
)

// exportService implements the ExportService interface
type exportService struct {
	pecaRepo repositories.PecaRepository
	renderer export.Renderer
	logger   *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(pecaRepo repositories.PecaRepository, renderer export.Renderer, logger *slog.Logger) services.ExportService {
	return &exportService{pecaRepo: pecaRepo, renderer: renderer, logger: logger}
}

// Exportar renders a piece to DOCX and marks it exported. The status is
// only touched after the renderer hands back bytes, so a render failure
// leaves the piece untouched.
func (s *exportService) Exportar(ctx context.Context, ident models.Identity, pecaID string) (*services.ExportResult, error) {
	peca, err := s.pecaRepo.GetByID(ctx, pecaID, ident.EscritorioID)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("peca-%s-v%d.docx", peca.TipoPeca, peca.Versao)

	data, err := s.renderer.Render(ctx, peca.ConteudoMarkdown, filename)
	if err != nil {
		return nil, err
	}

	if err := s.pecaRepo.MarkExported(ctx, pecaID, ident.EscritorioID); err != nil {
		return nil, err
	}

	s.logger.Info("peca exported",
		"id", pecaID,
		"filename", filename,
		"bytes", len(data),
		"escritorio_id", ident.EscritorioID,
	)

	return &services.ExportResult{
		Filename:    filename,
		ContentType: export.ContentTypeDocx,
		Data:        data,
	}, nil
}
