package service

import (
	"context"
	"fmt"
	"log/slog"

	"advogadovirtual/internal/config"
	"advogadovirtual/internal/domain"
	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/repositories"
	"advogadovirtual/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// modeloService implements the ModeloService interface
type modeloService struct {
	modeloRepo repositories.ModeloRepository
	logger     *slog.Logger
}

// NewModeloService creates a new modelo service
func NewModeloService(modeloRepo repositories.ModeloRepository, logger *slog.Logger) services.ModeloService {
	return &modeloService{modeloRepo: modeloRepo, logger: logger}
}

// Upsert replaces the tenant template for a piece type
func (s *modeloService) Upsert(ctx context.Context, ident models.Identity, tipoPeca string, req *services.UpsertModeloRequest) (*models.ModeloDocumento, error) {
	if tipoPeca == "" {
		return nil, fmt.Errorf("%w: tipo_peca is required", domain.ErrValidation)
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.Template, validation.Required, validation.Length(1, config.MaxTemplateLength)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	modelo := &models.ModeloDocumento{
		EscritorioID: ident.EscritorioID,
		TipoPeca:     tipoPeca,
		Template:     req.Template,
	}

	if err := s.modeloRepo.Upsert(ctx, modelo); err != nil {
		return nil, err
	}

	s.logger.Info("modelo upserted",
		"tipo_peca", tipoPeca,
		"escritorio_id", ident.EscritorioID,
	)

	return modelo, nil
}

// Get retrieves the tenant template for a piece type
func (s *modeloService) Get(ctx context.Context, ident models.Identity, tipoPeca string) (*models.ModeloDocumento, error) {
	return s.modeloRepo.GetByTipo(ctx, ident.EscritorioID, tipoPeca)
}
