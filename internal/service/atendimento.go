package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"advogadovirtual/internal/config"
	"advogadovirtual/internal/domain"
	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/repositories"
	"advogadovirtual/internal/domain/services"
	"advogadovirtual/internal/prompt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// atendimentoService implements the AtendimentoService interface
type atendimentoService struct {
	atendimentoRepo repositories.AtendimentoRepository
	logger          *slog.Logger
}

// NewAtendimentoService creates a new atendimento service
func NewAtendimentoService(
	atendimentoRepo repositories.AtendimentoRepository,
	logger *slog.Logger,
) services.AtendimentoService {
	return &atendimentoService{
		atendimentoRepo: atendimentoRepo,
		logger:          logger,
	}
}

// Create creates a new intake case for the caller's escritório
func (s *atendimentoService) Create(ctx context.Context, ident models.Identity, req *services.CreateAtendimentoRequest) (*models.Atendimento, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	atendimento := &models.Atendimento{
		EscritorioID: ident.EscritorioID,
		ClienteID:    req.ClienteID,
		Area:         req.Area,
		TipoServico:  req.TipoServico,
		ModoInput:    req.ModoInput,
		Transcricao:  strings.TrimSpace(req.Transcricao),
	}

	if err := s.atendimentoRepo.Create(ctx, atendimento); err != nil {
		return nil, err
	}

	s.logger.Info("atendimento created",
		"id", atendimento.ID,
		"area", atendimento.Area,
		"escritorio_id", ident.EscritorioID,
	)

	return atendimento, nil
}

// Get retrieves an intake case scoped to the caller's escritório
func (s *atendimentoService) Get(ctx context.Context, ident models.Identity, id string) (*models.Atendimento, error) {
	return s.atendimentoRepo.GetByID(ctx, id, ident.EscritorioID)
}

// UpdateTranscricao replaces the transcript after an edit or re-transcription
func (s *atendimentoService) UpdateTranscricao(ctx context.Context, ident models.Identity, id string, req *services.UpdateTranscricaoRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Transcricao, validation.Required, validation.Length(1, config.MaxTranscricaoLength)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	return s.atendimentoRepo.UpdateTranscricao(ctx, id, ident.EscritorioID, strings.TrimSpace(req.Transcricao))
}

func (s *atendimentoService) validateCreateRequest(req *services.CreateAtendimentoRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ClienteID, validation.Required, is.UUID),
		validation.Field(&req.Area, validation.Required, validation.By(validArea)),
		validation.Field(&req.ModoInput, validation.Required, validation.In(
			models.ModoInputAudio,
			models.ModoInputTexto,
			models.ModoInputFormulario,
		)),
		validation.Field(&req.Transcricao, validation.Length(0, config.MaxTranscricaoLength)),
	)
}

// validArea accepts only areas with registered prompt templates, so an
// intake can never be created that no template can serve later.
func validArea(value interface{}) error {
	area, _ := value.(string)
	if !prompt.HasArea(area) {
		return fmt.Errorf("unknown area %q", area)
	}
	return nil
}
