package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"advogadovirtual/internal/domain"
	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/repositories"
	"advogadovirtual/internal/domain/services"
	"advogadovirtual/internal/prompt"
	"advogadovirtual/internal/usage"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// comandoService implements the ComandoService interface
type comandoService struct {
	atendimentoRepo repositories.AtendimentoRepository
	documentoRepo   repositories.DocumentoRepository
	completer       services.Completer
	recorder        *usage.Recorder
	logger          *slog.Logger
}

// NewComandoService creates a new comando service
func NewComandoService(
	atendimentoRepo repositories.AtendimentoRepository,
	documentoRepo repositories.DocumentoRepository,
	completer services.Completer,
	recorder *usage.Recorder,
	logger *slog.Logger,
) services.ComandoService {
	return &comandoService{
		atendimentoRepo: atendimentoRepo,
		documentoRepo:   documentoRepo,
		completer:       completer,
		recorder:        recorder,
		logger:          logger,
	}
}

// Executar runs a quick command against an intake case and streams the
// model output. Payload validation, template lookup and the tenant
// scoped intake fetch all happen before the model call, so no tokens
// are spent on requests that were never going to succeed.
func (s *comandoService) Executar(ctx context.Context, ident models.Identity, req *services.ComandoRequest) (<-chan services.Chunk, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.AtendimentoID, validation.Required, is.UUID),
		validation.Field(&req.ComandoID, validation.Required),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	template, err := prompt.ForComando(req.ComandoID)
	if err != nil {
		return nil, err
	}

	atendimento, err := s.atendimentoRepo.GetByID(ctx, req.AtendimentoID, ident.EscritorioID)
	if err != nil {
		return nil, err
	}

	documentos, err := s.documentoRepo.ListByAtendimento(ctx, atendimento.ID, ident.EscritorioID)
	if err != nil {
		return nil, err
	}

	rendered := template.Render(promptInput(atendimento, documentos))

	start := time.Now()
	chunks, err := s.completer.StreamCompletion(ctx, template.System, rendered)
	if err != nil {
		return nil, err
	}

	s.logger.Info("comando started",
		"comando_id", req.ComandoID,
		"atendimento_id", atendimento.ID,
		"escritorio_id", ident.EscritorioID,
	)

	// Forward chunks, intercepting the terminal usage chunk to record
	// spend. Usage logging is detached from the response path; the
	// consumer sees the terminal chunk regardless.
	out := make(chan services.Chunk, 16)
	go func() {
		defer close(out)
		for chunk := range chunks {
			if chunk.Usage != nil {
				s.recorder.Record(ident, "comando:"+req.ComandoID, s.completer.Model(), *chunk.Usage, time.Since(start))
			}
			out <- chunk
		}
	}()

	return out, nil
}

// promptInput assembles the registry input from an intake and its documents.
func promptInput(atendimento *models.Atendimento, documentos []models.Documento) prompt.Input {
	in := prompt.Input{
		Transcricao: atendimento.Transcricao,
		Fatos:       atendimento.Fatos,
	}
	if atendimento.PedidoEspecifico != nil {
		in.PedidoEspecifico = *atendimento.PedidoEspecifico
	}
	for _, doc := range documentos {
		in.Documentos = append(in.Documentos, prompt.DocumentoInput{
			Nome:          doc.Nome,
			Classificacao: doc.Classificacao,
			TextoExtraido: doc.TextoExtraido,
		})
	}
	return in
}
