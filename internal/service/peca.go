package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"advogadovirtual/internal/config"
	"advogadovirtual/internal/domain"
	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/repositories"
	"advogadovirtual/internal/domain/services"
	"advogadovirtual/internal/prompt"
	"advogadovirtual/internal/usage"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// pecaService implements the PecaService interface
type pecaService struct {
	pecaRepo        repositories.PecaRepository
	atendimentoRepo repositories.AtendimentoRepository
	documentoRepo   repositories.DocumentoRepository
	modeloRepo      repositories.ModeloRepository
	completer       services.Completer
	recorder        *usage.Recorder
	logger          *slog.Logger
}

// NewPecaService creates a new peca service
func NewPecaService(
	pecaRepo repositories.PecaRepository,
	atendimentoRepo repositories.AtendimentoRepository,
	documentoRepo repositories.DocumentoRepository,
	modeloRepo repositories.ModeloRepository,
	completer services.Completer,
	recorder *usage.Recorder,
	logger *slog.Logger,
) services.PecaService {
	return &pecaService{
		pecaRepo:        pecaRepo,
		atendimentoRepo: atendimentoRepo,
		documentoRepo:   documentoRepo,
		modeloRepo:      modeloRepo,
		completer:       completer,
		recorder:        recorder,
		logger:          logger,
	}
}

// Criar generates the initial content of a piece from its intake case.
// The generated text is persisted as version 1 in rascunho status.
func (s *pecaService) Criar(ctx context.Context, ident models.Identity, req *services.CreatePecaRequest) (*models.Peca, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.AtendimentoID, validation.Required, is.UUID),
		validation.Field(&req.TipoPeca, validation.Required),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	atendimento, err := s.atendimentoRepo.GetByID(ctx, req.AtendimentoID, ident.EscritorioID)
	if err != nil {
		return nil, err
	}

	// Template lookup before the model call; unknown (area, tipo) must
	// never cost tokens.
	template, err := prompt.ForPeca(atendimento.Area, req.TipoPeca)
	if err != nil {
		return nil, err
	}

	documentos, err := s.documentoRepo.ListByAtendimento(ctx, atendimento.ID, ident.EscritorioID)
	if err != nil {
		return nil, err
	}

	in := promptInput(atendimento, documentos)

	// Tenant boilerplate is optional; a missing modelo renders the
	// placeholder sentence instead.
	modelo, err := s.modeloRepo.GetByTipo(ctx, ident.EscritorioID, req.TipoPeca)
	if err == nil {
		in.ModeloEscritorio = modelo.Template
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	start := time.Now()
	chunks, err := s.completer.StreamCompletion(ctx, template.System, template.Render(in))
	if err != nil {
		return nil, err
	}

	var content strings.Builder
	for chunk := range chunks {
		if chunk.Err != nil {
			return nil, chunk.Err
		}
		if chunk.Usage != nil {
			s.recorder.Record(ident, "peca:gerar", s.completer.Model(), *chunk.Usage, time.Since(start))
		}
		content.WriteString(chunk.Text)
	}

	if strings.TrimSpace(content.String()) == "" {
		return nil, fmt.Errorf("empty generation result: %w", domain.ErrUpstream)
	}

	peca := &models.Peca{
		EscritorioID:     ident.EscritorioID,
		AtendimentoID:    atendimento.ID,
		TipoPeca:         req.TipoPeca,
		ConteudoMarkdown: content.String(),
	}

	if err := s.pecaRepo.Create(ctx, peca); err != nil {
		return nil, err
	}

	s.logger.Info("peca generated",
		"id", peca.ID,
		"tipo_peca", peca.TipoPeca,
		"atendimento_id", atendimento.ID,
		"escritorio_id", ident.EscritorioID,
	)

	return peca, nil
}

// Get retrieves a piece scoped to the caller's escritório
func (s *pecaService) Get(ctx context.Context, ident models.Identity, id string) (*models.Peca, error) {
	return s.pecaRepo.GetByID(ctx, id, ident.EscritorioID)
}

// SalvarConteudo persists a manual edit through the versioning store
func (s *pecaService) SalvarConteudo(ctx context.Context, ident models.Identity, id string, req *services.SalvarConteudoRequest) (int, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.ConteudoMarkdown, validation.Required, validation.Length(1, config.MaxConteudoLength)),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	return s.pecaRepo.SaveNewVersion(ctx, id, ident.EscritorioID, req.ConteudoMarkdown, ident.UserID)
}

// refinoResposta is the JSON schema the refino template demands.
type refinoResposta struct {
	ConteudoAtualizado string   `json:"conteudo_atualizado"`
	Mudancas           []string `json:"mudancas"`
	Divergencias       []string `json:"divergencias"`
}

// Refinar folds newly attached documents into a piece. The updated
// content goes through the versioning store like any other edit.
func (s *pecaService) Refinar(ctx context.Context, ident models.Identity, id string, req *services.RefinarRequest) (*services.RefinoResultado, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.DocumentoIDs,
			validation.Required,
			validation.Length(1, config.MaxDocumentosPorRefino),
			validation.Each(is.UUID),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	template, err := prompt.ForTarefa(prompt.TarefaRefino)
	if err != nil {
		return nil, err
	}

	peca, err := s.pecaRepo.GetByID(ctx, id, ident.EscritorioID)
	if err != nil {
		return nil, err
	}

	documentos, err := s.documentoRepo.ListByIDs(ctx, req.DocumentoIDs, ident.EscritorioID)
	if err != nil {
		return nil, err
	}
	// Cross-tenant ids are filtered out by the repository; if nothing
	// survived, the caller referenced documents it cannot see.
	if len(documentos) == 0 {
		return nil, fmt.Errorf("documentos: %w", domain.ErrNotFound)
	}

	in := prompt.Input{ConteudoAtual: peca.ConteudoMarkdown}
	for _, doc := range documentos {
		in.Documentos = append(in.Documentos, prompt.DocumentoInput{
			Nome:          doc.Nome,
			Classificacao: doc.Classificacao,
			TextoExtraido: doc.TextoExtraido,
		})
	}

	start := time.Now()
	raw, tokens, err := s.completer.CompletionJSON(ctx, template.System, template.Render(in))
	if tokens != nil {
		s.recorder.Record(ident, "peca:refinar", s.completer.Model(), *tokens, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	var resposta refinoResposta
	if err := json.Unmarshal(raw, &resposta); err != nil {
		return nil, fmt.Errorf("refino response shape: %w", domain.ErrMalformedModelOutput)
	}
	if strings.TrimSpace(resposta.ConteudoAtualizado) == "" {
		return nil, fmt.Errorf("refino missing conteudo_atualizado: %w", domain.ErrMalformedModelOutput)
	}

	versao, err := s.pecaRepo.SaveNewVersion(ctx, id, ident.EscritorioID, resposta.ConteudoAtualizado, ident.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("peca refined",
		"id", id,
		"versao", versao,
		"documentos", len(documentos),
		"escritorio_id", ident.EscritorioID,
	)

	return &services.RefinoResultado{
		Versao:       versao,
		Mudancas:     resposta.Mudancas,
		Divergencias: resposta.Divergencias,
	}, nil
}

// Validar runs the AI quality assessment and stores the result on the
// piece. The scores JSON is returned to the caller as-is.
func (s *pecaService) Validar(ctx context.Context, ident models.Identity, id string) (json.RawMessage, error) {
	template, err := prompt.ForTarefa(prompt.TarefaValidacao)
	if err != nil {
		return nil, err
	}

	peca, err := s.pecaRepo.GetByID(ctx, id, ident.EscritorioID)
	if err != nil {
		return nil, err
	}

	atendimento, err := s.atendimentoRepo.GetByID(ctx, peca.AtendimentoID, ident.EscritorioID)
	if err != nil {
		return nil, err
	}

	documentos, err := s.documentoRepo.ListByAtendimento(ctx, atendimento.ID, ident.EscritorioID)
	if err != nil {
		return nil, err
	}

	in := promptInput(atendimento, documentos)
	in.ConteudoAtual = peca.ConteudoMarkdown

	start := time.Now()
	raw, tokens, err := s.completer.CompletionJSON(ctx, template.System, template.Render(in))
	if tokens != nil {
		s.recorder.Record(ident, "peca:validar", s.completer.Model(), *tokens, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	if err := s.pecaRepo.SetValidacao(ctx, id, ident.EscritorioID, raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// EnviarParaRevisao transitions rascunho → aguardando_revisao
func (s *pecaService) EnviarParaRevisao(ctx context.Context, ident models.Identity, id string) (*models.Peca, error) {
	return s.pecaRepo.UpdateStatus(ctx, id, ident.EscritorioID, models.StatusRascunho, models.StatusAguardandoRevisao)
}

// Aprovar transitions aguardando_revisao → revisada. The role check
// runs before any repository access so a forbidden caller learns
// nothing about the piece, not even whether it exists.
func (s *pecaService) Aprovar(ctx context.Context, ident models.Identity, id string) (*models.Peca, error) {
	if !ident.CanReview() {
		return nil, fmt.Errorf("papel %s cannot review: %w", ident.Papel, domain.ErrForbidden)
	}

	peca, err := s.pecaRepo.Approve(ctx, id, ident.EscritorioID, ident.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("peca approved",
		"id", id,
		"reviewer", ident.UserID,
		"escritorio_id", ident.EscritorioID,
	)

	return peca, nil
}

// Rejeitar transitions aguardando_revisao → rejeitada with a reason
func (s *pecaService) Rejeitar(ctx context.Context, ident models.Identity, id string, req *services.RejeitarRequest) (*models.Peca, error) {
	if !ident.CanReview() {
		return nil, fmt.Errorf("papel %s cannot review: %w", ident.Papel, domain.ErrForbidden)
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.Motivo, validation.Required, validation.Length(1, config.MaxMotivoLength)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	peca, err := s.pecaRepo.Reject(ctx, id, ident.EscritorioID, ident.UserID, strings.TrimSpace(req.Motivo))
	if err != nil {
		return nil, err
	}

	s.logger.Info("peca rejected",
		"id", id,
		"reviewer", ident.UserID,
		"escritorio_id", ident.EscritorioID,
	)

	return peca, nil
}
