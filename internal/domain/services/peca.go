package services

import (
	"context"
	"encoding/json"

	"advogadovirtual/internal/domain/models"
)

// CreatePecaRequest asks for the initial generation of a piece from an
// intake case.
type CreatePecaRequest struct {
	AtendimentoID string `json:"atendimento_id"`
	TipoPeca      string `json:"tipo_peca"`
}

// SalvarConteudoRequest carries a manual edit of piece content.
type SalvarConteudoRequest struct {
	ConteudoMarkdown string `json:"conteudo_markdown"`
}

// RefinarRequest carries newly attached documents to fold into an
// existing piece.
type RefinarRequest struct {
	DocumentoIDs []string `json:"documento_ids"`
}

// RejeitarRequest carries the mandatory rejection reason.
type RejeitarRequest struct {
	Motivo string `json:"motivo"`
}

// RefinoResultado is the structured outcome of an AI refinement pass.
type RefinoResultado struct {
	Versao       int      `json:"versao"`
	Mudancas     []string `json:"mudancas"`
	Divergencias []string `json:"divergencias"`
}

// PecaService manages the lifecycle of generated pieces: creation,
// manual edits, AI refinement and validation, and review transitions.
type PecaService interface {
	Criar(ctx context.Context, ident models.Identity, req *CreatePecaRequest) (*models.Peca, error)
	Get(ctx context.Context, ident models.Identity, id string) (*models.Peca, error)

	// SalvarConteudo persists a manual edit through the versioning
	// store and returns the new version number.
	SalvarConteudo(ctx context.Context, ident models.Identity, id string, req *SalvarConteudoRequest) (int, error)

	Refinar(ctx context.Context, ident models.Identity, id string, req *RefinarRequest) (*RefinoResultado, error)
	Validar(ctx context.Context, ident models.Identity, id string) (json.RawMessage, error)

	EnviarParaRevisao(ctx context.Context, ident models.Identity, id string) (*models.Peca, error)
	Aprovar(ctx context.Context, ident models.Identity, id string) (*models.Peca, error)
	Rejeitar(ctx context.Context, ident models.Identity, id string, req *RejeitarRequest) (*models.Peca, error)
}
