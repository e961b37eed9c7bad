package models

import (
	"encoding/json"
	"time"
)

// Lifecycle statuses of a generated piece.
const (
	StatusRascunho          = "rascunho"
	StatusAguardandoRevisao = "aguardando_revisao"
	StatusRevisada          = "revisada"
	StatusRejeitada         = "rejeitada"
	StatusExportada         = "exportada"
)

// Peca is a generated legal document artifact with a linear version
// history. Every mutation of ConteudoMarkdown first snapshots the
// pre-mutation (versao, conteudo) pair into peca_versoes before the
// counter is incremented.
type Peca struct {
	ID               string          `json:"id"`
	EscritorioID     string          `json:"escritorio_id"`
	AtendimentoID    string          `json:"atendimento_id"`
	TipoPeca         string          `json:"tipo_peca"`
	ConteudoMarkdown string          `json:"conteudo_markdown"`
	Versao           int             `json:"versao"`
	Status           string          `json:"status"`
	Validacao        json.RawMessage `json:"validacao,omitempty"`
	MotivoRejeicao   *string         `json:"motivo_rejeicao,omitempty"`
	RevisadoPor      *string         `json:"revisado_por,omitempty"`
	RevisadoEm       *time.Time      `json:"revisado_em,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PecaVersao is one historical version of a piece. Append-only: rows
// for a piece are exactly its versions 1..(current-1); the current
// content is never duplicated into the log until superseded.
type PecaVersao struct {
	ID               string    `json:"id"`
	EscritorioID     string    `json:"escritorio_id"`
	PecaID           string    `json:"peca_id"`
	Versao           int       `json:"versao"`
	ConteudoMarkdown string    `json:"conteudo_markdown"`
	EditadoPor       string    `json:"editado_por"`
	CreatedAt        time.Time `json:"created_at"`
}
