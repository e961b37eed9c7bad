package services

import (
	"context"

	"advogadovirtual/internal/domain/models"
)

// ComandoRequest runs a quick command against an intake case.
type ComandoRequest struct {
	AtendimentoID string `json:"atendimento_id"`
	ComandoID     string `json:"comando_id"`
}

// ComandoService streams quick-command output. All failures that can be
// detected before the model call (unknown comando, missing intake,
// invalid payload) return an error from Executar; once the chunk
// channel is handed out, failures arrive as a terminal error chunk.
type ComandoService interface {
	Executar(ctx context.Context, ident models.Identity, req *ComandoRequest) (<-chan Chunk, error)
}
