package repositories

import (
	"context"
	"encoding/json"

	"advogadovirtual/internal/domain/models"
)

// PecaRepository persists generated pieces and their version log.
type PecaRepository interface {
	Create(ctx context.Context, peca *models.Peca) error
	GetByID(ctx context.Context, id, escritorioID string) (*models.Peca, error)

	// SaveNewVersion snapshots the current (versao, conteudo) pair into
	// peca_versoes, then sets the content to newContent and increments
	// versao by exactly 1, as a single transaction. The snapshot is
	// skipped when the current content is empty (freshly created piece).
	// Editing returns the piece to rascunho status.
	// Returns the new version number.
	SaveNewVersion(ctx context.Context, pecaID, escritorioID, newContent, editorID string) (int, error)

	ListVersions(ctx context.Context, pecaID, escritorioID string) ([]models.PecaVersao, error)

	SetValidacao(ctx context.Context, pecaID, escritorioID string, validacao json.RawMessage) error

	// UpdateStatus performs a conditional transition: the row must be in
	// fromStatus for the tenant or the call reports domain.ErrNotFound.
	// This is the guard against double-approval races.
	UpdateStatus(ctx context.Context, pecaID, escritorioID, fromStatus, toStatus string) (*models.Peca, error)

	// Review transitions record the reviewer; Reject also stores the reason.
	Approve(ctx context.Context, pecaID, escritorioID, reviewerID string) (*models.Peca, error)
	Reject(ctx context.Context, pecaID, escritorioID, reviewerID, motivo string) (*models.Peca, error)

	// MarkExported sets the exportada status unconditionally (export is
	// allowed from any status; the download itself is the gate).
	MarkExported(ctx context.Context, pecaID, escritorioID string) error
}
