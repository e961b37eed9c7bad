package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"advogadovirtual/internal/domain"
	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/repositories"
)

// PostgresModeloRepository implements the ModeloRepository interface
type PostgresModeloRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewModeloRepository creates a new modelo repository
func NewModeloRepository(config *RepositoryConfig) repositories.ModeloRepository {
	return &PostgresModeloRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Upsert replaces the tenant's template for a piece type, relying on
// the unique (escritorio_id, tipo_peca) constraint.
func (r *PostgresModeloRepository) Upsert(ctx context.Context, m *models.ModeloDocumento) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (escritorio_id, tipo_peca, template, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (escritorio_id, tipo_peca)
		DO UPDATE SET template = EXCLUDED.template, updated_at = now()
		RETURNING id, updated_at
	`, r.tables.ModelosDocumento)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, m.EscritorioID, m.TipoPeca, m.Template).Scan(&m.ID, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert modelo: %w", err)
	}

	return nil
}

// GetByTipo retrieves the tenant's template for a piece type
func (r *PostgresModeloRepository) GetByTipo(ctx context.Context, escritorioID, tipoPeca string) (*models.ModeloDocumento, error) {
	query := fmt.Sprintf(`
		SELECT id, escritorio_id, tipo_peca, template, updated_at
		FROM %s
		WHERE escritorio_id = $1 AND tipo_peca = $2
	`, r.tables.ModelosDocumento)

	var m models.ModeloDocumento
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, escritorioID, tipoPeca).Scan(
		&m.ID,
		&m.EscritorioID,
		&m.TipoPeca,
		&m.Template,
		&m.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("modelo %s: %w", tipoPeca, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get modelo: %w", err)
	}

	return &m, nil
}
