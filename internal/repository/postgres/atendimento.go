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

// PostgresAtendimentoRepository implements the AtendimentoRepository interface
type PostgresAtendimentoRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewAtendimentoRepository creates a new atendimento repository
func NewAtendimentoRepository(config *RepositoryConfig) repositories.AtendimentoRepository {
	return &PostgresAtendimentoRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new intake case
func (r *PostgresAtendimentoRepository) Create(ctx context.Context, a *models.Atendimento) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (escritorio_id, cliente_id, area, tipo_servico, modo_input, transcricao, pedido_especifico, fatos, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING id, created_at, updated_at
	`, r.tables.Atendimentos)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		a.EscritorioID,
		a.ClienteID,
		a.Area,
		a.TipoServico,
		a.ModoInput,
		a.Transcricao,
		a.PedidoEspecifico,
		a.Fatos,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("cliente %s: %w", a.ClienteID, domain.ErrNotFound)
		}
		return fmt.Errorf("create atendimento: %w", err)
	}

	return nil
}

// GetByID retrieves an intake case scoped to the owning escritório
func (r *PostgresAtendimentoRepository) GetByID(ctx context.Context, id, escritorioID string) (*models.Atendimento, error) {
	query := fmt.Sprintf(`
		SELECT id, escritorio_id, cliente_id, area, tipo_servico, modo_input, transcricao, pedido_especifico, fatos, created_at, updated_at
		FROM %s
		WHERE id = $1 AND escritorio_id = $2
	`, r.tables.Atendimentos)

	var a models.Atendimento
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, escritorioID).Scan(
		&a.ID,
		&a.EscritorioID,
		&a.ClienteID,
		&a.Area,
		&a.TipoServico,
		&a.ModoInput,
		&a.Transcricao,
		&a.PedidoEspecifico,
		&a.Fatos,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("atendimento %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get atendimento: %w", err)
	}

	return &a, nil
}

// UpdateTranscricao replaces the transcript of an intake case
func (r *PostgresAtendimentoRepository) UpdateTranscricao(ctx context.Context, id, escritorioID, transcricao string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET transcricao = $3, updated_at = now()
		WHERE id = $1 AND escritorio_id = $2
	`, r.tables.Atendimentos)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, escritorioID, transcricao)
	if err != nil {
		return fmt.Errorf("update transcricao: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("atendimento %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
