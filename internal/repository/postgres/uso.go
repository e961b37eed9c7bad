package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/repositories"
)

// PostgresUsoIARepository implements the UsoIARepository interface
type PostgresUsoIARepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewUsoIARepository creates a new usage log repository
func NewUsoIARepository(config *RepositoryConfig) repositories.UsoIARepository {
	return &PostgresUsoIARepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create appends one usage log entry
func (r *PostgresUsoIARepository) Create(ctx context.Context, entry *models.UsoIA) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (escritorio_id, usuario_id, endpoint, modelo, tokens_entrada, tokens_saida, custo_estimado, latencia_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		RETURNING id, created_at
	`, r.tables.UsoIA)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		entry.EscritorioID,
		entry.UsuarioID,
		entry.Endpoint,
		entry.Modelo,
		entry.TokensEntrada,
		entry.TokensSaida,
		entry.CustoEstimado,
		entry.LatenciaMillis,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("create uso_ia entry: %w", err)
	}

	return nil
}
