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

// PostgresDocumentoRepository implements the DocumentoRepository interface.
// Documents are written by the upload path and only read here.
type PostgresDocumentoRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentoRepository creates a new documento repository
func NewDocumentoRepository(config *RepositoryConfig) repositories.DocumentoRepository {
	return &PostgresDocumentoRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const documentoColumns = "id, escritorio_id, atendimento_id, nome, storage_path, texto_extraido, classificacao, created_at"

// GetByID retrieves a document scoped to the owning escritório
func (r *PostgresDocumentoRepository) GetByID(ctx context.Context, id, escritorioID string) (*models.Documento, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND escritorio_id = $2
	`, documentoColumns, r.tables.Documentos)

	executor := GetExecutor(ctx, r.pool)
	doc, err := scanDocumento(executor.QueryRow(ctx, query, id, escritorioID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("documento %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}

	return doc, nil
}

// ListByIDs returns the tenant's documents matching ids, preserving the
// requested order. Cross-tenant ids are simply absent from the result.
func (r *PostgresDocumentoRepository) ListByIDs(ctx context.Context, ids []string, escritorioID string) ([]models.Documento, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ANY($1) AND escritorio_id = $2
	`, documentoColumns, r.tables.Documentos)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ids, escritorioID)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]models.Documento, len(ids))
	for rows.Next() {
		doc, err := scanDocumento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		byID[doc.ID] = *doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}

	result := make([]models.Documento, 0, len(byID))
	for _, id := range ids {
		if doc, ok := byID[id]; ok {
			result = append(result, doc)
		}
	}

	return result, nil
}

// ListByAtendimento returns all documents attached to an intake case
func (r *PostgresDocumentoRepository) ListByAtendimento(ctx context.Context, atendimentoID, escritorioID string) ([]models.Documento, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE atendimento_id = $1 AND escritorio_id = $2
		ORDER BY created_at
	`, documentoColumns, r.tables.Documentos)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, atendimentoID, escritorioID)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()

	var result []models.Documento
	for rows.Next() {
		doc, err := scanDocumento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		result = append(result, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}

	return result, nil
}

// rowScanner matches both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocumento(row rowScanner) (*models.Documento, error) {
	var doc models.Documento
	err := row.Scan(
		&doc.ID,
		&doc.EscritorioID,
		&doc.AtendimentoID,
		&doc.Nome,
		&doc.StoragePath,
		&doc.TextoExtraido,
		&doc.Classificacao,
		&doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
