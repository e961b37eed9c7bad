package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"advogadovirtual/internal/domain"
	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/repositories"
)

// PostgresPecaRepository implements the PecaRepository interface,
// including the versioning store.
type PostgresPecaRepository struct {
	pool      *pgxpool.Pool
	tables    *TableNames
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewPecaRepository creates a new peca repository
func NewPecaRepository(config *RepositoryConfig, txManager repositories.TransactionManager) repositories.PecaRepository {
	return &PostgresPecaRepository{
		pool:      config.Pool,
		tables:    config.Tables,
		txManager: txManager,
		logger:    config.Logger,
	}
}

const pecaColumns = `id, escritorio_id, atendimento_id, tipo_peca, conteudo_markdown, versao, status,
		validacao, motivo_rejeicao, revisado_por, revisado_em, created_at, updated_at`

// Create inserts a new piece at version 1 in rascunho status
func (r *PostgresPecaRepository) Create(ctx context.Context, p *models.Peca) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (escritorio_id, atendimento_id, tipo_peca, conteudo_markdown, versao, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 1, $5, now(), now())
		RETURNING id, versao, status, created_at, updated_at
	`, r.tables.Pecas)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		p.EscritorioID,
		p.AtendimentoID,
		p.TipoPeca,
		p.ConteudoMarkdown,
		models.StatusRascunho,
	).Scan(&p.ID, &p.Versao, &p.Status, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("atendimento %s: %w", p.AtendimentoID, domain.ErrNotFound)
		}
		return fmt.Errorf("create peca: %w", err)
	}

	return nil
}

// GetByID retrieves a piece scoped to the owning escritório
func (r *PostgresPecaRepository) GetByID(ctx context.Context, id, escritorioID string) (*models.Peca, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND escritorio_id = $2
	`, pecaColumns, r.tables.Pecas)

	executor := GetExecutor(ctx, r.pool)
	p, err := scanPeca(executor.QueryRow(ctx, query, id, escritorioID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("peca %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get peca: %w", err)
	}

	return p, nil
}

// SaveNewVersion snapshots the current (versao, conteudo) pair into the
// version log, then overwrites the content and increments the counter,
// all inside one transaction. If the log insert fails the counter is
// never bumped, so the log and the counter cannot diverge.
//
// The SELECT takes FOR UPDATE so two concurrent saves serialize inside
// the transaction; across transactions the policy is last-writer-wins
// (no optimistic-concurrency token), which is the accepted behavior.
// The log still records the content each writer saw as current.
func (r *PostgresPecaRepository) SaveNewVersion(ctx context.Context, pecaID, escritorioID, newContent, editorID string) (int, error) {
	var newVersion int

	err := r.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, r.pool)

		lockQuery := fmt.Sprintf(`
			SELECT versao, conteudo_markdown
			FROM %s
			WHERE id = $1 AND escritorio_id = $2
			FOR UPDATE
		`, r.tables.Pecas)

		var currentVersion int
		var currentContent string
		err := executor.QueryRow(txCtx, lockQuery, pecaID, escritorioID).Scan(&currentVersion, &currentContent)
		if err != nil {
			if IsPgNoRowsError(err) {
				return fmt.Errorf("peca %s: %w", pecaID, domain.ErrNotFound)
			}
			return fmt.Errorf("load current version: %w", err)
		}

		// A freshly created piece has no content worth snapshotting.
		if currentContent != "" {
			logQuery := fmt.Sprintf(`
				INSERT INTO %s (escritorio_id, peca_id, versao, conteudo_markdown, editado_por, created_at)
				VALUES ($1, $2, $3, $4, $5, now())
			`, r.tables.PecaVersoes)

			if _, err := executor.Exec(txCtx, logQuery, escritorioID, pecaID, currentVersion, currentContent, editorID); err != nil {
				return fmt.Errorf("append version log: %w", err)
			}
		}

		updateQuery := fmt.Sprintf(`
			UPDATE %s
			SET conteudo_markdown = $3, versao = versao + 1, status = $4, updated_at = now()
			WHERE id = $1 AND escritorio_id = $2
			RETURNING versao
		`, r.tables.Pecas)

		if err := executor.QueryRow(txCtx, updateQuery, pecaID, escritorioID, newContent, models.StatusRascunho).Scan(&newVersion); err != nil {
			return fmt.Errorf("update peca content: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return newVersion, nil
}

// ListVersions returns the version log for a piece, oldest first
func (r *PostgresPecaRepository) ListVersions(ctx context.Context, pecaID, escritorioID string) ([]models.PecaVersao, error) {
	query := fmt.Sprintf(`
		SELECT id, escritorio_id, peca_id, versao, conteudo_markdown, editado_por, created_at
		FROM %s
		WHERE peca_id = $1 AND escritorio_id = $2
		ORDER BY versao
	`, r.tables.PecaVersoes)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, pecaID, escritorioID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var result []models.PecaVersao
	for rows.Next() {
		var v models.PecaVersao
		if err := rows.Scan(&v.ID, &v.EscritorioID, &v.PecaID, &v.Versao, &v.ConteudoMarkdown, &v.EditadoPor, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	return result, nil
}

// SetValidacao stores the AI validation result on the piece
func (r *PostgresPecaRepository) SetValidacao(ctx context.Context, pecaID, escritorioID string, validacao json.RawMessage) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET validacao = $3, updated_at = now()
		WHERE id = $1 AND escritorio_id = $2
	`, r.tables.Pecas)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, pecaID, escritorioID, validacao)
	if err != nil {
		return fmt.Errorf("set validacao: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("peca %s: %w", pecaID, domain.ErrNotFound)
	}

	return nil
}

// UpdateStatus performs a conditional status transition. The WHERE
// clause requires the current status, so a row that already left
// fromStatus (for example a concurrently approved piece) reports
// ErrNotFound instead of silently succeeding.
func (r *PostgresPecaRepository) UpdateStatus(ctx context.Context, pecaID, escritorioID, fromStatus, toStatus string) (*models.Peca, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $4, updated_at = now()
		WHERE id = $1 AND escritorio_id = $2 AND status = $3
		RETURNING %s
	`, r.tables.Pecas, pecaColumns)

	executor := GetExecutor(ctx, r.pool)
	p, err := scanPeca(executor.QueryRow(ctx, query, pecaID, escritorioID, fromStatus, toStatus))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("peca %s in %s: %w", pecaID, fromStatus, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update status: %w", err)
	}

	return p, nil
}

// Approve transitions aguardando_revisao → revisada and records the reviewer
func (r *PostgresPecaRepository) Approve(ctx context.Context, pecaID, escritorioID, reviewerID string) (*models.Peca, error) {
	return r.review(ctx, pecaID, escritorioID, reviewerID, models.StatusRevisada, nil)
}

// Reject transitions aguardando_revisao → rejeitada and stores the reason
func (r *PostgresPecaRepository) Reject(ctx context.Context, pecaID, escritorioID, reviewerID, motivo string) (*models.Peca, error) {
	return r.review(ctx, pecaID, escritorioID, reviewerID, models.StatusRejeitada, &motivo)
}

func (r *PostgresPecaRepository) review(ctx context.Context, pecaID, escritorioID, reviewerID, toStatus string, motivo *string) (*models.Peca, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $3, revisado_por = $4, revisado_em = $5, motivo_rejeicao = $6, updated_at = now()
		WHERE id = $1 AND escritorio_id = $2 AND status = $7
		RETURNING %s
	`, r.tables.Pecas, pecaColumns)

	executor := GetExecutor(ctx, r.pool)
	p, err := scanPeca(executor.QueryRow(ctx, query,
		pecaID,
		escritorioID,
		toStatus,
		reviewerID,
		time.Now(),
		motivo,
		models.StatusAguardandoRevisao,
	))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("peca %s awaiting review: %w", pecaID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("review peca: %w", err)
	}

	return p, nil
}

// MarkExported sets the exportada status without a precondition
func (r *PostgresPecaRepository) MarkExported(ctx context.Context, pecaID, escritorioID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $3, updated_at = now()
		WHERE id = $1 AND escritorio_id = $2
	`, r.tables.Pecas)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, pecaID, escritorioID, models.StatusExportada)
	if err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("peca %s: %w", pecaID, domain.ErrNotFound)
	}

	return nil
}

func scanPeca(row rowScanner) (*models.Peca, error) {
	var p models.Peca
	err := row.Scan(
		&p.ID,
		&p.EscritorioID,
		&p.AtendimentoID,
		&p.TipoPeca,
		&p.ConteudoMarkdown,
		&p.Versao,
		&p.Status,
		&p.Validacao,
		&p.MotivoRejeicao,
		&p.RevisadoPor,
		&p.RevisadoEm,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
