package main

import (
	"context"
	"flag"
	"log"
	"time"

	"advogadovirtual/internal/config"
	"advogadovirtual/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Demo tenant and intake used by local development and the test suites.
const (
	demoEscritorioID  = "e0000000-0000-0000-0000-000000000001"
	demoUsuarioID     = "e0000000-0000-0000-0000-000000000002"
	demoClienteID     = "e0000000-0000-0000-0000-000000000003"
	demoAtendimentoID = "e0000000-0000-0000-0000-000000000010"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	clearData := flag.Bool("clear-data", false, "Clear demo tenant data (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("🧹 Clearing demo tenant data...")
		if err := clearTenantData(ctx, pool, tables, demoEscritorioID); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	log.Println("⚠️  Clearing existing demo tenant data...")
	if err := clearTenantData(ctx, pool, tables, demoEscritorioID); err != nil {
		log.Printf("Warning: Could not clear data: %v", err)
	}

	log.Println("📝 Seeding demo atendimento, documentos and modelo...")
	if err := seedDemoData(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Println("🎉 Seeding complete!")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	if _, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\""); err != nil {
		return err
	}

	createAtendimentos := `
		CREATE TABLE IF NOT EXISTS ` + tables.Atendimentos + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			escritorio_id UUID NOT NULL,
			cliente_id UUID NOT NULL,
			area TEXT NOT NULL,
			tipo_servico TEXT,
			modo_input TEXT NOT NULL,
			transcricao TEXT NOT NULL DEFAULT '',
			pedido_especifico TEXT,
			fatos JSONB,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createAtendimentos); err != nil {
		return err
	}

	createDocumentos := `
		CREATE TABLE IF NOT EXISTS ` + tables.Documentos + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			escritorio_id UUID NOT NULL,
			atendimento_id UUID NOT NULL REFERENCES ` + tables.Atendimentos + `(id) ON DELETE CASCADE,
			nome TEXT NOT NULL,
			storage_path TEXT NOT NULL DEFAULT '',
			texto_extraido TEXT NOT NULL DEFAULT '',
			classificacao TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createDocumentos); err != nil {
		return err
	}

	createPecas := `
		CREATE TABLE IF NOT EXISTS ` + tables.Pecas + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			escritorio_id UUID NOT NULL,
			atendimento_id UUID NOT NULL REFERENCES ` + tables.Atendimentos + `(id) ON DELETE CASCADE,
			tipo_peca TEXT NOT NULL,
			conteudo_markdown TEXT NOT NULL DEFAULT '',
			versao INTEGER NOT NULL DEFAULT 1,
			status TEXT NOT NULL DEFAULT 'rascunho',
			validacao JSONB,
			motivo_rejeicao TEXT,
			revisado_por UUID,
			revisado_em TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createPecas); err != nil {
		return err
	}

	createPecaVersoes := `
		CREATE TABLE IF NOT EXISTS ` + tables.PecaVersoes + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			escritorio_id UUID NOT NULL,
			peca_id UUID NOT NULL REFERENCES ` + tables.Pecas + `(id) ON DELETE CASCADE,
			versao INTEGER NOT NULL,
			conteudo_markdown TEXT NOT NULL,
			editado_por UUID NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(peca_id, versao)
		)
	`
	if _, err := pool.Exec(ctx, createPecaVersoes); err != nil {
		return err
	}

	createUsoIA := `
		CREATE TABLE IF NOT EXISTS ` + tables.UsoIA + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			escritorio_id UUID NOT NULL,
			usuario_id UUID NOT NULL,
			endpoint TEXT NOT NULL,
			modelo TEXT NOT NULL,
			tokens_entrada INTEGER NOT NULL DEFAULT 0,
			tokens_saida INTEGER NOT NULL DEFAULT 0,
			custo_estimado NUMERIC(12, 6) NOT NULL DEFAULT 0,
			latencia_ms BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createUsoIA); err != nil {
		return err
	}

	createModelos := `
		CREATE TABLE IF NOT EXISTS ` + tables.ModelosDocumento + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			escritorio_id UUID NOT NULL,
			tipo_peca TEXT NOT NULL,
			template TEXT NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(escritorio_id, tipo_peca)
		)
	`
	if _, err := pool.Exec(ctx, createModelos); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `atendimentos_escritorio ON ` + tables.Atendimentos + `(escritorio_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documentos_atendimento ON ` + tables.Documentos + `(atendimento_id, escritorio_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `pecas_atendimento ON ` + tables.Pecas + `(atendimento_id, escritorio_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `peca_versoes_peca ON ` + tables.PecaVersoes + `(peca_id, versao)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `uso_ia_escritorio_data ON ` + tables.UsoIA + `(escritorio_id, created_at)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.PecaVersoes,
		tables.Pecas,
		tables.Documentos,
		tables.UsoIA,
		tables.ModelosDocumento,
		tables.Atendimentos,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// clearTenantData removes everything the demo escritório owns
func clearTenantData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, escritorioID string) error {
	// Children first, atendimentos last.
	for _, table := range []string{
		tables.PecaVersoes,
		tables.Pecas,
		tables.Documentos,
		tables.UsoIA,
		tables.ModelosDocumento,
		tables.Atendimentos,
	} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table+" WHERE escritorio_id = $1", escritorioID); err != nil {
			return err
		}
	}
	return nil
}

// seedDemoData inserts one realistic trabalhista intake with two
// documents and a tenant template for petições iniciais.
func seedDemoData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	transcricao := `Cliente relata que trabalhou por quatro anos como vendedor na empresa Comercial Ltda.
Foi demitido sem justa causa em 10 de janeiro e até hoje não recebeu as verbas rescisórias.
Fazia horas extras habituais, duas por dia, que nunca foram pagas.
Não recebeu o aviso prévio nem a guia do seguro-desemprego.`

	insertAtendimento := `
		INSERT INTO ` + tables.Atendimentos + `
			(id, escritorio_id, cliente_id, area, tipo_servico, modo_input, transcricao, pedido_especifico, fatos, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (id) DO NOTHING
	`
	fatos := `{"tempo_servico": "4 anos", "data_demissao": "2026-01-10", "horas_extras_dia": 2}`
	_, err := pool.Exec(ctx, insertAtendimento,
		demoAtendimentoID, demoEscritorioID, demoClienteID,
		"trabalhista", "reclamacao_trabalhista", "texto",
		transcricao, "Quer receber as verbas rescisórias e as horas extras.", fatos,
		time.Now(),
	)
	if err != nil {
		return err
	}
	log.Printf("✅ Created atendimento %s", demoAtendimentoID)

	documentos := []struct {
		nome, classificacao, texto string
	}{
		{
			nome:          "CTPS.pdf",
			classificacao: "documento_trabalhista",
			texto:         "Carteira de trabalho. Admissão: 08/01/2022. Função: vendedor. Salário: R$ 2.800,00.",
		},
		{
			nome:          "termo_rescisao.pdf",
			classificacao: "rescisao",
			texto:         "Termo de rescisão do contrato de trabalho. Data de afastamento: 10/01/2026. Causa: dispensa sem justa causa.",
		},
	}

	insertDocumento := `
		INSERT INTO ` + tables.Documentos + `
			(escritorio_id, atendimento_id, nome, storage_path, texto_extraido, classificacao, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, doc := range documentos {
		_, err := pool.Exec(ctx, insertDocumento,
			demoEscritorioID, demoAtendimentoID,
			doc.nome, "demo/"+doc.nome, doc.texto, doc.classificacao,
			time.Now(),
		)
		if err != nil {
			return err
		}
		log.Printf("✅ Created documento %s", doc.nome)
	}

	insertModelo := `
		INSERT INTO ` + tables.ModelosDocumento + ` (escritorio_id, tipo_peca, template, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (escritorio_id, tipo_peca) DO UPDATE SET template = EXCLUDED.template, updated_at = EXCLUDED.updated_at
	`
	template := `EXCELENTÍSSIMO SENHOR DOUTOR JUIZ DA ___ VARA DO TRABALHO DE ___

[QUALIFICAÇÃO DAS PARTES]

I - DOS FATOS
II - DO DIREITO
III - DOS PEDIDOS

Nestes termos, pede deferimento.`
	if _, err := pool.Exec(ctx, insertModelo, demoEscritorioID, "peticao_inicial", template, time.Now()); err != nil {
		return err
	}
	log.Println("✅ Created modelo peticao_inicial")

	return nil
}
