package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"advogadovirtual/internal/auth"
	"advogadovirtual/internal/config"
	"advogadovirtual/internal/export"
	"advogadovirtual/internal/handler"
	"advogadovirtual/internal/llm"
	"advogadovirtual/internal/middleware"
	"advogadovirtual/internal/pricing"
	"advogadovirtual/internal/repository/postgres"
	"advogadovirtual/internal/service"
	"advogadovirtual/internal/usage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	txManager := postgres.NewTransactionManager(pool)

	atendimentoRepo := postgres.NewAtendimentoRepository(repoConfig)
	documentoRepo := postgres.NewDocumentoRepository(repoConfig)
	pecaRepo := postgres.NewPecaRepository(repoConfig, txManager)
	usoRepo := postgres.NewUsoIARepository(repoConfig)
	modeloRepo := postgres.NewModeloRepository(repoConfig)

	// Pricing table for usage cost estimates
	pricingRegistry, err := pricing.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load pricing table: %v", err)
	}

	// Completion gateway. Credentials are checked lazily on the first
	// call, so the server starts fine without an API key.
	gateway := llm.NewGateway(cfg, logger)
	recorder := usage.NewRecorder(usoRepo, pricingRegistry, logger)
	renderer := export.NewHTTPRenderer(cfg.ExportRendererURL)

	// Create services
	atendimentoService := service.NewAtendimentoService(atendimentoRepo, logger)
	comandoService := service.NewComandoService(atendimentoRepo, documentoRepo, gateway, recorder, logger)
	pecaService := service.NewPecaService(pecaRepo, atendimentoRepo, documentoRepo, modeloRepo, gateway, recorder, logger)
	modeloService := service.NewModeloService(modeloRepo, logger)
	exportService := service.NewExportService(pecaRepo, renderer, logger)

	// Create handlers
	atendimentoHandler := handler.NewAtendimentoHandler(atendimentoService, logger)
	comandoHandler := handler.NewComandoHandler(comandoService, logger)
	pecaHandler := handler.NewPecaHandler(pecaService, exportService, logger)
	modeloHandler := handler.NewModeloHandler(modeloService, logger)

	logger.Info("services initialized", "model", cfg.Model)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Atendimento routes
	mux.HandleFunc("POST /api/atendimentos", atendimentoHandler.Create)
	mux.HandleFunc("GET /api/atendimentos/{id}", atendimentoHandler.Get)
	mux.HandleFunc("PATCH /api/atendimentos/{id}/transcricao", atendimentoHandler.UpdateTranscricao)

	// Quick commands (SSE streaming)
	mux.HandleFunc("POST /api/comandos", comandoHandler.Executar)

	// Peca routes
	mux.HandleFunc("POST /api/pecas", pecaHandler.Criar)
	mux.HandleFunc("GET /api/pecas/{id}", pecaHandler.Get)
	mux.HandleFunc("PUT /api/pecas/{id}/conteudo", pecaHandler.SalvarConteudo)
	mux.HandleFunc("POST /api/pecas/{id}/refinar", pecaHandler.Refinar)
	mux.HandleFunc("POST /api/pecas/{id}/validar", pecaHandler.Validar)
	mux.HandleFunc("POST /api/pecas/{id}/enviar-revisao", pecaHandler.EnviarParaRevisao)
	mux.HandleFunc("POST /api/pecas/{id}/aprovar", pecaHandler.Aprovar)
	mux.HandleFunc("POST /api/pecas/{id}/rejeitar", pecaHandler.Rejeitar)
	mux.HandleFunc("POST /api/pecas/{id}/exportar", pecaHandler.Exportar)

	// Tenant template routes
	mux.HandleFunc("GET /api/modelos/{tipo}", modeloHandler.Get)
	mux.HandleFunc("PUT /api/modelos/{tipo}", modeloHandler.Upsert)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
