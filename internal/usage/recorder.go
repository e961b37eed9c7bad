// Package usage persists per-call token accounting for observability
// and billing. Recording is a side effect, never a control-flow
// dependency: it runs detached from the response path and its failure
// never fails or delays the user-visible response.
package usage

import (
	"context"
	"log/slog"
	"time"

	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/repositories"
	"advogadovirtual/internal/domain/services"
	"advogadovirtual/internal/pricing"
)

// writeTimeout bounds the detached insert so a stuck database cannot
// accumulate recorder goroutines indefinitely.
const writeTimeout = 10 * time.Second

// Recorder writes usage log entries asynchronously.
type Recorder struct {
	repo    repositories.UsoIARepository
	pricing *pricing.Registry
	logger  *slog.Logger
}

// NewRecorder creates a usage recorder.
func NewRecorder(repo repositories.UsoIARepository, pricingRegistry *pricing.Registry, logger *slog.Logger) *Recorder {
	return &Recorder{
		repo:    repo,
		pricing: pricingRegistry,
		logger:  logger,
	}
}

// Record fires-and-forgets one usage log entry. It deliberately takes
// no context: the write must survive the originating request ending.
func (r *Recorder) Record(ident models.Identity, endpoint, model string, tokens services.TokenUsage, latency time.Duration) {
	cost, known := r.pricing.Estimate(model, tokens.InputTokens, tokens.OutputTokens)
	if !known {
		r.logger.Warn("model missing from price table, recording zero cost", "model", model)
	}

	entry := &models.UsoIA{
		EscritorioID:   ident.EscritorioID,
		UsuarioID:      ident.UserID,
		Endpoint:       endpoint,
		Modelo:         model,
		TokensEntrada:  tokens.InputTokens,
		TokensSaida:    tokens.OutputTokens,
		CustoEstimado:  cost,
		LatenciaMillis: latency.Milliseconds(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := r.repo.Create(ctx, entry); err != nil {
			r.logger.Error("usage log write failed",
				"endpoint", endpoint,
				"escritorio_id", ident.EscritorioID,
				"error", err,
			)
		}
	}()
}
