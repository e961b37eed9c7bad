package handler

import (
	"log/slog"
	"net/http"
	"time"

	"advogadovirtual/internal/domain/services"
	"advogadovirtual/internal/handler/sse"
	"advogadovirtual/internal/httputil"

	"github.com/google/uuid"
)

// keepAliveInterval keeps proxies from dropping an idle SSE connection
// while the model is thinking. 10s is safe for common edge runtimes.
const keepAliveInterval = 10 * time.Second

// ComandoHandler streams quick-command output over SSE
type ComandoHandler struct {
	comandoService services.ComandoService
	logger         *slog.Logger
}

// NewComandoHandler creates a new comando handler
func NewComandoHandler(comandoService services.ComandoService, logger *slog.Logger) *ComandoHandler {
	return &ComandoHandler{
		comandoService: comandoService,
		logger:         logger,
	}
}

// Executar runs a quick command and streams the response
// POST /api/comandos
//
// Failures before the stream opens are plain HTTP errors. Once the SSE
// headers go out, failures arrive as an in-band error frame.
func (h *ComandoHandler) Executar(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	var req services.ComandoRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chunks, err := h.comandoService.Executar(r.Context(), ident, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	writer, err := sse.NewWriter(w)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	// Stream id correlates the open/disconnect log lines of one client.
	streamID := uuid.New().String()

	h.logger.Info("comando stream opened",
		"stream_id", streamID,
		"comando_id", req.ComandoID,
		"atendimento_id", req.AtendimentoID,
		"escritorio_id", ident.EscritorioID,
	)

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	// After the client disconnects we keep draining so the upstream
	// response completes and its token usage gets recorded.
	clientGone := false

	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				return
			}
			if clientGone {
				continue
			}

			var frame sse.Frame
			switch {
			case chunk.Err != nil:
				h.logger.Error("comando stream failed",
					"stream_id", streamID,
					"comando_id", req.ComandoID,
					"error", chunk.Err,
				)
				frame = sse.Error("geração interrompida, tente novamente")
			case chunk.Usage != nil:
				frame = sse.Done(chunk.Usage.InputTokens, chunk.Usage.OutputTokens)
			default:
				frame = sse.Text(chunk.Text)
			}

			if err := writer.WriteEvent(frame); err != nil {
				h.logger.Info("client disconnected during comando stream",
					"stream_id", streamID,
					"comando_id", req.ComandoID,
					"error", err,
				)
				clientGone = true
			}

		case <-ticker.C:
			if clientGone {
				continue
			}
			if err := writer.WriteKeepAlive(); err != nil {
				clientGone = true
			}
		}
	}
}
