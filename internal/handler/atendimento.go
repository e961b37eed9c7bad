package handler

import (
	"log/slog"
	"net/http"

	"advogadovirtual/internal/domain/services"
	"advogadovirtual/internal/httputil"
)

// AtendimentoHandler handles intake-case HTTP requests
type AtendimentoHandler struct {
	atendimentoService services.AtendimentoService
	logger             *slog.Logger
}

// NewAtendimentoHandler creates a new atendimento handler
func NewAtendimentoHandler(atendimentoService services.AtendimentoService, logger *slog.Logger) *AtendimentoHandler {
	return &AtendimentoHandler{
		atendimentoService: atendimentoService,
		logger:             logger,
	}
}

// Create creates a new intake case
// POST /api/atendimentos
func (h *AtendimentoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	var req services.CreateAtendimentoRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	atendimento, err := h.atendimentoService.Create(r.Context(), ident, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{"id": atendimento.ID})
}

// Get retrieves an intake case
// GET /api/atendimentos/{id}
func (h *AtendimentoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)
	id := r.PathValue("id")

	atendimento, err := h.atendimentoService.Get(r.Context(), ident, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, atendimento)
}

// UpdateTranscricao replaces the intake transcript
// PATCH /api/atendimentos/{id}/transcricao
func (h *AtendimentoHandler) UpdateTranscricao(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)
	id := r.PathValue("id")

	var req services.UpdateTranscricaoRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.atendimentoService.UpdateTranscricao(r.Context(), ident, id, &req); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
