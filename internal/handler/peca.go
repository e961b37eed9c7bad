package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/services"
	"advogadovirtual/internal/httputil"
)

// PecaHandler handles piece HTTP requests: generation, editing,
// refinement, validation, the review workflow and export.
type PecaHandler struct {
	pecaService   services.PecaService
	exportService services.ExportService
	logger        *slog.Logger
}

// NewPecaHandler creates a new peca handler
func NewPecaHandler(pecaService services.PecaService, exportService services.ExportService, logger *slog.Logger) *PecaHandler {
	return &PecaHandler{
		pecaService:   pecaService,
		exportService: exportService,
		logger:        logger,
	}
}

// Criar generates a new piece from an intake case
// POST /api/pecas
func (h *PecaHandler) Criar(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	var req services.CreatePecaRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	peca, err := h.pecaService.Criar(r.Context(), ident, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, peca)
}

// Get retrieves a piece
// GET /api/pecas/{id}
func (h *PecaHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	peca, err := h.pecaService.Get(r.Context(), ident, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, peca)
}

// SalvarConteudo saves a manual edit as a new version
// PUT /api/pecas/{id}/conteudo
func (h *PecaHandler) SalvarConteudo(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	var req services.SalvarConteudoRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	versao, err := h.pecaService.SalvarConteudo(r.Context(), ident, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "versao": versao})
}

// Refinar folds attached documents into a piece
// POST /api/pecas/{id}/refinar
func (h *PecaHandler) Refinar(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	var req services.RefinarRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resultado, err := h.pecaService.Refinar(r.Context(), ident, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resultado)
}

// Validar runs the AI quality assessment
// POST /api/pecas/{id}/validar
func (h *PecaHandler) Validar(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	validacao, err := h.pecaService.Validar(r.Context(), ident, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(validacao)
}

// EnviarParaRevisao submits a draft for review
// POST /api/pecas/{id}/enviar-revisao
func (h *PecaHandler) EnviarParaRevisao(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	peca, err := h.pecaService.EnviarParaRevisao(r.Context(), ident, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	respondReview(w, peca)
}

// Aprovar approves a piece under review
// POST /api/pecas/{id}/aprovar
func (h *PecaHandler) Aprovar(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	peca, err := h.pecaService.Aprovar(r.Context(), ident, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	respondReview(w, peca)
}

// Rejeitar rejects a piece under review with a reason
// POST /api/pecas/{id}/rejeitar
func (h *PecaHandler) Rejeitar(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	var req services.RejeitarRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	peca, err := h.pecaService.Rejeitar(r.Context(), ident, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	respondReview(w, peca)
}

// Exportar renders a piece to DOCX and returns the file
// POST /api/pecas/{id}/exportar
func (h *PecaHandler) Exportar(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	result, err := h.exportService.Exportar(r.Context(), ident, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func respondReview(w http.ResponseWriter, peca *models.Peca) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "peca": peca})
}
