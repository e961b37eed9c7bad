package handler

import (
	"log/slog"
	"net/http"

	"advogadovirtual/internal/domain/services"
	"advogadovirtual/internal/httputil"
)

// ModeloHandler handles tenant document-template HTTP requests
type ModeloHandler struct {
	modeloService services.ModeloService
	logger        *slog.Logger
}

// NewModeloHandler creates a new modelo handler
func NewModeloHandler(modeloService services.ModeloService, logger *slog.Logger) *ModeloHandler {
	return &ModeloHandler{
		modeloService: modeloService,
		logger:        logger,
	}
}

// Get retrieves the tenant template for a piece type
// GET /api/modelos/{tipo}
func (h *ModeloHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	modelo, err := h.modeloService.Get(r.Context(), ident, r.PathValue("tipo"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, modelo)
}

// Upsert replaces the tenant template for a piece type
// PUT /api/modelos/{tipo}
func (h *ModeloHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)

	var req services.UpsertModeloRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	modelo, err := h.modeloService.Upsert(r.Context(), ident, r.PathValue("tipo"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, modelo)
}
