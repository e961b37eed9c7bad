package services

import (
	"context"

	"advogadovirtual/internal/domain/models"
)

// UpsertModeloRequest replaces a tenant's template for a piece type.
type UpsertModeloRequest struct {
	Template string `json:"template"`
}

// ModeloService manages tenant document templates.
type ModeloService interface {
	Upsert(ctx context.Context, ident models.Identity, tipoPeca string, req *UpsertModeloRequest) (*models.ModeloDocumento, error)
	Get(ctx context.Context, ident models.Identity, tipoPeca string) (*models.ModeloDocumento, error)
}
