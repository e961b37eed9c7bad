package models

import "time"

// ModeloDocumento is a tenant-owned boilerplate template for a piece
// type (letterhead, qualification block, closing). One row per
// (escritorio, tipo_peca); upserts replace the previous template.
type ModeloDocumento struct {
	ID           string    `json:"id"`
	EscritorioID string    `json:"escritorio_id"`
	TipoPeca     string    `json:"tipo_peca"`
	Template     string    `json:"template"`
	UpdatedAt    time.Time `json:"updated_at"`
}
