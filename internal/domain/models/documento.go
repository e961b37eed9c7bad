package models

import "time"

// Documento is an uploaded supporting document. Rows are created on
// upload and never mutated; intakes and prompts reference them, never
// own them. Text extraction is best-effort and may leave TextoExtraido
// empty.
type Documento struct {
	ID            string    `json:"id"`
	EscritorioID  string    `json:"escritorio_id"`
	AtendimentoID string    `json:"atendimento_id"`
	Nome          string    `json:"nome"`
	StoragePath   string    `json:"storage_path"`
	TextoExtraido string    `json:"texto_extraido"`
	Classificacao string    `json:"classificacao"`
	CreatedAt     time.Time `json:"created_at"`
}
