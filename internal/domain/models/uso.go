package models

import "time"

// UsoIA is an immutable record of one completion-gateway call, kept for
// observability and billing. Append-only; never read back by the
// pipeline itself.
type UsoIA struct {
	ID             string    `json:"id"`
	EscritorioID   string    `json:"escritorio_id"`
	UsuarioID      string    `json:"usuario_id"`
	Endpoint       string    `json:"endpoint"`
	Modelo         string    `json:"modelo"`
	TokensEntrada  int       `json:"tokens_entrada"`
	TokensSaida    int       `json:"tokens_saida"`
	CustoEstimado  float64   `json:"custo_estimado"`
	LatenciaMillis int64     `json:"latencia_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
