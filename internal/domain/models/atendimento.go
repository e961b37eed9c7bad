package models

import "time"

// Input modes for an intake: dictated audio (transcribed externally),
// typed text, or a structured form.
const (
	ModoInputAudio      = "audio"
	ModoInputTexto      = "texto"
	ModoInputFormulario = "formulario"
)

// Atendimento is a client case-intake record: the transcript of the
// client conversation plus metadata gathered at case start.
type Atendimento struct {
	ID               string                 `json:"id"`
	EscritorioID     string                 `json:"escritorio_id"`
	ClienteID        string                 `json:"cliente_id"`
	Area             string                 `json:"area"`
	TipoServico      *string                `json:"tipo_servico,omitempty"`
	ModoInput        string                 `json:"modo_input"`
	Transcricao      string                 `json:"transcricao"`
	PedidoEspecifico *string                `json:"pedido_especifico,omitempty"`
	Fatos            map[string]interface{} `json:"fatos,omitempty"` // extracted dates, numbers, parties
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}
