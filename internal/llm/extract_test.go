package llm

import (
	"errors"
	"testing"

	"advogadovirtual/internal/domain"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{
			name: "fenced json block in prose",
			text: "Segue o resultado:\n```json\n{\"nota\": 8}\n```\nEspero que ajude.",
			want: `{"nota": 8}`,
		},
		{
			name: "fenced block with uppercase label",
			text: "```JSON\n{\"ok\": true}\n```",
			want: `{"ok": true}`,
		},
		{
			name: "bare object without fences",
			text: `A avaliação é {"coerencia": {"nota": 9}} conforme pedido.`,
			want: `{"coerencia": {"nota": 9}}`,
		},
		{
			name: "braces inside string values",
			text: `{"texto": "cláusula {3} do contrato"}`,
			want: `{"texto": "cláusula {3} do contrato"}`,
		},
		{
			name: "escaped quote inside string",
			text: `{"texto": "ele disse \"não\""}`,
			want: `{"texto": "ele disse \"não\""}`,
		},
		{
			name: "multiple spans takes the first",
			text: `{"primeiro": 1} e depois {"segundo": 2}`,
			want: `{"primeiro": 1}`,
		},
		{
			name: "invalid fence falls back to balanced span",
			text: "```json\nnão é json\n```\nmas isto é: {\"valido\": true}",
			want: `{"valido": true}`,
		},
		{
			name:    "no json at all",
			text:    "Desculpe, não consigo responder em JSON.",
			wantErr: true,
		},
		{
			name:    "unterminated object",
			text:    `{"aberto": [1, 2`,
			wantErr: true,
		},
		{
			name:    "empty input",
			text:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.text)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrMalformedModelOutput) {
					t.Fatalf("expected ErrMalformedModelOutput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
