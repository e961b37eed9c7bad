package pricing

import (
	"math"
	"testing"
)

func TestEstimate(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("failed to load price table: %v", err)
	}

	tests := []struct {
		name         string
		model        string
		inputTokens  int
		outputTokens int
		wantCost     float64
		wantKnown    bool
	}{
		{
			name:         "sonnet round numbers",
			model:        "claude-sonnet-4-20250514",
			inputTokens:  1_000_000,
			outputTokens: 1_000_000,
			wantCost:     18.00,
			wantKnown:    true,
		},
		{
			name:         "sonnet fractional",
			model:        "claude-sonnet-4-20250514",
			inputTokens:  10_000,
			outputTokens: 2_000,
			wantCost:     0.06,
			wantKnown:    true,
		},
		{
			name:      "zero tokens",
			model:     "claude-opus-4-20250514",
			wantCost:  0,
			wantKnown: true,
		},
		{
			name:         "unknown model",
			model:        "gpt-4",
			inputTokens:  1_000_000,
			outputTokens: 1_000_000,
			wantCost:     0,
			wantKnown:    false,
		},
		{
			name:      "empty model id",
			model:     "",
			wantCost:  0,
			wantKnown: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, known := registry.Estimate(tt.model, tt.inputTokens, tt.outputTokens)
			if known != tt.wantKnown {
				t.Fatalf("known = %v, want %v", known, tt.wantKnown)
			}
			if math.Abs(cost-tt.wantCost) > 1e-9 {
				t.Errorf("cost = %v, want %v", cost, tt.wantCost)
			}
		})
	}
}
