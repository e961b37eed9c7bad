// Package pricing converts token counts into cost estimates using an
// embedded per-model price table. Prices are stated in USD per million
// tokens; updating them is an edit to the YAML, not to code.
package pricing

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// ModelPricing holds the per-million-token prices for one model.
type ModelPricing struct {
	InputPerMillion  float64 `yaml:"input_per_million"`
	OutputPerMillion float64 `yaml:"output_per_million"`
}

type priceFile struct {
	Models map[string]ModelPricing `yaml:"models"`
}

// Registry maps model ids to prices. Read-only after load.
type Registry struct {
	models map[string]ModelPricing
}

// NewRegistry loads the embedded price table.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/anthropic.yaml")
	if err != nil {
		return nil, fmt.Errorf("read price table: %w", err)
	}

	var file priceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal price table: %w", err)
	}

	return &Registry{models: file.Models}, nil
}

// Estimate returns the estimated USD cost of one call and whether the
// model was found in the table. An unknown model estimates as zero so
// usage logging never fails on a stale table; callers log the miss.
func (r *Registry) Estimate(model string, inputTokens, outputTokens int) (float64, bool) {
	pricing, ok := r.models[model]
	if !ok {
		return 0, false
	}

	cost := float64(inputTokens)/1_000_000*pricing.InputPerMillion +
		float64(outputTokens)/1_000_000*pricing.OutputPerMillion
	return cost, true
}
