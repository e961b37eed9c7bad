// Package llm wraps the external text-generation API behind the
// services.Completer interface. It is the only package that talks to
// the Anthropic SDK.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"advogadovirtual/internal/config"
	"advogadovirtual/internal/domain"
	"advogadovirtual/internal/domain/services"
)

// Gateway implements services.Completer against the Anthropic API.
// The SDK client is initialized once, lazily, on first use: routes that
// never touch the model stay usable when ANTHROPIC_API_KEY is absent,
// and the first AI call reports domain.ErrMissingCredentials instead of
// the process failing at start. Model id and token budget are read from
// config at construction and never change afterwards.
type Gateway struct {
	apiKey          string
	model           string
	maxOutputTokens int64
	logger          *slog.Logger

	initOnce sync.Once
	client   *anthropic.Client
	initErr  error
}

// NewGateway creates a completion gateway from process configuration.
func NewGateway(cfg *config.Config, logger *slog.Logger) *Gateway {
	return &Gateway{
		apiKey:          cfg.AnthropicAPIKey,
		model:           cfg.Model,
		maxOutputTokens: int64(cfg.MaxOutputTokens),
		logger:          logger,
	}
}

// Model returns the configured model identifier.
func (g *Gateway) Model() string {
	return g.model
}

// getClient initializes the SDK client on first call. Initialization is
// guarded by sync.Once; concurrent first callers all observe the same
// client (or the same ErrMissingCredentials).
func (g *Gateway) getClient() (*anthropic.Client, error) {
	g.initOnce.Do(func() {
		if g.apiKey == "" {
			g.initErr = domain.ErrMissingCredentials
			return
		}
		client := anthropic.NewClient(option.WithAPIKey(g.apiKey))
		g.client = &client
		g.logger.Info("completion gateway initialized", "model", g.model)
	})
	return g.client, g.initErr
}

func (g *Gateway) buildParams(system, prompt string) anthropic.MessageNewParams {
	return anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxOutputTokens,
		System: []anthropic.TextBlockParam{
			{Type: "text", Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
}

// StreamCompletion opens a single streaming request and returns a
// finite channel of chunks. Exactly one terminal chunk is sent: Usage
// on success, Err on mid-stream upstream failure. The upstream call
// runs on a context detached from the caller's: a client disconnect
// means "stop forwarding", not a cancellation signal to the external
// service, so consumers must drain the channel to its terminal chunk.
func (g *Gateway) StreamCompletion(ctx context.Context, system, prompt string) (<-chan services.Chunk, error) {
	client, err := g.getClient()
	if err != nil {
		return nil, err
	}

	params := g.buildParams(system, prompt)
	out := make(chan services.Chunk, 16)

	streamCtx := context.WithoutCancel(ctx)

	go func() {
		defer close(out)

		stream := client.Messages.NewStreaming(streamCtx, params)
		message := anthropic.Message{}

		for stream.Next() {
			event := stream.Current()

			if err := message.Accumulate(event); err != nil {
				out <- services.Chunk{Err: fmt.Errorf("%w: accumulate stream event: %v", domain.ErrUpstream, err)}
				return
			}

			switch e := event.AsAny().(type) {
			case anthropic.ContentBlockDeltaEvent:
				if e.Delta.Type == "text_delta" && e.Delta.Text != "" {
					out <- services.Chunk{Text: e.Delta.Text}
				}
			}
		}

		if err := stream.Err(); err != nil {
			out <- services.Chunk{Err: fmt.Errorf("%w: streaming completion: %v", domain.ErrUpstream, err)}
			return
		}

		out <- services.Chunk{Usage: &services.TokenUsage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
		}}
	}()

	return out, nil
}

// CompletionJSON issues one non-streaming request, concatenates the
// returned text segments and extracts a JSON object from them. Token
// usage is returned even when extraction fails, so callers can still
// record the spend of a malformed response.
func (g *Gateway) CompletionJSON(ctx context.Context, system, prompt string) (json.RawMessage, *services.TokenUsage, error) {
	client, err := g.getClient()
	if err != nil {
		return nil, nil, err
	}

	message, err := client.Messages.New(ctx, g.buildParams(system, prompt))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: completion request: %v", domain.ErrUpstream, err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	usage := &services.TokenUsage{
		InputTokens:  int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}

	raw, err := ExtractJSON(text.String())
	if err != nil {
		g.logger.Warn("model returned non-conforming JSON",
			"model", g.model,
			"output_tokens", usage.OutputTokens,
		)
		return nil, usage, err
	}

	return raw, usage, nil
}
