// Package export talks to the external document renderer that turns
// piece markdown into a downloadable DOCX. The renderer itself is an
// external collaborator; this is only its client.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"advogadovirtual/internal/domain"
)

// DefaultRendererTimeout is the default HTTP timeout for render requests.
// Rendering a long piece can take a while on cold renderer instances.
const DefaultRendererTimeout = 60 * time.Second

// ContentTypeDocx is the media type of rendered documents.
const ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Renderer renders markdown into a binary document.
type Renderer interface {
	Render(ctx context.Context, markdown, filename string) ([]byte, error)
}

// HTTPRenderer implements Renderer against the hosted renderer service.
type HTTPRenderer struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPRenderer creates a renderer client. An empty baseURL is
// allowed at construction; calls then fail with domain.ErrUpstream so
// only the export route is affected by a missing renderer.
func NewHTTPRenderer(baseURL string) *HTTPRenderer {
	return &HTTPRenderer{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultRendererTimeout,
		},
	}
}

// Render posts the markdown to the renderer and returns the document bytes.
func (r *HTTPRenderer) Render(ctx context.Context, markdown, filename string) ([]byte, error) {
	if r.baseURL == "" {
		return nil, fmt.Errorf("%w: export renderer not configured", domain.ErrUpstream)
	}

	payload, err := json.Marshal(map[string]string{
		"markdown": markdown,
		"filename": filename,
		"format":   "docx",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/render", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: render request: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: renderer returned %d: %s", domain.ErrUpstream, resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read rendered document: %v", domain.ErrUpstream, err)
	}

	return data, nil
}
