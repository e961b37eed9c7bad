package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"advogadovirtual/internal/domain"
)

// ExtractJSON pulls a single JSON object out of model output text using
// two fallback strategies in order: a fenced code block explicitly
// labeled as JSON, then the first balanced {...} span in the text.
// Fails with domain.ErrMalformedModelOutput when neither yields valid
// JSON. The balanced-span fallback is best-effort: if the model emits
// multiple JSON-like spans the first one wins, a known precision limit.
func ExtractJSON(text string) (json.RawMessage, error) {
	if candidate, ok := fencedJSON(text); ok {
		if gjson.ValidBytes(candidate) {
			return json.RawMessage(candidate), nil
		}
	}

	if candidate, ok := balancedObject(text); ok {
		if gjson.ValidBytes(candidate) {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, fmt.Errorf("no parseable JSON object in model output: %w", domain.ErrMalformedModelOutput)
}

// fencedJSON returns the contents of the first ```json fenced block.
func fencedJSON(text string) ([]byte, bool) {
	lower := strings.ToLower(text)
	start := strings.Index(lower, "```json")
	if start < 0 {
		return nil, false
	}

	body := text[start+len("```json"):]
	end := strings.Index(body, "```")
	if end < 0 {
		return nil, false
	}

	candidate := strings.TrimSpace(body[:end])
	if candidate == "" {
		return nil, false
	}
	return []byte(candidate), true
}

// balancedObject returns the first {...} span whose braces balance,
// tracking string literals and escapes so braces inside values don't
// terminate the span early.
func balancedObject(text string) ([]byte, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return []byte(text[start : i+1]), true
				}
			}
		}
	}

	return nil, false
}
