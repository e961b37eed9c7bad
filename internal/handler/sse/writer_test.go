package sse

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriterFrames(t *testing.T) {
	rec := httptest.NewRecorder()

	writer, err := NewWriter(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	if err := writer.WriteEvent(Text("Olá, ")); err != nil {
		t.Fatal(err)
	}
	if err := writer.WriteEvent(Done(120, 45)); err != nil {
		t.Fatal(err)
	}
	if err := writer.WriteKeepAlive(); err != nil {
		t.Fatal(err)
	}
	if err := writer.WriteEvent(Error("geração interrompida")); err != nil {
		t.Fatal(err)
	}

	body := rec.Body.String()

	wantLines := []string{
		`data: {"type":"text","content":"Olá, "}`,
		`data: {"type":"done","tokens_entrada":120,"tokens_saida":45}`,
		`: keepalive`,
		`data: {"type":"error","message":"geração interrompida"}`,
	}
	for _, line := range wantLines {
		if !strings.Contains(body, line+"\n\n") {
			t.Errorf("body missing frame %q\nbody:\n%s", line, body)
		}
	}
}

func TestFrameOmitsUnusedFields(t *testing.T) {
	rec := httptest.NewRecorder()
	writer, err := NewWriter(rec)
	if err != nil {
		t.Fatal(err)
	}

	if err := writer.WriteEvent(Text("x")); err != nil {
		t.Fatal(err)
	}

	body := rec.Body.String()
	for _, field := range []string{"tokens_entrada", "tokens_saida", "message"} {
		if strings.Contains(body, field) {
			t.Errorf("text frame leaks field %q: %s", field, body)
		}
	}
}
