package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"advogadovirtual/internal/domain"
	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/services"
	"advogadovirtual/internal/prompt"
)

func newComandoService(completer *fakeCompleter) services.ComandoService {
	return NewComandoService(
		newFakeAtendimentoRepo(testAtendimento()),
		&fakeDocumentoRepo{},
		completer,
		testRecorder(),
		testLogger(),
	)
}

func TestComandoExecutarStreamsTextThenDone(t *testing.T) {
	completer := &fakeCompleter{chunks: textChunks("Primeira ", "parte.")}
	svc := newComandoService(completer)

	chunks, err := svc.Executar(context.Background(), testIdent(models.RoleAdvogado), &services.ComandoRequest{
		AtendimentoID: testAtendimentoID,
		ComandoID:     prompt.ComandoAnaliseCaso,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var text strings.Builder
	var sawDone bool
	for chunk := range chunks {
		if chunk.Err != nil {
			t.Fatalf("unexpected error chunk: %v", chunk.Err)
		}
		if chunk.Usage != nil {
			if sawDone {
				t.Fatal("more than one terminal chunk")
			}
			sawDone = true
			if chunk.Usage.InputTokens != 100 || chunk.Usage.OutputTokens != 50 {
				t.Errorf("usage = %+v", chunk.Usage)
			}
			continue
		}
		if sawDone {
			t.Fatal("text chunk after terminal chunk")
		}
		text.WriteString(chunk.Text)
	}

	if !sawDone {
		t.Fatal("stream ended without a terminal chunk")
	}
	if text.String() != "Primeira parte." {
		t.Errorf("text = %q", text.String())
	}
}

func TestComandoExecutarUnknownComandoFailsBeforeGateway(t *testing.T) {
	completer := &fakeCompleter{chunks: textChunks("x")}
	svc := newComandoService(completer)

	_, err := svc.Executar(context.Background(), testIdent(models.RoleAdvogado), &services.ComandoRequest{
		AtendimentoID: testAtendimentoID,
		ComandoID:     "comando_inexistente",
	})
	if !errors.Is(err, domain.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if completer.callCount() != 0 {
		t.Error("gateway was called for an unknown comando")
	}
}

func TestComandoExecutarCrossTenantIsNotFound(t *testing.T) {
	completer := &fakeCompleter{chunks: textChunks("x")}
	svc := newComandoService(completer)

	ident := models.Identity{
		UserID:       testUserID,
		EscritorioID: otherEscritorioID,
		Papel:        models.RoleAdvogado,
	}

	_, err := svc.Executar(context.Background(), ident, &services.ComandoRequest{
		AtendimentoID: testAtendimentoID,
		ComandoID:     prompt.ComandoAnaliseCaso,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-tenant access, got %v", err)
	}
	if completer.callCount() != 0 {
		t.Error("gateway was called for a cross-tenant intake")
	}
}

func TestComandoExecutarValidatesPayload(t *testing.T) {
	svc := newComandoService(&fakeCompleter{})

	tests := []struct {
		name string
		req  services.ComandoRequest
	}{
		{name: "missing atendimento", req: services.ComandoRequest{ComandoID: prompt.ComandoAnaliseCaso}},
		{name: "non-uuid atendimento", req: services.ComandoRequest{AtendimentoID: "abc", ComandoID: prompt.ComandoAnaliseCaso}},
		{name: "missing comando", req: services.ComandoRequest{AtendimentoID: testAtendimentoID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Executar(context.Background(), testIdent(models.RoleAdvogado), &tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestComandoExecutarForwardsErrorChunk(t *testing.T) {
	completer := &fakeCompleter{chunks: []services.Chunk{
		{Text: "parcial"},
		{Err: domain.ErrUpstream},
	}}
	svc := newComandoService(completer)

	chunks, err := svc.Executar(context.Background(), testIdent(models.RoleAdvogado), &services.ComandoRequest{
		AtendimentoID: testAtendimentoID,
		ComandoID:     prompt.ComandoProximosPassos,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var last services.Chunk
	for chunk := range chunks {
		last = chunk
	}
	if !errors.Is(last.Err, domain.ErrUpstream) {
		t.Fatalf("expected terminal upstream error chunk, got %+v", last)
	}
}

func TestComandoPromptCarriesIntakeContext(t *testing.T) {
	completer := &fakeCompleter{chunks: textChunks("ok")}
	svc := newComandoService(completer)

	chunks, err := svc.Executar(context.Background(), testIdent(models.RoleAdvogado), &services.ComandoRequest{
		AtendimentoID: testAtendimentoID,
		ComandoID:     prompt.ComandoListarDocumentos,
	})
	if err != nil {
		t.Fatal(err)
	}
	for range chunks {
	}

	if !strings.Contains(completer.lastPrompt, "demissão sem justa causa") {
		t.Error("prompt does not carry the intake transcript")
	}
	if completer.lastSystem == "" {
		t.Error("system instruction is empty")
	}
}
