package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"advogadovirtual/internal/domain"
	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/services"
)

func newPecaService(pecaRepo *fakePecaRepo, completer *fakeCompleter) services.PecaService {
	return NewPecaService(
		pecaRepo,
		newFakeAtendimentoRepo(testAtendimento()),
		&fakeDocumentoRepo{documentos: []models.Documento{{
			ID:            testDocumentoID,
			EscritorioID:  testEscritorioID,
			AtendimentoID: testAtendimentoID,
			Nome:          "CTPS.pdf",
			Classificacao: "documento_trabalhista",
			TextoExtraido: "Registro de admissão em 2022.",
		}}},
		&fakeModeloRepo{},
		completer,
		testRecorder(),
		testLogger(),
	)
}

func TestCriarGeneratesVersionOneDraft(t *testing.T) {
	repo := newFakePecaRepo()
	completer := &fakeCompleter{chunks: textChunks("# Petição Inicial\n\n", "Dos fatos...")}
	svc := newPecaService(repo, completer)

	peca, err := svc.Criar(context.Background(), testIdent(models.RoleAdvogado), &services.CreatePecaRequest{
		AtendimentoID: testAtendimentoID,
		TipoPeca:      "peticao_inicial",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if peca.Versao != 1 {
		t.Errorf("versao = %d, want 1", peca.Versao)
	}
	if peca.Status != models.StatusRascunho {
		t.Errorf("status = %q, want rascunho", peca.Status)
	}
	if !strings.Contains(peca.ConteudoMarkdown, "Dos fatos") {
		t.Errorf("content not aggregated from stream: %q", peca.ConteudoMarkdown)
	}
	if peca.EscritorioID != testEscritorioID {
		t.Errorf("escritorio = %q", peca.EscritorioID)
	}
}

func TestCriarUnknownTipoFailsBeforeGateway(t *testing.T) {
	completer := &fakeCompleter{chunks: textChunks("x")}
	svc := newPecaService(newFakePecaRepo(), completer)

	_, err := svc.Criar(context.Background(), testIdent(models.RoleAdvogado), &services.CreatePecaRequest{
		AtendimentoID: testAtendimentoID,
		TipoPeca:      "habeas_corpus",
	})
	if !errors.Is(err, domain.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if completer.callCount() != 0 {
		t.Error("gateway was called for an unknown tipo")
	}
}

func TestSalvarConteudoSnapshotsPreviousVersion(t *testing.T) {
	repo := newFakePecaRepo(testPeca("conteúdo original"))
	svc := newPecaService(repo, &fakeCompleter{})
	ident := testIdent(models.RoleAdvogado)

	versao, err := svc.SalvarConteudo(context.Background(), ident, testPecaID, &services.SalvarConteudoRequest{
		ConteudoMarkdown: "conteúdo editado",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if versao != 2 {
		t.Errorf("versao = %d, want 2", versao)
	}

	versions, _ := repo.ListVersions(context.Background(), testPecaID, testEscritorioID)
	if len(versions) != 1 {
		t.Fatalf("version log has %d entries, want 1", len(versions))
	}
	if versions[0].Versao != 1 || versions[0].ConteudoMarkdown != "conteúdo original" {
		t.Errorf("log holds %+v, want the pre-edit pair", versions[0])
	}
	if versions[0].EditadoPor != testUserID {
		t.Errorf("editor = %q", versions[0].EditadoPor)
	}

	// Second edit: +1 again, log stays ordered.
	versao, err = svc.SalvarConteudo(context.Background(), ident, testPecaID, &services.SalvarConteudoRequest{
		ConteudoMarkdown: "terceira redação",
	})
	if err != nil {
		t.Fatal(err)
	}
	if versao != 3 {
		t.Errorf("versao = %d, want 3", versao)
	}

	versions, _ = repo.ListVersions(context.Background(), testPecaID, testEscritorioID)
	if len(versions) != 2 || versions[1].Versao != 2 || versions[1].ConteudoMarkdown != "conteúdo editado" {
		t.Errorf("log after second edit: %+v", versions)
	}
}

func TestSalvarConteudoCrossTenantIsNotFound(t *testing.T) {
	repo := newFakePecaRepo(testPeca("conteúdo"))
	svc := newPecaService(repo, &fakeCompleter{})

	ident := models.Identity{UserID: testUserID, EscritorioID: otherEscritorioID, Papel: models.RoleAdvogado}
	_, err := svc.SalvarConteudo(context.Background(), ident, testPecaID, &services.SalvarConteudoRequest{
		ConteudoMarkdown: "tentativa de outro escritório",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if p := repo.pecas[testPecaID]; p.ConteudoMarkdown != "conteúdo" || p.Versao != 1 {
		t.Error("cross-tenant write mutated the piece")
	}
}

func TestSalvarConteudoRejectsEmptyContent(t *testing.T) {
	svc := newPecaService(newFakePecaRepo(testPeca("x")), &fakeCompleter{})

	_, err := svc.SalvarConteudo(context.Background(), testIdent(models.RoleAdvogado), testPecaID, &services.SalvarConteudoRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRefinarAppliesModelOutputAsNewVersion(t *testing.T) {
	repo := newFakePecaRepo(testPeca("versão antiga"))
	completer := &fakeCompleter{
		jsonResult: json.RawMessage(`{"conteudo_atualizado":"versão refinada","mudancas":["incluída a CTPS"],"divergencias":["data de admissão diverge do relato"]}`),
		jsonUsage:  &services.TokenUsage{InputTokens: 800, OutputTokens: 400},
	}
	svc := newPecaService(repo, completer)

	resultado, err := svc.Refinar(context.Background(), testIdent(models.RoleAdvogado), testPecaID, &services.RefinarRequest{
		DocumentoIDs: []string{testDocumentoID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resultado.Versao != 2 {
		t.Errorf("versao = %d, want 2", resultado.Versao)
	}
	if len(resultado.Mudancas) != 1 || len(resultado.Divergencias) != 1 {
		t.Errorf("resultado = %+v", resultado)
	}
	if repo.pecas[testPecaID].ConteudoMarkdown != "versão refinada" {
		t.Error("piece content was not replaced")
	}

	versions, _ := repo.ListVersions(context.Background(), testPecaID, testEscritorioID)
	if len(versions) != 1 || versions[0].ConteudoMarkdown != "versão antiga" {
		t.Error("previous content was not snapshotted")
	}

	if !strings.Contains(completer.lastPrompt, "CTPS.pdf") {
		t.Error("prompt does not carry the attached document")
	}
}

func TestRefinarMalformedOutputLeavesPieceUntouched(t *testing.T) {
	repo := newFakePecaRepo(testPeca("intacta"))
	completer := &fakeCompleter{
		jsonResult: json.RawMessage(`{"mudancas":[]}`),
		jsonUsage:  &services.TokenUsage{InputTokens: 10, OutputTokens: 5},
	}
	svc := newPecaService(repo, completer)

	_, err := svc.Refinar(context.Background(), testIdent(models.RoleAdvogado), testPecaID, &services.RefinarRequest{
		DocumentoIDs: []string{testDocumentoID},
	})
	if !errors.Is(err, domain.ErrMalformedModelOutput) {
		t.Fatalf("expected ErrMalformedModelOutput, got %v", err)
	}
	if repo.pecas[testPecaID].ConteudoMarkdown != "intacta" || repo.pecas[testPecaID].Versao != 1 {
		t.Error("malformed output mutated the piece")
	}
}

func TestRefinarUnknownDocumentsAreNotFound(t *testing.T) {
	svc := newPecaService(newFakePecaRepo(testPeca("x")), &fakeCompleter{
		jsonResult: json.RawMessage(`{"conteudo_atualizado":"y"}`),
	})

	// A valid UUID that belongs to no document in the tenant.
	_, err := svc.Refinar(context.Background(), testIdent(models.RoleAdvogado), testPecaID, &services.RefinarRequest{
		DocumentoIDs: []string{"99999999-9999-9999-9999-999999999999"},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidarStoresAssessment(t *testing.T) {
	repo := newFakePecaRepo(testPeca("peça a validar"))
	assessment := `{"coerencia":{"nota":9,"apontamentos":[]},"legislacao":{"nota":8,"apontamentos":["conferir art. 477"]}}`
	completer := &fakeCompleter{
		jsonResult: json.RawMessage(assessment),
		jsonUsage:  &services.TokenUsage{InputTokens: 500, OutputTokens: 200},
	}
	svc := newPecaService(repo, completer)

	got, err := svc.Validar(context.Background(), testIdent(models.RoleAdvogado), testPecaID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != assessment {
		t.Errorf("returned %s", got)
	}
	if string(repo.pecas[testPecaID].Validacao) != assessment {
		t.Error("assessment was not stored on the piece")
	}
}

func TestEnviarParaRevisaoOnlyFromRascunho(t *testing.T) {
	repo := newFakePecaRepo(testPeca("pronta"))
	svc := newPecaService(repo, &fakeCompleter{})
	ident := testIdent(models.RoleAdvogado)

	peca, err := svc.EnviarParaRevisao(context.Background(), ident, testPecaID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peca.Status != models.StatusAguardandoRevisao {
		t.Errorf("status = %q", peca.Status)
	}

	// Already submitted: the conditional transition misses.
	if _, err := svc.EnviarParaRevisao(context.Background(), ident, testPecaID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat submission, got %v", err)
	}
}

func TestAprovarRequiresReviewerRole(t *testing.T) {
	repo := newFakePecaRepo(testPeca("em revisão"))
	repo.pecas[testPecaID].Status = models.StatusAguardandoRevisao
	svc := newPecaService(repo, &fakeCompleter{})

	_, err := svc.Aprovar(context.Background(), testIdent(models.RoleSecretaria), testPecaID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.pecas[testPecaID].Status != models.StatusAguardandoRevisao {
		t.Error("forbidden caller mutated the piece")
	}

	peca, err := svc.Aprovar(context.Background(), testIdent(models.RoleAdvogado), testPecaID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peca.Status != models.StatusRevisada {
		t.Errorf("status = %q", peca.Status)
	}
	if peca.RevisadoPor == nil || *peca.RevisadoPor != testUserID {
		t.Error("reviewer was not recorded")
	}
}

func TestAprovarSecondCallIsNotFound(t *testing.T) {
	repo := newFakePecaRepo(testPeca("x"))
	repo.pecas[testPecaID].Status = models.StatusAguardandoRevisao
	svc := newPecaService(repo, &fakeCompleter{})
	ident := testIdent(models.RoleAdmin)

	if _, err := svc.Aprovar(context.Background(), ident, testPecaID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Aprovar(context.Background(), ident, testPecaID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double approval, got %v", err)
	}
}

func TestRejeitarRequiresMotivo(t *testing.T) {
	repo := newFakePecaRepo(testPeca("x"))
	repo.pecas[testPecaID].Status = models.StatusAguardandoRevisao
	svc := newPecaService(repo, &fakeCompleter{})
	ident := testIdent(models.RoleAdvogado)

	_, err := svc.Rejeitar(context.Background(), ident, testPecaID, &services.RejeitarRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation without motivo, got %v", err)
	}

	peca, err := svc.Rejeitar(context.Background(), ident, testPecaID, &services.RejeitarRequest{
		Motivo: "Faltou o pedido de tutela de urgência.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peca.Status != models.StatusRejeitada {
		t.Errorf("status = %q", peca.Status)
	}
	if peca.MotivoRejeicao == nil || *peca.MotivoRejeicao == "" {
		t.Error("motivo was not stored")
	}
}

func TestRejeitarForbiddenBeforeValidation(t *testing.T) {
	repo := newFakePecaRepo(testPeca("x"))
	repo.pecas[testPecaID].Status = models.StatusAguardandoRevisao
	svc := newPecaService(repo, &fakeCompleter{})

	// Secretaria with an empty motivo: role check wins.
	_, err := svc.Rejeitar(context.Background(), testIdent(models.RoleSecretaria), testPecaID, &services.RejeitarRequest{})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
