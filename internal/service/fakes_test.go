package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"advogadovirtual/internal/domain"
	"advogadovirtual/internal/domain/models"
	"advogadovirtual/internal/domain/services"
	"advogadovirtual/internal/pricing"
	"advogadovirtual/internal/usage"
)

const (
	testEscritorioID  = "11111111-1111-1111-1111-111111111111"
	otherEscritorioID = "22222222-2222-2222-2222-222222222222"
	testUserID        = "33333333-3333-3333-3333-333333333333"
	testAtendimentoID = "44444444-4444-4444-4444-444444444444"
	testPecaID        = "55555555-5555-5555-5555-555555555555"
	testDocumentoID   = "66666666-6666-6666-6666-666666666666"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testIdent(papel string) models.Identity {
	return models.Identity{
		UserID:       testUserID,
		EscritorioID: testEscritorioID,
		Papel:        papel,
	}
}

func testRecorder() *usage.Recorder {
	registry, err := pricing.NewRegistry()
	if err != nil {
		panic(err)
	}
	return usage.NewRecorder(&fakeUsoRepo{}, registry, testLogger())
}

// fakeAtendimentoRepo serves intakes keyed by (id, escritorio).
type fakeAtendimentoRepo struct {
	atendimentos map[string]*models.Atendimento
}

func newFakeAtendimentoRepo(atendimentos ...*models.Atendimento) *fakeAtendimentoRepo {
	repo := &fakeAtendimentoRepo{atendimentos: map[string]*models.Atendimento{}}
	for _, a := range atendimentos {
		repo.atendimentos[a.ID] = a
	}
	return repo
}

func (r *fakeAtendimentoRepo) Create(ctx context.Context, atendimento *models.Atendimento) error {
	atendimento.ID = testAtendimentoID
	r.atendimentos[atendimento.ID] = atendimento
	return nil
}

func (r *fakeAtendimentoRepo) GetByID(ctx context.Context, id, escritorioID string) (*models.Atendimento, error) {
	a, ok := r.atendimentos[id]
	if !ok || a.EscritorioID != escritorioID {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (r *fakeAtendimentoRepo) UpdateTranscricao(ctx context.Context, id, escritorioID, transcricao string) error {
	a, ok := r.atendimentos[id]
	if !ok || a.EscritorioID != escritorioID {
		return domain.ErrNotFound
	}
	a.Transcricao = transcricao
	return nil
}

// fakeDocumentoRepo serves a fixed set of documents.
type fakeDocumentoRepo struct {
	documentos []models.Documento
}

func (r *fakeDocumentoRepo) GetByID(ctx context.Context, id, escritorioID string) (*models.Documento, error) {
	for _, d := range r.documentos {
		if d.ID == id && d.EscritorioID == escritorioID {
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeDocumentoRepo) ListByIDs(ctx context.Context, ids []string, escritorioID string) ([]models.Documento, error) {
	var result []models.Documento
	for _, id := range ids {
		for _, d := range r.documentos {
			if d.ID == id && d.EscritorioID == escritorioID {
				result = append(result, d)
			}
		}
	}
	return result, nil
}

func (r *fakeDocumentoRepo) ListByAtendimento(ctx context.Context, atendimentoID, escritorioID string) ([]models.Documento, error) {
	var result []models.Documento
	for _, d := range r.documentos {
		if d.AtendimentoID == atendimentoID && d.EscritorioID == escritorioID {
			result = append(result, d)
		}
	}
	return result, nil
}

// fakePecaRepo implements the versioning contract in memory: every
// content change snapshots the previous pair into the log and bumps the
// counter by one.
type fakePecaRepo struct {
	pecas    map[string]*models.Peca
	versions []models.PecaVersao
}

func newFakePecaRepo(pecas ...*models.Peca) *fakePecaRepo {
	repo := &fakePecaRepo{pecas: map[string]*models.Peca{}}
	for _, p := range pecas {
		repo.pecas[p.ID] = p
	}
	return repo
}

func (r *fakePecaRepo) get(id, escritorioID string) (*models.Peca, error) {
	p, ok := r.pecas[id]
	if !ok || p.EscritorioID != escritorioID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakePecaRepo) Create(ctx context.Context, peca *models.Peca) error {
	peca.ID = testPecaID
	peca.Versao = 1
	peca.Status = models.StatusRascunho
	r.pecas[peca.ID] = peca
	return nil
}

func (r *fakePecaRepo) GetByID(ctx context.Context, id, escritorioID string) (*models.Peca, error) {
	return r.get(id, escritorioID)
}

func (r *fakePecaRepo) SaveNewVersion(ctx context.Context, pecaID, escritorioID, newContent, editorID string) (int, error) {
	p, err := r.get(pecaID, escritorioID)
	if err != nil {
		return 0, err
	}

	if p.ConteudoMarkdown != "" {
		r.versions = append(r.versions, models.PecaVersao{
			EscritorioID:     escritorioID,
			PecaID:           pecaID,
			Versao:           p.Versao,
			ConteudoMarkdown: p.ConteudoMarkdown,
			EditadoPor:       editorID,
		})
	}

	p.ConteudoMarkdown = newContent
	p.Versao++
	p.Status = models.StatusRascunho
	return p.Versao, nil
}

func (r *fakePecaRepo) ListVersions(ctx context.Context, pecaID, escritorioID string) ([]models.PecaVersao, error) {
	var result []models.PecaVersao
	for _, v := range r.versions {
		if v.PecaID == pecaID && v.EscritorioID == escritorioID {
			result = append(result, v)
		}
	}
	return result, nil
}

func (r *fakePecaRepo) SetValidacao(ctx context.Context, pecaID, escritorioID string, validacao json.RawMessage) error {
	p, err := r.get(pecaID, escritorioID)
	if err != nil {
		return err
	}
	p.Validacao = validacao
	return nil
}

func (r *fakePecaRepo) UpdateStatus(ctx context.Context, pecaID, escritorioID, fromStatus, toStatus string) (*models.Peca, error) {
	p, err := r.get(pecaID, escritorioID)
	if err != nil {
		return nil, err
	}
	if p.Status != fromStatus {
		return nil, domain.ErrNotFound
	}
	p.Status = toStatus
	return p, nil
}

func (r *fakePecaRepo) Approve(ctx context.Context, pecaID, escritorioID, reviewerID string) (*models.Peca, error) {
	p, err := r.UpdateStatus(ctx, pecaID, escritorioID, models.StatusAguardandoRevisao, models.StatusRevisada)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p.RevisadoPor = &reviewerID
	p.RevisadoEm = &now
	return p, nil
}

func (r *fakePecaRepo) Reject(ctx context.Context, pecaID, escritorioID, reviewerID, motivo string) (*models.Peca, error) {
	p, err := r.UpdateStatus(ctx, pecaID, escritorioID, models.StatusAguardandoRevisao, models.StatusRejeitada)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p.RevisadoPor = &reviewerID
	p.RevisadoEm = &now
	p.MotivoRejeicao = &motivo
	return p, nil
}

func (r *fakePecaRepo) MarkExported(ctx context.Context, pecaID, escritorioID string) error {
	p, err := r.get(pecaID, escritorioID)
	if err != nil {
		return err
	}
	p.Status = models.StatusExportada
	return nil
}

// fakeModeloRepo holds tenant templates keyed by (escritorio, tipo).
type fakeModeloRepo struct {
	modelos map[string]*models.ModeloDocumento
}

func (r *fakeModeloRepo) key(escritorioID, tipoPeca string) string {
	return escritorioID + "/" + tipoPeca
}

func (r *fakeModeloRepo) Upsert(ctx context.Context, modelo *models.ModeloDocumento) error {
	if r.modelos == nil {
		r.modelos = map[string]*models.ModeloDocumento{}
	}
	r.modelos[r.key(modelo.EscritorioID, modelo.TipoPeca)] = modelo
	return nil
}

func (r *fakeModeloRepo) GetByTipo(ctx context.Context, escritorioID, tipoPeca string) (*models.ModeloDocumento, error) {
	m, ok := r.modelos[r.key(escritorioID, tipoPeca)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// fakeUsoRepo collects usage entries; safe for the recorder's goroutines.
type fakeUsoRepo struct {
	mu      sync.Mutex
	entries []models.UsoIA
}

func (r *fakeUsoRepo) Create(ctx context.Context, entry *models.UsoIA) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

// fakeCompleter replays scripted chunks and captures the prompts it was
// called with.
type fakeCompleter struct {
	mu         sync.Mutex
	chunks     []services.Chunk
	jsonResult json.RawMessage
	jsonUsage  *services.TokenUsage
	jsonErr    error
	calls      int
	lastSystem string
	lastPrompt string
}

func (c *fakeCompleter) StreamCompletion(ctx context.Context, system, prompt string) (<-chan services.Chunk, error) {
	c.mu.Lock()
	c.calls++
	c.lastSystem = system
	c.lastPrompt = prompt
	chunks := c.chunks
	c.mu.Unlock()

	out := make(chan services.Chunk, len(chunks))
	for _, chunk := range chunks {
		out <- chunk
	}
	close(out)
	return out, nil
}

func (c *fakeCompleter) CompletionJSON(ctx context.Context, system, prompt string) (json.RawMessage, *services.TokenUsage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.lastSystem = system
	c.lastPrompt = prompt
	if c.jsonErr != nil {
		return nil, c.jsonUsage, c.jsonErr
	}
	return c.jsonResult, c.jsonUsage, nil
}

func (c *fakeCompleter) Model() string {
	return "claude-sonnet-4-20250514"
}

func (c *fakeCompleter) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func textChunks(parts ...string) []services.Chunk {
	var chunks []services.Chunk
	for _, p := range parts {
		chunks = append(chunks, services.Chunk{Text: p})
	}
	chunks = append(chunks, services.Chunk{Usage: &services.TokenUsage{InputTokens: 100, OutputTokens: 50}})
	return chunks
}

func testAtendimento() *models.Atendimento {
	return &models.Atendimento{
		ID:           testAtendimentoID,
		EscritorioID: testEscritorioID,
		ClienteID:    "77777777-7777-7777-7777-777777777777",
		Area:         "trabalhista",
		ModoInput:    models.ModoInputTexto,
		Transcricao:  "Cliente relata demissão sem justa causa após quatro anos de serviço.",
	}
}

func testPeca(content string) *models.Peca {
	return &models.Peca{
		ID:               testPecaID,
		EscritorioID:     testEscritorioID,
		AtendimentoID:    testAtendimentoID,
		TipoPeca:         "peticao_inicial",
		ConteudoMarkdown: content,
		Versao:           1,
		Status:           models.StatusRascunho,
	}
}
