// Package prompt is the process-wide registry of prompt templates: a
// plain mapping from a template key to a fixed system instruction plus
// a pure render function. New document types and comandos are added as
// data, not as branches in control flow. The registry is built once at
// package init and never mutated at runtime.
package prompt

import (
	"fmt"

	"advogadovirtual/internal/domain"
)

// OutputFormat declares the output contract the system instruction
// imposes on the model. The registry states the contract; the
// completion gateway does not.
type OutputFormat string

const (
	// FormatTexto: unstructured formatted text, used by streaming comandos.
	FormatTexto OutputFormat = "texto"
	// FormatJSON: a single JSON object matching an enumerated schema.
	FormatJSON OutputFormat = "json"
)

// DocumentoInput is the slice of an uploaded document that reaches a
// prompt: name, classification tag and best-effort extracted text.
type DocumentoInput struct {
	Nome          string
	Classificacao string
	TextoExtraido string
}

// Input is the data payload a template renders. Optional fields render
// as explicit placeholder sentences, never as omitted headings, so the
// model output stays structurally consistent.
type Input struct {
	Transcricao      string
	PedidoEspecifico string
	AnalisePrevia    string
	ConteudoAtual    string // current piece content, for refino/validação
	ModeloEscritorio string // tenant boilerplate template, when one exists
	Documentos       []DocumentoInput
	Fatos            map[string]interface{}
}

// Template pairs a fixed system instruction with a pure render function.
type Template struct {
	System       string
	OutputFormat OutputFormat
	Render       func(Input) string
}

// pecaKey identifies a generation template.
type pecaKey struct {
	Area     string
	TipoPeca string
}

var (
	pecas    = map[pecaKey]*Template{}
	comandos = map[string]*Template{}
	tarefas  = map[string]*Template{}
)

// Task identifiers for the structured (JSON) pipeline steps.
const (
	TarefaRefino    = "refino"
	TarefaValidacao = "validacao"
)

// ForPeca returns the generation template for (area, tipoPeca).
// Unknown keys fail with domain.ErrTemplateNotFound; callers check this
// before any external API call is attempted.
func ForPeca(area, tipoPeca string) (*Template, error) {
	t, ok := pecas[pecaKey{Area: area, TipoPeca: tipoPeca}]
	if !ok {
		return nil, fmt.Errorf("peca %s/%s: %w", area, tipoPeca, domain.ErrTemplateNotFound)
	}
	return t, nil
}

// ForComando returns the streaming template for a quick-command id.
func ForComando(comandoID string) (*Template, error) {
	t, ok := comandos[comandoID]
	if !ok {
		return nil, fmt.Errorf("comando %s: %w", comandoID, domain.ErrTemplateNotFound)
	}
	return t, nil
}

// ForTarefa returns the structured-task template (refino, validacao).
func ForTarefa(tarefa string) (*Template, error) {
	t, ok := tarefas[tarefa]
	if !ok {
		return nil, fmt.Errorf("tarefa %s: %w", tarefa, domain.ErrTemplateNotFound)
	}
	return t, nil
}

// Areas returns the registered legal areas, for payload validation.
func Areas() []string {
	seen := map[string]bool{}
	var result []string
	for k := range pecas {
		if !seen[k.Area] {
			seen[k.Area] = true
			result = append(result, k.Area)
		}
	}
	return result
}

// HasArea reports whether any template is registered for the area.
func HasArea(area string) bool {
	for k := range pecas {
		if k.Area == area {
			return true
		}
	}
	return false
}

func registerPeca(area, tipoPeca string, t *Template) {
	pecas[pecaKey{Area: area, TipoPeca: tipoPeca}] = t
}

func registerComando(id string, t *Template) {
	comandos[id] = t
}

func registerTarefa(id string, t *Template) {
	tarefas[id] = t
}
