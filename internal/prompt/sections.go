package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// Fixed section headings. Every render emits every heading relevant to
// its task; absent data renders the placeholder sentence under the
// heading instead of dropping the section, so downstream model output
// keeps a consistent structure.
const (
	headingRelato     = "## Relato do cliente"
	headingPedido     = "## Pedido específico"
	headingFatos      = "## Fatos estruturados"
	headingDocumentos = "## Documentos anexados"
	headingAnalise    = "## Análise prévia"
	headingConteudo   = "## Conteúdo atual da peça"
	headingModelo     = "## Modelo do escritório"
)

const (
	placeholderSemPedido     = "Nenhum pedido específico."
	placeholderSemFatos      = "Nenhum fato estruturado extraído."
	placeholderSemDocumentos = "Nenhum documento anexado."
	placeholderSemAnalise    = "Nenhuma análise prévia."
	placeholderSemModelo     = "Nenhum modelo cadastrado; use a estrutura padrão."
)

func secaoRelato(b *strings.Builder, in Input) {
	b.WriteString(headingRelato + "\n\n")
	b.WriteString(strings.TrimSpace(in.Transcricao))
	b.WriteString("\n\n")
}

func secaoPedido(b *strings.Builder, in Input) {
	b.WriteString(headingPedido + "\n\n")
	if pedido := strings.TrimSpace(in.PedidoEspecifico); pedido != "" {
		b.WriteString(pedido)
	} else {
		b.WriteString(placeholderSemPedido)
	}
	b.WriteString("\n\n")
}

func secaoFatos(b *strings.Builder, in Input) {
	b.WriteString(headingFatos + "\n\n")
	if len(in.Fatos) == 0 {
		b.WriteString(placeholderSemFatos)
		b.WriteString("\n\n")
		return
	}

	// Deterministic order keeps renders reproducible for the same input.
	keys := make([]string, 0, len(in.Fatos))
	for k := range in.Fatos {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(b, "- %s: %v\n", k, in.Fatos[k])
	}
	b.WriteString("\n")
}

func secaoDocumentos(b *strings.Builder, in Input) {
	b.WriteString(headingDocumentos + "\n\n")
	if len(in.Documentos) == 0 {
		b.WriteString(placeholderSemDocumentos)
		b.WriteString("\n\n")
		return
	}

	for i, doc := range in.Documentos {
		fmt.Fprintf(b, "### Documento %d: %s (%s)\n\n", i+1, doc.Nome, doc.Classificacao)
		if texto := strings.TrimSpace(doc.TextoExtraido); texto != "" {
			b.WriteString(texto)
		} else {
			b.WriteString("Texto não extraído; considere apenas o nome e a classificação.")
		}
		b.WriteString("\n\n")
	}
}

func secaoAnalise(b *strings.Builder, in Input) {
	b.WriteString(headingAnalise + "\n\n")
	if analise := strings.TrimSpace(in.AnalisePrevia); analise != "" {
		b.WriteString(analise)
	} else {
		b.WriteString(placeholderSemAnalise)
	}
	b.WriteString("\n\n")
}

func secaoConteudo(b *strings.Builder, in Input) {
	b.WriteString(headingConteudo + "\n\n")
	b.WriteString(strings.TrimSpace(in.ConteudoAtual))
	b.WriteString("\n\n")
}

func secaoModelo(b *strings.Builder, in Input) {
	b.WriteString(headingModelo + "\n\n")
	if modelo := strings.TrimSpace(in.ModeloEscritorio); modelo != "" {
		b.WriteString(modelo)
	} else {
		b.WriteString(placeholderSemModelo)
	}
	b.WriteString("\n\n")
}
