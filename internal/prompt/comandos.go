package prompt

import "strings"

// Quick-command ids exposed by POST /api/comandos.
const (
	ComandoListarDocumentos   = "listar_documentos"
	ComandoAnaliseCaso        = "analise_caso"
	ComandoEstrategiaJuridica = "estrategia_juridica"
	ComandoProximosPassos     = "proximos_passos"
	ComandoResumoCliente      = "resumo_cliente"
)

// systemComando is the shared persona for streaming comandos. The
// output contract (formatted text, not JSON) is stated here because the
// completion gateway is agnostic to it.
const systemComando = `Você é um assistente jurídico experiente de um escritório de advocacia brasileiro.
Responda sempre em português do Brasil, com base exclusivamente nas informações fornecidas sobre o atendimento.
Não invente fatos, datas, valores ou nomes que não constem do relato ou dos documentos.
Formate a resposta em Markdown bem estruturado, com títulos e listas quando apropriado.
Não retorne JSON; a saída é texto formatado para leitura direta pelo advogado.`

// renderComando builds the shared intake context and appends the
// task-specific instruction.
func renderComando(instrucao string) func(Input) string {
	return func(in Input) string {
		var b strings.Builder
		secaoRelato(&b, in)
		secaoPedido(&b, in)
		secaoFatos(&b, in)
		secaoDocumentos(&b, in)
		b.WriteString("## Tarefa\n\n")
		b.WriteString(instrucao)
		b.WriteString("\n")
		return b.String()
	}
}

func init() {
	registerComando(ComandoListarDocumentos, &Template{
		System:       systemComando,
		OutputFormat: FormatTexto,
		Render: renderComando(`Liste todos os documentos que o cliente precisa providenciar para instruir o caso.
Para cada documento, apresente um item de lista com o nome do documento, a razão pela qual é necessário e onde o cliente normalmente o obtém.
Separe documentos indispensáveis de documentos recomendáveis.`),
	})

	registerComando(ComandoAnaliseCaso, &Template{
		System:       systemComando,
		OutputFormat: FormatTexto,
		Render: renderComando(`Produza uma análise jurídica preliminar do caso: enquadramento legal, direitos potencialmente violados,
teses aplicáveis com fundamento legal, riscos e pontos que precisam de esclarecimento com o cliente.`),
	})

	registerComando(ComandoEstrategiaJuridica, &Template{
		System:       systemComando,
		OutputFormat: FormatTexto,
		Render: renderComando(`Proponha a estratégia jurídica para o caso: via processual recomendada, medidas pré-processuais,
pedidos principais e subsidiários, provas a produzir e estimativa realista de desfecho. Justifique cada recomendação.`),
	})

	registerComando(ComandoProximosPassos, &Template{
		System:       systemComando,
		OutputFormat: FormatTexto,
		Render: renderComando(`Liste, em ordem de prioridade, os próximos passos concretos que o escritório deve tomar neste atendimento,
com prazo sugerido para cada um. Inclua prazos legais relevantes quando identificáveis no relato.`),
	})

	registerComando(ComandoResumoCliente, &Template{
		System:       systemComando,
		OutputFormat: FormatTexto,
		Render: renderComando(`Escreva um resumo do caso em linguagem simples, dirigido ao cliente leigo: o que entendemos do caso,
o que é possível pleitear e o que acontece a seguir. Evite jargão jurídico; quando inevitável, explique o termo.`),
	})
}
