package prompt

import (
	"fmt"
	"strings"
)

// Legal areas with registered generation templates.
const (
	AreaTrabalhista    = "trabalhista"
	AreaCivel          = "civel"
	AreaPrevidenciario = "previdenciario"
	AreaConsumidor     = "consumidor"
	AreaFamilia        = "familia"
)

// Piece types.
const (
	TipoPeticaoInicial = "peticao_inicial"
	TipoContestacao    = "contestacao"
	TipoNotificacao    = "notificacao_extrajudicial"
)

// pecaSpec is one row of the generation-template table. Registration
// iterates the table, so adding a document type is adding a row.
type pecaSpec struct {
	area      string
	tipo      string
	persona   string
	instrucao string
}

const systemPecaBase = `Responda sempre em português do Brasil.
Redija com técnica forense: qualificação das partes, fatos, fundamentos jurídicos e pedidos claramente separados.
Cite os dispositivos legais aplicáveis. Não invente fatos, valores ou documentos que não constem do material fornecido;
quando uma informação indispensável estiver ausente, insira o marcador [PREENCHER] no lugar.
A saída é o texto integral da peça em Markdown, sem comentários fora da peça. Não retorne JSON.`

var pecaSpecs = []pecaSpec{
	{
		area:    AreaTrabalhista,
		tipo:    TipoPeticaoInicial,
		persona: "Você é um advogado trabalhista experiente redigindo uma reclamação trabalhista.",
		instrucao: `Redija a petição inicial trabalhista completa: endereçamento à Vara do Trabalho, qualificação,
síntese dos fatos, fundamentos (CLT e jurisprudência consolidada do TST), pedidos líquidos com as verbas cabíveis,
valor da causa e requerimentos finais, incluindo gratuidade de justiça quando o relato a justificar.`,
	},
	{
		area:    AreaTrabalhista,
		tipo:    TipoContestacao,
		persona: "Você é um advogado trabalhista experiente redigindo a defesa da reclamada.",
		instrucao: `Redija a contestação trabalhista: preliminares cabíveis, impugnação específica de cada pedido do
reclamante conforme o relato, teses subsidiárias e requerimentos finais.`,
	},
	{
		area:    AreaCivel,
		tipo:    TipoPeticaoInicial,
		persona: "Você é um advogado civilista experiente redigindo uma petição inicial.",
		instrucao: `Redija a petição inicial cível conforme o art. 319 do CPC: endereçamento, qualificação, fatos,
fundamentos jurídicos, pedidos com suas especificações, valor da causa, provas pretendidas e opção pela audiência de conciliação.`,
	},
	{
		area:    AreaCivel,
		tipo:    TipoContestacao,
		persona: "Você é um advogado civilista experiente redigindo uma contestação.",
		instrucao: `Redija a contestação cível: preliminares do art. 337 do CPC cabíveis, impugnação específica dos fatos
(art. 341), fundamentos da defesa e requerimentos.`,
	},
	{
		area:    AreaPrevidenciario,
		tipo:    TipoPeticaoInicial,
		persona: "Você é um advogado previdenciarista experiente redigindo uma ação contra o INSS.",
		instrucao: `Redija a petição inicial previdenciária: competência (Justiça Federal ou juizado), prévio requerimento
administrativo, fatos, fundamentos na Lei 8.213/91, pedido do benefício devido com DIB e atrasados, e tutela de urgência quando cabível.`,
	},
	{
		area:    AreaConsumidor,
		tipo:    TipoPeticaoInicial,
		persona: "Você é um advogado consumerista experiente redigindo uma ação de consumo.",
		instrucao: `Redija a petição inicial consumerista: relação de consumo e inversão do ônus da prova (CDC art. 6º, VIII),
fatos, fundamentos no CDC, danos materiais e morais com parâmetros jurisprudenciais, e pedidos.`,
	},
	{
		area:    AreaFamilia,
		tipo:    TipoPeticaoInicial,
		persona: "Você é um advogado de família experiente redigindo uma ação de direito de família.",
		instrucao: `Redija a petição inicial de família adequada ao relato (divórcio, alimentos, guarda ou reconhecimento
de união estável): segredo de justiça, qualificação, fatos, fundamentos no Código Civil e no ECA quando houver menores, e pedidos.`,
	},
	{
		area:    AreaConsumidor,
		tipo:    TipoNotificacao,
		persona: "Você é um advogado experiente redigindo uma notificação extrajudicial.",
		instrucao: `Redija a notificação extrajudicial ao fornecedor: identificação das partes, exposição objetiva dos fatos,
exigências com prazo para atendimento e advertência das medidas judiciais cabíveis.`,
	},
}

// renderPeca builds the full generation prompt: intake context, tenant
// boilerplate and the task instruction.
func renderPeca(instrucao string) func(Input) string {
	return func(in Input) string {
		var b strings.Builder
		secaoRelato(&b, in)
		secaoPedido(&b, in)
		secaoFatos(&b, in)
		secaoDocumentos(&b, in)
		secaoAnalise(&b, in)
		secaoModelo(&b, in)
		b.WriteString("## Tarefa\n\n")
		b.WriteString(instrucao)
		b.WriteString("\n")
		return b.String()
	}
}

const systemRefino = `Você é um advogado revisor experiente. Você receberá a versão atual de uma peça jurídica e novos documentos do caso.
Incorpore as informações dos novos documentos à peça, corrigindo o que eles contradisserem.
Responda exclusivamente com um único objeto JSON, sem texto fora dele, no formato:
{"conteudo_atualizado": "<peça completa atualizada em Markdown>", "mudancas": ["<descrição de cada alteração feita>"], "divergencias": ["<cada ponto em que um documento contradiz o relato ou a peça>"]}
As listas podem ser vazias, mas os três campos são obrigatórios.`

const systemValidacao = `Você é um advogado revisor sênior avaliando a qualidade de uma peça jurídica antes do protocolo.
Responda exclusivamente com um único objeto JSON, sem texto fora dele, no formato:
{"coerencia": {"nota": <0-10>, "justificativa": "..."}, "legislacao": {"nota": <0-10>, "justificativa": "..."}, "jurisprudencia": {"nota": <0-10>, "justificativa": "..."}, "doutrina": {"nota": <0-10>, "justificativa": "..."}, "apontamentos": ["<problema concreto encontrado>"]}
Avalie coerência interna, correção das citações legais, aderência à jurisprudência dominante e suporte doutrinário.`

func init() {
	for _, spec := range pecaSpecs {
		registerPeca(spec.area, spec.tipo, &Template{
			System:       fmt.Sprintf("%s\n%s", spec.persona, systemPecaBase),
			OutputFormat: FormatTexto,
			Render:       renderPeca(spec.instrucao),
		})
	}

	registerTarefa(TarefaRefino, &Template{
		System:       systemRefino,
		OutputFormat: FormatJSON,
		Render: func(in Input) string {
			var b strings.Builder
			secaoConteudo(&b, in)
			secaoDocumentos(&b, in)
			secaoAnalise(&b, in)
			return b.String()
		},
	})

	registerTarefa(TarefaValidacao, &Template{
		System:       systemValidacao,
		OutputFormat: FormatJSON,
		Render: func(in Input) string {
			var b strings.Builder
			secaoConteudo(&b, in)
			secaoRelato(&b, in)
			secaoDocumentos(&b, in)
			return b.String()
		},
	})
}
