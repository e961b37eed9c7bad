// Command llmcli runs a quick command against the completion gateway
// from the terminal, without a database or HTTP server. Useful for
// iterating on prompt templates and checking model behavior.
//
//	cat relato.txt | go run ./cmd/llmcli -comando analise_caso
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"advogadovirtual/internal/config"
	"advogadovirtual/internal/llm"
	"advogadovirtual/internal/prompt"

	"github.com/joho/godotenv"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func main() {
	comandoID := flag.String("comando", prompt.ComandoAnaliseCaso, "quick command id to run")
	pedido := flag.String("pedido", "", "specific client request, if any")
	listar := flag.Bool("listar", false, "list available comandos and exit")
	flag.Parse()

	if *listar {
		fmt.Println("Comandos disponíveis:")
		for _, id := range []string{
			prompt.ComandoListarDocumentos,
			prompt.ComandoAnaliseCaso,
			prompt.ComandoEstrategiaJuridica,
			prompt.ComandoProximosPassos,
			prompt.ComandoResumoCliente,
		} {
			fmt.Printf("  %s\n", id)
		}
		return
	}

	_ = godotenv.Load()
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	template, err := prompt.ForComando(*comandoID)
	if err != nil {
		log.Fatalf("unknown comando %q (use -listar)", *comandoID)
	}

	transcricao, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("failed to read transcript from stdin: %v", err)
	}
	if strings.TrimSpace(string(transcricao)) == "" {
		log.Fatal("empty transcript: pipe the client intake text into stdin")
	}

	in := prompt.Input{
		Transcricao:      string(transcricao),
		PedidoEspecifico: *pedido,
	}

	gateway := llm.NewGateway(cfg, logger)

	fmt.Fprintf(os.Stderr, "%s▶ %s (%s)%s\n\n", colorCyan, *comandoID, cfg.Model, colorReset)

	chunks, err := gateway.StreamCompletion(context.Background(), template.System, template.Render(in))
	if err != nil {
		log.Fatalf("gateway error: %v", err)
	}

	for chunk := range chunks {
		switch {
		case chunk.Err != nil:
			fmt.Fprintf(os.Stderr, "\n%s✖ stream failed: %v%s\n", colorYellow, chunk.Err, colorReset)
			os.Exit(1)
		case chunk.Usage != nil:
			fmt.Fprintf(os.Stderr, "\n\n%s✔ done (entrada: %d tokens, saída: %d tokens)%s\n",
				colorGreen, chunk.Usage.InputTokens, chunk.Usage.OutputTokens, colorReset)
		default:
			fmt.Print(chunk.Text)
		}
	}
}
