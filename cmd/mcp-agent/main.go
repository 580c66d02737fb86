// Command mcp-agent connects an MCP tool server to a generative model
// endpoint and runs an interactive query loop.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/inercia/go-mcp/pkg/agent"
	"github.com/inercia/go-mcp/pkg/llm"
	"github.com/inercia/go-mcp/pkg/mcp"
	"github.com/inercia/go-mcp/pkg/providers/gemini"
	"github.com/inercia/go-mcp/pkg/providers/openai"
	"github.com/inercia/go-mcp/pkg/tools"
)

var (
	flagProvider      string
	flagModel         string
	flagNative        bool
	flagMaxIterations int
	flagVerbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "mcp-agent <server>",
	Short: "Chat with a model that can call tools from an MCP server",
	Long: `mcp-agent launches the given MCP tool server (a .py or .js script, or a
native binary), advertises its tools to a model endpoint, and answers queries
by orchestrating model/tool round-trips until the model produces a final
answer.`,
	Args: cobra.ExactArgs(1),
	RunE: run,

	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagProvider, "provider", "gemini", "Model provider (gemini or openai)")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "Model name (provider default when empty)")
	rootCmd.Flags().BoolVar(&flagNative, "native", false, "Use native function calling instead of the textual tag convention")
	rootCmd.Flags().IntVar(&flagMaxIterations, "max-iterations", agent.DefaultMaxIterations, "Maximum tool feedback rounds per query")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load() // .env is optional

	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := mcp.Connect(ctx, args[0])
	if err != nil {
		return fmt.Errorf("connect to MCP server: %w", err)
	}
	defer session.Close() //nolint:errcheck

	registry, err := tools.NewRegistry(ctx, session)
	if err != nil {
		return err
	}
	fmt.Printf("\nConnected to server with tools: %v\n", registry.Names())

	source, err := buildSource(ctx, registry)
	if err != nil {
		return err
	}

	orchestrator := agent.New(source, agent.NewDispatcher(session, registry), agent.Config{
		MaxIterations: flagMaxIterations,
	})

	return chatLoop(ctx, orchestrator)
}

// buildSource wires the calling convention chosen by flags: the textual tag
// convention over a stateless generator, or native function calling over a
// chat handle created with the registry's tool declarations.
func buildSource(ctx context.Context, registry *tools.Registry) (agent.ToolCallSource, error) {
	config := llm.ClientConfig{Provider: flagProvider, Model: flagModel}

	switch flagProvider {
	case "gemini":
		client, err := gemini.NewClient(config)
		if err != nil {
			return nil, err
		}
		if flagNative {
			chat, err := client.StartChat(ctx, registry.List())
			if err != nil {
				return nil, err
			}
			return agent.NewNativeSource(chat), nil
		}
		return agent.NewTagSource(llm.RetryGenerate(client), registry), nil

	case "openai":
		client, err := openai.NewClient(config)
		if err != nil {
			return nil, err
		}
		if flagNative {
			chat, err := client.StartChat(ctx, registry.List())
			if err != nil {
				return nil, err
			}
			return agent.NewNativeSource(chat), nil
		}
		return agent.NewTagSource(llm.RetryGenerate(client), registry), nil

	default:
		return nil, fmt.Errorf("unknown provider %q (expected gemini or openai)", flagProvider)
	}
}

// chatLoop reads queries from stdin until EOF or "quit". Per-query errors
// are printed and the loop continues.
func chatLoop(ctx context.Context, orchestrator *agent.Orchestrator) error {
	fmt.Println("\nMCP agent started!")
	fmt.Println("Type your queries or 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nQuery: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "quit") {
			return nil
		}

		answer, err := orchestrator.ProcessQuery(ctx, query)
		if err != nil {
			fmt.Printf("\nError: %v\n", err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		fmt.Println("\n" + answer)
	}
}
