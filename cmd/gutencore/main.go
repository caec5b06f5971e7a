package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/gutencore"
	"github.com/fwojciec/gutencore/fs"
	"github.com/fwojciec/gutencore/gemini"
	gutengoquery "github.com/fwojciec/gutencore/goquery"
	gutenhttp "github.com/fwojciec/gutencore/http"
	"github.com/fwojciec/gutencore/pipeline"
	"github.com/fwojciec/gutencore/resolve"
	gutenslog "github.com/fwojciec/gutencore/slog"
	gutensnowball "github.com/fwojciec/gutencore/snowball"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// DataDir is where metadata/ and core_txts/ live. Set before
	// calling Run().
	DataDir string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{DataDir: defaultDataDir()}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// An .env file may carry GEMINI_API_KEY, matching how the original
	// workflow distributed credentials. Absence is fine.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		DataDir: m.DataDir,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gutencore"),
		kong.Description("Extract the literary core of a Project Gutenberg ebook."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'gutencore --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Wire per-command dependencies off the parsed command, not the raw
	// args: global flags like --verbose may precede the command name.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}
	deps.Logger = logger

	httpFetcher := gutenhttp.NewFetcher()
	defer httpFetcher.Close()

	var fetcher gutencore.Fetcher = httpFetcher
	if cli.Verbose {
		fetcher = gutenslog.NewLoggingFetcher(httpFetcher, logger)
	}

	deps.Scraper = gutengoquery.NewScraper(fetcher)
	deps.Metadata = fs.NewMetadataWriter(filepath.Join(m.DataDir, fs.MetadataDirName))
	deps.Texts = gutenhttp.NewTextFetcher(fetcher)
	deps.Core = fs.NewCoreTextWriter(filepath.Join(m.DataDir, fs.CoreTextDirName))
	deps.Analyzer = gutensnowball.NewAnalyzer()

	if cmd == "extract" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		var completer gutencore.Completer = gemini.NewCompleter(client, cli.Extract.Model)
		if cli.Verbose {
			completer = gutenslog.NewLoggingCompleter(completer, logger)
		}

		deps.Pipeline = &pipeline.Pipeline{
			Scraper:      deps.Scraper,
			Metadata:     deps.Metadata,
			Texts:        deps.Texts,
			Resolver:     resolve.NewResolver(completer),
			Core:         deps.Core,
			WindowBudget: cli.Extract.Window,
			Logger:       logger,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDataDir() string {
	if dir := os.Getenv("GUTENCORE_DATA_DIR"); dir != "" {
		return dir
	}
	return "."
}
