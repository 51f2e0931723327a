package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pbidoc"
	"github.com/fwojciec/pbidoc/excelize"
	"github.com/fwojciec/pbidoc/goquery"
	"github.com/fwojciec/pbidoc/html"
	"github.com/fwojciec/pbidoc/htmltomarkdown"
	"github.com/fwojciec/pbidoc/sqlite"
	"github.com/fwojciec/pbidoc/zip"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; PBIDOC_* variables may come from the shell.
	_ = godotenv.Load()

	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// RendererFactory builds the renderer for a validated config.
type RendererFactory func(cfg *pbidoc.Config) (pbidoc.Renderer, error)

// Main represents the program.
type Main struct {
	// Renderers maps each output format to its renderer. Set before calling Run().
	Renderers map[pbidoc.Format]RendererFactory

	// Archive and Inspector back the commands. Replaceable for testing.
	Archive   pbidoc.Archive
	Inspector pbidoc.Inspector

	// Now overrides the report date. Nil uses the wall clock.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Renderers: DefaultRenderers(),
		Archive:   zip.NewArchive(),
		Inspector: goquery.NewInspector(),
	}
}

// DefaultRenderers returns a factory for every supported format.
func DefaultRenderers() map[pbidoc.Format]RendererFactory {
	return map[pbidoc.Format]RendererFactory{
		pbidoc.FormatHTML: newHTMLRenderer,
		pbidoc.FormatMarkdown: func(cfg *pbidoc.Config) (pbidoc.Renderer, error) {
			r, err := newHTMLRenderer(cfg)
			if err != nil {
				return nil, err
			}
			return htmltomarkdown.NewRenderer(r), nil
		},
		pbidoc.FormatXLSX: func(*pbidoc.Config) (pbidoc.Renderer, error) {
			return excelize.NewRenderer(), nil
		},
		pbidoc.FormatSQLite: func(*pbidoc.Config) (pbidoc.Renderer, error) {
			return sqlite.NewRenderer(), nil
		},
	}
}

func newHTMLRenderer(cfg *pbidoc.Config) (pbidoc.Renderer, error) {
	if path := cfg.TemplateFile(); path != "" {
		return html.NewRendererFromFile(path)
	}
	return html.NewRenderer(), nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Archive:   m.Archive,
		Inspector: m.Inspector,
		Renderers: m.Renderers,
		Now:       m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pbidoc"),
		kong.Description("Generate documentation for Power BI template packages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pbidoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// newLogger returns a text logger on w, at Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// errorMessage formats err for the "error:" line, keeping the stage of
// pipeline failures.
func errorMessage(err error) string {
	if pbidoc.ErrorCode(err) == pbidoc.EINTERNAL {
		return err.Error()
	}
	msg := pbidoc.ErrorMessage(err)
	var stageErr *pbidoc.StageError
	if errors.As(err, &stageErr) {
		return fmt.Sprintf("%s: %s", stageErr.Stage, msg)
	}
	return msg
}
