package main

import (
	"fmt"

	"github.com/fwojciec/pbidoc"
	"github.com/fwojciec/pbidoc/fs"
	"github.com/fwojciec/pbidoc/generate"
	"github.com/fwojciec/pbidoc/jsonparser"
	pbislog "github.com/fwojciec/pbidoc/slog"
	"github.com/fwojciec/pbidoc/yaml"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	cfg, err := yaml.LoadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	cfg.Apply(c.overrides())
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	factory, ok := deps.Renderers[cfg.Format]
	if !ok {
		err := pbidoc.Errorf(pbidoc.EINVALID, "no renderer for format %q", cfg.Format)
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	renderer, err := factory(cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	logger := newLogger(deps.Stderr, c.Verbose)
	g := &generate.Generator{
		Archive:  pbislog.NewLoggingArchive(deps.Archive, logger),
		Loader:   pbislog.NewLoggingDescriptorLoader(fs.NewDescriptorLoader(cfg.Encoding), logger),
		Layout:   jsonparser.NewLayoutExtractor(),
		Schema:   jsonparser.NewSchemaExtractor(),
		Renderer: pbislog.NewLoggingRenderer(renderer, logger),
		Writer:   fs.NewReportWriter(),
		Logger:   logger,
		Now:      deps.Now,
	}

	result, err := g.Generate(deps.Ctx, cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s (%d pages, %d visuals, %d columns)\n",
		result.OutputPath, result.Pages, result.Visuals, result.Columns)
	if n := len(result.Warnings); n > 0 {
		fmt.Fprintf(deps.Stdout, "%d warning(s), see log output for details\n", n)
	}
	return nil
}
