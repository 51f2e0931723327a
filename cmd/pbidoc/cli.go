package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/pbidoc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Archive   pbidoc.Archive
	Inspector pbidoc.Inspector
	Renderers map[pbidoc.Format]RendererFactory
	Now       func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Generate GenerateCmd `cmd:"" help:"Generate documentation for the template package in a directory"`
	Inspect  InspectCmd  `cmd:"" help:"Summarize a generated HTML report"`
	Parts    PartsCmd    `cmd:"" help:"List the entries of a template package"`
	Init     InitCmd     `cmd:"" help:"Write a default configuration file"`
}

// GenerateCmd is the "generate" subcommand. Flags left empty fall back to
// the configuration file, then to the defaults.
type GenerateCmd struct {
	Config       string `short:"c" env:"PBIDOC_CONFIG" default:"pbidoc.yaml" help:"Configuration file"`
	PackageDir   string `name:"package-dir" env:"PBIDOC_PACKAGE_DIR" help:"Directory containing the .pbit package"`
	WorkDir      string `name:"work-dir" env:"PBIDOC_WORK_DIR" help:"Directory receiving extracted descriptors (default: package dir)"`
	DocDir       string `name:"doc-dir" env:"PBIDOC_DOC_DIR" help:"Directory receiving the report"`
	Title        string `env:"PBIDOC_TITLE" help:"Report name printed in the header"`
	Format       string `env:"PBIDOC_FORMAT" help:"Output format: html, markdown, xlsx or sqlite"`
	TemplatePath string `name:"template-path" env:"PBIDOC_TEMPLATE_PATH" help:"Directory of a custom HTML template"`
	TemplateFile string `name:"template-file" env:"PBIDOC_TEMPLATE_FILE" help:"File name of a custom HTML template"`
	Encoding     string `env:"PBIDOC_ENCODING" help:"Descriptor encoding: utf-16-le or utf-8"`
	Verbose      bool   `short:"v" env:"PBIDOC_VERBOSE" help:"Log every stage"`
}

// overrides returns the flag values as a partial config.
func (c *GenerateCmd) overrides() pbidoc.Config {
	return pbidoc.Config{
		PackageDirectory:       c.PackageDir,
		WorkDirectory:          c.WorkDir,
		TemplatePath:           c.TemplatePath,
		TemplateFilename:       c.TemplateFile,
		DocumentationDirectory: c.DocDir,
		ReportTitle:            c.Title,
		Format:                 pbidoc.Format(c.Format),
		Encoding:               pbidoc.Encoding(c.Encoding),
	}
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	Path string `arg:"" help:"Generated HTML report"`
	JSON bool   `name:"json" help:"Print the summary as JSON"`
}

// PartsCmd is the "parts" subcommand.
type PartsCmd struct {
	Package string `arg:"" help:"Template package (.pbit or .pbit.zip)"`
}

// InitCmd is the "init" subcommand.
type InitCmd struct {
	Path string `arg:"" optional:"" default:"pbidoc.yaml" help:"Configuration file to create"`
}
