// Package generate runs the documentation pipeline: it locates a template
// package, extracts its descriptors, builds the datasets and renders a
// single report file.
package generate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/pbidoc"
)

// Generator orchestrates one documentation run.
type Generator struct {
	Archive  pbidoc.Archive
	Loader   pbidoc.DescriptorLoader
	Layout   pbidoc.LayoutExtractor
	Schema   pbidoc.SchemaExtractor
	Renderer pbidoc.Renderer
	Writer   pbidoc.ReportWriter

	// Logger receives stage transitions at Debug and degradations at Warn.
	// Nil discards logs.
	Logger *slog.Logger

	// Progress, if set, is called on entering each stage.
	Progress ProgressFunc

	// Now returns the report date. Defaults to time.Now.
	Now func() time.Time
}

// ProgressFunc is a callback for reporting stage transitions.
type ProgressFunc func(stage pbidoc.Stage)

// Result holds the outcome of a run.
type Result struct {
	OutputPath  string
	PackagePath string
	Checksum    string
	Pages       int
	Visuals     int
	Columns     int

	// Warnings lists every recovered degradation, in the order they occurred.
	Warnings []string

	// Stages lists the stages entered, ending with pbidoc.StageDone on success.
	Stages []pbidoc.Stage
}

// run carries the state of one Generate call between stages.
type run struct {
	g      *Generator
	cfg    *pbidoc.Config
	result *Result

	container string
	layout    pbidoc.Descriptor
	model     pbidoc.Descriptor
	report    *pbidoc.Report
}

// Generate runs every stage in order. Failures in LOCATE_PACKAGE,
// NORMALIZE_EXTENSION, EXTRACT_ENTRIES and RENDER are fatal and returned
// as *pbidoc.StageError; descriptor and per-visual problems are recorded
// as warnings and the run continues.
func (g *Generator) Generate(ctx context.Context, cfg *pbidoc.Config) (*Result, error) {
	r := &run{g: g, cfg: cfg, result: &Result{}}

	steps := []struct {
		stage pbidoc.Stage
		fn    func(ctx context.Context) error
	}{
		{pbidoc.StageStart, r.start},
		{pbidoc.StageLocatePackage, r.locatePackage},
		{pbidoc.StageNormalizeExtension, r.normalizeExtension},
		{pbidoc.StageExtractEntries, r.extractEntries},
		{pbidoc.StageLoadLayout, r.loadLayout},
		{pbidoc.StageLoadModel, r.loadModel},
		{pbidoc.StageBuildDatasets, r.buildDatasets},
		{pbidoc.StageRender, r.render},
	}

	for _, step := range steps {
		r.enter(step.stage)
		if err := step.fn(ctx); err != nil {
			g.logger().Debug("stage failed", "stage", step.stage, "err", err)
			return r.result, &pbidoc.StageError{Stage: step.stage, Err: err}
		}
	}
	r.enter(pbidoc.StageDone)

	return r.result, nil
}

func (r *run) enter(stage pbidoc.Stage) {
	r.result.Stages = append(r.result.Stages, stage)
	r.g.logger().Debug("stage", "stage", stage)
	if r.g.Progress != nil {
		r.g.Progress(stage)
	}
}

func (r *run) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.result.Warnings = append(r.result.Warnings, msg)
	r.g.logger().Warn(msg)
}

func (r *run) start(ctx context.Context) error {
	return r.cfg.Validate()
}

func (r *run) locatePackage(ctx context.Context) error {
	paths, err := r.g.Archive.FindPackages(r.cfg.PackageDirectory)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return pbidoc.Errorf(pbidoc.ENOTFOUND, "no %s file found in %s", pbidoc.PackageExtension, r.cfg.PackageDirectory)
	}
	if len(paths) > 1 {
		ignored := make([]string, 0, len(paths)-1)
		for _, p := range paths[1:] {
			ignored = append(ignored, filepath.Base(p))
		}
		r.warn("found %d packages, using %s and ignoring %v", len(paths), filepath.Base(paths[0]), ignored)
	}
	r.result.PackagePath = paths[0]
	return nil
}

func (r *run) normalizeExtension(ctx context.Context) error {
	container, err := r.g.Archive.Normalize(r.result.PackagePath)
	if err != nil {
		return err
	}
	r.container = container
	r.result.PackagePath = container

	sum, err := r.g.Archive.Checksum(container)
	if err != nil {
		r.warn("checksum unavailable: %v", err)
		return nil
	}
	r.result.Checksum = sum
	return nil
}

func (r *run) extractEntries(ctx context.Context) error {
	return r.g.Archive.Extract(r.container, r.cfg.WorkDir(), pbidoc.RequiredEntries)
}

func (r *run) loadLayout(ctx context.Context) error {
	r.layout = r.load(pbidoc.EntryLayout)
	return nil
}

func (r *run) loadModel(ctx context.Context) error {
	r.model = r.load(pbidoc.EntryModel)
	return nil
}

// load never fails: a descriptor that cannot be loaded degrades to an
// empty document.
func (r *run) load(entry string) pbidoc.Descriptor {
	path := filepath.Join(r.cfg.WorkDir(), filepath.FromSlash(entry))
	d, err := r.g.Loader.LoadDescriptor(path)
	if err != nil {
		r.warn("%s descriptor degraded to empty document: %v", entry, err)
	}
	if d == nil {
		d = pbidoc.EmptyDescriptor
	}
	return d
}

func (r *run) buildDatasets(ctx context.Context) error {
	pages := r.g.Layout.ExtractPages(r.layout)
	visuals, errs := r.g.Layout.ExtractVisuals(r.layout)
	for _, err := range errs {
		r.warn("visual config: %v", err)
	}
	columns := r.g.Schema.ExtractColumns(r.model)

	r.report = pbidoc.NewReport(r.cfg.ReportTitle, pbidoc.PackageName(r.container), pages, visuals, columns)
	r.report.Checksum = r.result.Checksum
	r.report.GeneratedAt = r.g.now()

	r.result.Pages = len(pages)
	r.result.Visuals = len(visuals)
	r.result.Columns = len(columns)
	return nil
}

func (r *run) render(ctx context.Context) error {
	path := r.cfg.OutputPath(r.container, r.g.Renderer.Extension())
	out, err := r.g.Writer.WriteReport(path, func(w io.Writer) error {
		return r.g.Renderer.Render(ctx, w, r.report)
	})
	if err != nil {
		return err
	}
	r.result.OutputPath = out
	return nil
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return g.Logger
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}
