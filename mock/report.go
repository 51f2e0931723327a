package mock

import (
	"context"
	"io"

	"github.com/fwojciec/pbidoc"
)

var _ pbidoc.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of pbidoc.Renderer.
type Renderer struct {
	RenderFn    func(ctx context.Context, w io.Writer, report *pbidoc.Report) error
	ExtensionFn func() string
}

func (r *Renderer) Render(ctx context.Context, w io.Writer, report *pbidoc.Report) error {
	return r.RenderFn(ctx, w, report)
}

func (r *Renderer) Extension() string {
	return r.ExtensionFn()
}

var _ pbidoc.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of pbidoc.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(path string, render func(w io.Writer) error) (string, error)
}

func (w *ReportWriter) WriteReport(path string, render func(w io.Writer) error) (string, error) {
	return w.WriteReportFn(path, render)
}

var _ pbidoc.Inspector = (*Inspector)(nil)

// Inspector is a mock implementation of pbidoc.Inspector.
type Inspector struct {
	InspectFn func(r io.Reader) (*pbidoc.ReportSummary, error)
}

func (i *Inspector) Inspect(r io.Reader) (*pbidoc.ReportSummary, error) {
	return i.InspectFn(r)
}
