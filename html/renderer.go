// Package html renders pbidoc reports as standalone HTML pages.
package html

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/fwojciec/pbidoc"
)

//go:embed report.html.tmpl
var defaultTemplate string

// Ensure Renderer implements pbidoc.Renderer at compile time.
var _ pbidoc.Renderer = (*Renderer)(nil)

// Renderer executes an html/template against a report.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a Renderer using the built-in template.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("report").Parse(defaultTemplate)),
	}
}

// NewRendererFromFile creates a Renderer from a user-supplied template file.
// The template receives a View.
func NewRendererFromFile(path string) (*Renderer, error) {
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return nil, pbidoc.Errorf(pbidoc.EINVALID, "parsing template %s: %v", path, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// View is the data passed to report templates.
type View struct {
	Title       string
	Date        string
	PackageName string
	Checksum    string
	Sections    []Section
}

// Section is one dataset, pre-formatted for display.
type Section struct {
	ID      string
	Title   string
	Headers []string
	Rows    [][]string
}

// NewView prepares a report for template execution.
func NewView(report *pbidoc.Report) View {
	v := View{
		Title:       report.Title,
		Date:        report.GeneratedAt.Format(pbidoc.DateLayout),
		PackageName: report.PackageName,
		Checksum:    report.Checksum,
	}
	for _, d := range report.Datasets() {
		v.Sections = append(v.Sections, Section{
			ID:      d.Name,
			Title:   d.Title,
			Headers: d.Headers(),
			Rows:    d.Strings(),
		})
	}
	return v
}

// Render writes the report as HTML.
func (r *Renderer) Render(ctx context.Context, w io.Writer, report *pbidoc.Report) error {
	if err := r.tmpl.Execute(w, NewView(report)); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}

// Extension returns ".html".
func (r *Renderer) Extension() string {
	return ".html"
}
