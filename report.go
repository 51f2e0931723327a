package pbidoc

import (
	"context"
	"io"
	"time"
)

// DateLayout is the date format printed on rendered reports.
const DateLayout = "02/01/2006"

// Report is everything a renderer needs to produce a documentation file.
type Report struct {
	Title       string    `json:"title"`
	PackageName string    `json:"packageName"`
	Checksum    string    `json:"checksum"`
	GeneratedAt time.Time `json:"generatedAt"`

	Pages   *Dataset `json:"pages"`
	Visuals *Dataset `json:"visuals"`
	Columns *Dataset `json:"columns"`
}

// NewReport builds a Report from extracted records.
func NewReport(title, packageName string, pages []PageRecord, visuals []VisualRecord, columns []ColumnRecord) *Report {
	return &Report{
		Title:       title,
		PackageName: packageName,
		Pages:       NewPageDataset(pages),
		Visuals:     NewVisualDataset(visuals),
		Columns:     NewColumnDataset(columns),
	}
}

// Datasets returns the report datasets in rendering order.
// Nil datasets are skipped.
func (r *Report) Datasets() []*Dataset {
	out := make([]*Dataset, 0, 3)
	for _, d := range []*Dataset{r.Pages, r.Visuals, r.Columns} {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

// Renderer writes a report in a specific output format.
type Renderer interface {
	// Render writes the report to w.
	Render(ctx context.Context, w io.Writer, report *Report) error

	// Extension returns the file extension of the output, including the dot.
	Extension() string
}

// ReportWriter persists rendered reports without overwriting earlier ones.
type ReportWriter interface {
	// WriteReport picks a non-colliding path derived from path, streams the
	// output of render into it and returns the path that was written.
	// Nothing is left at the final path if render fails.
	WriteReport(path string, render func(w io.Writer) error) (string, error)
}

// SectionSummary describes one dataset section of a rendered report.
type SectionSummary struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Headers []string `json:"headers"`
	Rows    int      `json:"rows"`
}

// ReportSummary describes a rendered report read back from disk.
type ReportSummary struct {
	Title       string           `json:"title"`
	ReportName  string           `json:"reportName"`
	GeneratedOn string           `json:"generatedOn"`
	Sections    []SectionSummary `json:"sections"`
}

// Inspector reads rendered reports.
type Inspector interface {
	// Inspect parses a rendered report.
	// Returns EINVALID if the input is not a pbidoc report.
	Inspect(r io.Reader) (*ReportSummary, error)
}
