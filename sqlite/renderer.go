package sqlite

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/pbidoc"
)

// Ensure Renderer implements pbidoc.Renderer at compile time.
var _ pbidoc.Renderer = (*Renderer)(nil)

// Renderer writes a report as a standalone SQLite database file.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render builds the database in a scratch directory and copies it to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, report *pbidoc.Report) error {
	dir, err := os.MkdirTemp("", "pbidoc-sqlite-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "report.sqlite")
	db := NewDB(path)
	if err := db.Open(); err != nil {
		return err
	}
	if _, err := NewReportService(db).CreateReport(ctx, report); err != nil {
		db.Close()
		return fmt.Errorf("failed to store report: %w", err)
	}
	if err := db.Close(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

// Extension returns ".sqlite".
func (r *Renderer) Extension() string {
	return ".sqlite"
}
