package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pbidoc"
)

// VersionedPath returns path if nothing exists there. Otherwise it inserts
// "_version_NN" before the extension, starting at 02, and returns the first
// name that is not taken.
func VersionedPath(path string) string {
	if !exists(path) {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for version := 2; ; version++ {
		candidate := fmt.Sprintf("%s_version_%02d%s", base, version, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Ensure ReportWriter implements pbidoc.ReportWriter at compile time.
var _ pbidoc.ReportWriter = (*ReportWriter)(nil)

// ReportWriter writes reports with atomic, append-only semantics.
// Output is rendered into a temporary file next to the target and renamed
// into place only once rendering succeeds.
type ReportWriter struct{}

// NewReportWriter creates a new ReportWriter.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// WriteReport renders into the first free versioned variant of path.
func (w *ReportWriter) WriteReport(path string, render func(w io.Writer) error) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating documentation directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temporary report: %w", err)
	}
	tmpPath := tmp.Name()

	if err := render(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temporary report: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("setting report permissions: %w", err)
	}

	finalPath := VersionedPath(path)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("moving report into place: %w", err)
	}
	return finalPath, nil
}
