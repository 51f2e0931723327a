package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pbidoc"
)

// Ensure LoggingRenderer implements pbidoc.Renderer.
var _ pbidoc.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging.
type LoggingRenderer struct {
	next   pbidoc.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next pbidoc.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(ctx context.Context, w io.Writer, report *pbidoc.Report) (err error) {
	cw := &countingWriter{w: w}
	defer func(begin time.Time) {
		r.logger.Info("render report",
			"format", r.next.Extension(),
			"title", report.Title,
			"bytes", cw.n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, cw, report)
}

// Extension delegates to the wrapped renderer.
func (r *LoggingRenderer) Extension() string {
	return r.next.Extension()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
