package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pbidoc"
)

// Ensure LoggingDescriptorLoader implements pbidoc.DescriptorLoader.
var _ pbidoc.DescriptorLoader = (*LoggingDescriptorLoader)(nil)

// LoggingDescriptorLoader wraps a DescriptorLoader with logging.
// Load failures are logged at Warn since the loader degrades instead of failing.
type LoggingDescriptorLoader struct {
	next   pbidoc.DescriptorLoader
	logger *slog.Logger
}

// NewLoggingDescriptorLoader creates a new LoggingDescriptorLoader.
func NewLoggingDescriptorLoader(next pbidoc.DescriptorLoader, logger *slog.Logger) *LoggingDescriptorLoader {
	return &LoggingDescriptorLoader{next: next, logger: logger}
}

// LoadDescriptor delegates to the wrapped loader and logs the operation.
func (l *LoggingDescriptorLoader) LoadDescriptor(path string) (d pbidoc.Descriptor, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		l.logger.Log(context.Background(), level, "load descriptor",
			"path", path,
			"bytes", len(d),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.LoadDescriptor(path)
}
