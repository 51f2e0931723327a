// Package slog provides logging decorators for pbidoc services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pbidoc"
)

// Ensure LoggingArchive implements pbidoc.Archive.
var _ pbidoc.Archive = (*LoggingArchive)(nil)

// LoggingArchive wraps an Archive with logging.
type LoggingArchive struct {
	next   pbidoc.Archive
	logger *slog.Logger
}

// NewLoggingArchive creates a new LoggingArchive.
func NewLoggingArchive(next pbidoc.Archive, logger *slog.Logger) *LoggingArchive {
	return &LoggingArchive{next: next, logger: logger}
}

// FindPackages delegates to the wrapped archive and logs the operation.
func (a *LoggingArchive) FindPackages(dir string) (paths []string, err error) {
	defer func(begin time.Time) {
		a.logger.Debug("find packages",
			"dir", dir,
			"count", len(paths),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.FindPackages(dir)
}

// Normalize delegates to the wrapped archive and logs the operation.
func (a *LoggingArchive) Normalize(path string) (normalized string, err error) {
	defer func(begin time.Time) {
		a.logger.Debug("normalize package",
			"path", path,
			"normalized", normalized,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Normalize(path)
}

// Extract delegates to the wrapped archive and logs the operation.
func (a *LoggingArchive) Extract(archivePath, targetDir string, entries []string) (err error) {
	defer func(begin time.Time) {
		a.logger.Info("extract entries",
			"archive", archivePath,
			"target", targetDir,
			"entries", entries,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Extract(archivePath, targetDir, entries)
}

// Checksum delegates to the wrapped archive and logs the operation.
func (a *LoggingArchive) Checksum(path string) (sum string, err error) {
	defer func(begin time.Time) {
		a.logger.Debug("checksum",
			"path", path,
			"checksum", sum,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Checksum(path)
}

// Parts delegates to the wrapped archive and logs the operation.
func (a *LoggingArchive) Parts(archivePath string) (parts []pbidoc.Part, err error) {
	defer func(begin time.Time) {
		a.logger.Debug("list parts",
			"archive", archivePath,
			"count", len(parts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Parts(archivePath)
}
