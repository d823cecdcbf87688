// Package slog provides logging decorators for readdoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readdoc"
)

// Ensure LoggingExtractor implements readdoc.Extractor.
var _ readdoc.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   readdoc.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next readdoc.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, data []byte, mode readdoc.Mode) (ext *readdoc.Extraction, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"mode", mode,
			"bytes", len(data),
		}
		if ext != nil {
			attrs = append(attrs,
				"hash", ext.InputHash,
				"before", ext.Before,
				"after", ext.After,
				"removed", ext.Removed,
				"collapsed", ext.Collapsed,
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(ctx, data, mode)
}
