package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readdoc"
)

// Ensure LoggingProcessService implements readdoc.ProcessService.
var _ readdoc.ProcessService = (*LoggingProcessService)(nil)

// LoggingProcessService wraps a ProcessService with logging.
type LoggingProcessService struct {
	next   readdoc.ProcessService
	logger *slog.Logger
}

// NewLoggingProcessService creates a new LoggingProcessService.
func NewLoggingProcessService(next readdoc.ProcessService, logger *slog.Logger) *LoggingProcessService {
	return &LoggingProcessService{next: next, logger: logger}
}

// Upload delegates to the wrapped service and logs the operation.
func (s *LoggingProcessService) Upload(ctx context.Context, id *readdoc.Identity, filename string, data []byte) (key string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("upload",
			"user", userID(id),
			"filename", filename,
			"bytes", len(data),
			"key", key,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Upload(ctx, id, filename, data)
}

// Process delegates to the wrapped service and logs the operation.
func (s *LoggingProcessService) Process(ctx context.Context, id *readdoc.Identity, req *readdoc.ProcessRequest) (res *readdoc.ProcessResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"user", userID(id),
			"path", req.StoragePath,
			"mode", req.Mode,
		}
		if res != nil {
			attrs = append(attrs, "output", res.OutputFilename, "removed", res.Removed, "job", res.JobID)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Info("process", attrs...)
	}(time.Now())
	return s.next.Process(ctx, id, req)
}

func userID(id *readdoc.Identity) string {
	if id == nil {
		return ""
	}
	return id.UserID
}
