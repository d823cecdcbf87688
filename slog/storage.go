package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readdoc"
)

// Ensure LoggingObjectStore implements readdoc.ObjectStore.
var _ readdoc.ObjectStore = (*LoggingObjectStore)(nil)

// LoggingObjectStore wraps an ObjectStore with debug logging.
type LoggingObjectStore struct {
	next   readdoc.ObjectStore
	logger *slog.Logger
}

// NewLoggingObjectStore creates a new LoggingObjectStore.
func NewLoggingObjectStore(next readdoc.ObjectStore, logger *slog.Logger) *LoggingObjectStore {
	return &LoggingObjectStore{next: next, logger: logger}
}

// Get delegates to the wrapped store and logs the operation.
func (s *LoggingObjectStore) Get(ctx context.Context, key string) (obj *readdoc.Object, err error) {
	defer func(begin time.Time) {
		size := 0
		if obj != nil {
			size = len(obj.Data)
		}
		s.logger.Debug("object get", "key", key, "bytes", size, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Get(ctx, key)
}

// Put delegates to the wrapped store and logs the operation.
func (s *LoggingObjectStore) Put(ctx context.Context, obj *readdoc.Object) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("object put", "key", obj.Key, "bytes", len(obj.Data), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Put(ctx, obj)
}

// Delete delegates to the wrapped store and logs the operation.
func (s *LoggingObjectStore) Delete(ctx context.Context, key string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("object delete", "key", key, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Delete(ctx, key)
}

// SignURL delegates to the wrapped store and logs the operation.
func (s *LoggingObjectStore) SignURL(ctx context.Context, key string, ttl time.Duration) (url string, expires time.Time, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("object sign", "key", key, "ttl", ttl, "expires", expires, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.SignURL(ctx, key, ttl)
}
