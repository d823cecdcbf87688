package mock

import (
	"context"
	"time"

	"github.com/fwojciec/readdoc"
)

var _ readdoc.ObjectStore = (*ObjectStore)(nil)

// ObjectStore is a mock implementation of readdoc.ObjectStore.
type ObjectStore struct {
	GetFn     func(ctx context.Context, key string) (*readdoc.Object, error)
	PutFn     func(ctx context.Context, obj *readdoc.Object) error
	DeleteFn  func(ctx context.Context, key string) error
	SignURLFn func(ctx context.Context, key string, ttl time.Duration) (string, time.Time, error)
}

func (s *ObjectStore) Get(ctx context.Context, key string) (*readdoc.Object, error) {
	return s.GetFn(ctx, key)
}

func (s *ObjectStore) Put(ctx context.Context, obj *readdoc.Object) error {
	return s.PutFn(ctx, obj)
}

func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	return s.DeleteFn(ctx, key)
}

func (s *ObjectStore) SignURL(ctx context.Context, key string, ttl time.Duration) (string, time.Time, error) {
	return s.SignURLFn(ctx, key, ttl)
}
