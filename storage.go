package readdoc

import (
	"context"
	"time"
)

// Object is a stored blob with its metadata.
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// ObjectStore is a flat key/value blob store with signed download links.
type ObjectStore interface {
	// Get retrieves an object. Returns ENOTFOUND if key does not exist.
	Get(ctx context.Context, key string) (*Object, error)

	// Put creates or replaces an object.
	Put(ctx context.Context, obj *Object) error

	// Delete removes an object. Returns ENOTFOUND if key does not exist.
	Delete(ctx context.Context, key string) error

	// SignURL returns a download URL for key that stops working after ttl.
	SignURL(ctx context.Context, key string, ttl time.Duration) (url string, expires time.Time, err error)
}
