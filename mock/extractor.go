package mock

import (
	"context"

	"github.com/fwojciec/readdoc"
)

var _ readdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of readdoc.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, data []byte, mode readdoc.Mode) (*readdoc.Extraction, error)
}

func (e *Extractor) Extract(ctx context.Context, data []byte, mode readdoc.Mode) (*readdoc.Extraction, error) {
	return e.ExtractFn(ctx, data, mode)
}
