// Package extract orchestrates extractions around the readdoc core. It
// decodes and encodes documents, runs batches of local files concurrently,
// and serves requests against object storage.
package extract

import (
	"context"

	"github.com/fwojciec/readdoc"
)

// Ensure Extractor implements readdoc.Extractor at compile time.
var _ readdoc.Extractor = (*Extractor)(nil)

// Extractor runs the readdoc filter over serialized documents.
type Extractor struct {
	Codec readdoc.DocumentCodec
}

// NewExtractor creates a new Extractor using codec for I/O.
func NewExtractor(codec readdoc.DocumentCodec) *Extractor {
	return &Extractor{Codec: codec}
}

// Extract decodes data, filters it under mode and encodes the result.
// Cancellation is checked before decoding and again before encoding; the
// filter itself runs to completion once started.
func (e *Extractor) Extract(ctx context.Context, data []byte, mode readdoc.Mode) (*readdoc.Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !mode.Valid() {
		return nil, readdoc.Errorf(readdoc.EINVALID, "invalid mode %q", mode)
	}

	doc, err := e.Codec.Decode(data)
	if err != nil {
		return nil, err
	}

	res := readdoc.Extract(doc, mode)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := e.Codec.Encode(doc)
	if err != nil {
		return nil, err
	}

	return &readdoc.Extraction{
		ExtractResult: res,
		Data:          out,
		InputHash:     ComputeHash(data),
	}, nil
}
