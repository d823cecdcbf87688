package mock

import "github.com/fwojciec/readdoc"

var _ readdoc.DocumentCodec = (*DocumentCodec)(nil)

// DocumentCodec is a mock implementation of readdoc.DocumentCodec.
type DocumentCodec struct {
	DecodeFn func(data []byte) (*readdoc.Document, error)
	EncodeFn func(doc *readdoc.Document) ([]byte, error)
}

func (c *DocumentCodec) Decode(data []byte) (*readdoc.Document, error) {
	return c.DecodeFn(data)
}

func (c *DocumentCodec) Encode(doc *readdoc.Document) ([]byte, error) {
	return c.EncodeFn(doc)
}
