package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/readdoc"
	"github.com/fwojciec/readdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("delegates to ExtractFn", func(t *testing.T) {
		t.Parallel()

		var gotMode readdoc.Mode
		e := &mock.Extractor{
			ExtractFn: func(_ context.Context, data []byte, mode readdoc.Mode) (*readdoc.Extraction, error) {
				gotMode = mode
				return &readdoc.Extraction{Data: data}, nil
			},
		}

		ext, err := e.Extract(context.Background(), []byte("x"), readdoc.Underlined)

		require.NoError(t, err)
		assert.Equal(t, []byte("x"), ext.Data)
		assert.Equal(t, readdoc.Underlined, gotMode)
	})

	t.Run("returns error from ExtractFn", func(t *testing.T) {
		t.Parallel()

		want := readdoc.Errorf(readdoc.EMALFORMED, "bad")
		e := &mock.Extractor{
			ExtractFn: func(context.Context, []byte, readdoc.Mode) (*readdoc.Extraction, error) {
				return nil, want
			},
		}

		_, err := e.Extract(context.Background(), nil, readdoc.Both)

		assert.Equal(t, want, err)
	})
}
