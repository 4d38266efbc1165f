package document

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/contracts-extractor/constants"
	"github.com/joseph-ayodele/contracts-extractor/internal/common"
)

type memSource []byte

func (m memSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m)), nil
}

type brokenSource struct{ err error }

func (b brokenSource) Open() (io.ReadCloser, error) { return nil, b.err }

func newTestEncoder() *Encoder {
	return NewEncoder(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEncoder_Encode(t *testing.T) {
	t.Run("Success case - unparsable PDF is still encoded", func(t *testing.T) {
		enc := newTestEncoder()

		out, err := enc.Encode(context.Background(), "a.pdf", memSource("%PDF-1.4"))

		require.NoError(t, err)
		assert.Equal(t, "a.pdf", out.Name)
		assert.Equal(t, constants.MIMETypePDF, out.MIMEType)
		assert.Equal(t, "JVBERi0xLjQ=", out.Base64)
		assert.Equal(t, 8, out.Size)
		assert.Equal(t, 0, out.Pages)
		assert.Equal(t, "data:application/pdf;base64,JVBERi0xLjQ=", out.DataURL())
	})

	t.Run("Error case - empty document", func(t *testing.T) {
		enc := newTestEncoder()

		_, err := enc.Encode(context.Background(), "empty.pdf", memSource(nil))

		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
		assert.Equal(t, common.CodeInput, common.CodeOf(err))
	})

	t.Run("Error case - nil source", func(t *testing.T) {
		enc := newTestEncoder()

		_, err := enc.Encode(context.Background(), "x.pdf", nil)

		assert.Equal(t, common.CodeInput, common.CodeOf(err))
	})

	t.Run("Error case - source cannot be opened", func(t *testing.T) {
		enc := newTestEncoder()
		openErr := errors.New("permission denied")

		_, err := enc.Encode(context.Background(), "locked.pdf", brokenSource{err: openErr})

		require.Error(t, err)
		assert.ErrorIs(t, err, openErr)
		assert.Equal(t, common.CodeInput, common.CodeOf(err))
	})

	t.Run("Error case - cancelled context", func(t *testing.T) {
		enc := newTestEncoder()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := enc.Encode(ctx, "a.pdf", memSource("%PDF-1.4"))

		assert.ErrorIs(t, err, context.Canceled)
	})
}
