package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/document"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
	"github.com/joseph-ayodele/contracts-extractor/internal/llm"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ExtractFields(ctx context.Context, req llm.ExtractRequest) (entity.ContractFields, []byte, error) {
	args := m.Called(ctx, req)
	raw, _ := args.Get(1).([]byte)
	return args.Get(0).(entity.ContractFields), raw, args.Error(2)
}

type memSource []byte

func (m memSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m)), nil
}

func newTestProcessor(fe llm.FieldExtractor) *Processor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProcessor(logger,
		NewEncodeStage(document.NewEncoder(logger), logger),
		NewExtractStage(fe, logger),
	)
}

func TestProcessor_Process(t *testing.T) {
	t.Run("Success case - encoded document reaches the extractor", func(t *testing.T) {
		fe := new(MockExtractor)
		want := entity.ContractFields{Buyer: entity.Buyer{Name: "Ana"}}
		fe.On("ExtractFields", mock.Anything, mock.MatchedBy(func(req llm.ExtractRequest) bool {
			return req.FileName == "a.pdf" &&
				req.MIMEType == "application/pdf" &&
				req.Base64 == "JVBERi0xLjQ=" &&
				string(req.Data) == "%PDF-1.4"
		})).Return(want, []byte(`{}`), nil).Once()

		got, err := newTestProcessor(fe).Process(context.Background(), "a.pdf", memSource("%PDF-1.4"))

		require.NoError(t, err)
		assert.Equal(t, want, got)
		fe.AssertExpectations(t)
	})

	t.Run("Error case - extractor failure is returned unchanged", func(t *testing.T) {
		fe := new(MockExtractor)
		boom := common.TransportError(errors.New("Network timeout"))
		fe.On("ExtractFields", mock.Anything, mock.Anything).Return(entity.ContractFields{}, nil, boom).Once()

		_, err := newTestProcessor(fe).Process(context.Background(), "a.pdf", memSource("%PDF-1.4"))

		assert.Same(t, boom, err)
		fe.AssertNumberOfCalls(t, "ExtractFields", 1)
	})

	t.Run("Error case - empty document never reaches the extractor", func(t *testing.T) {
		fe := new(MockExtractor)

		_, err := newTestProcessor(fe).Process(context.Background(), "empty.pdf", memSource(nil))

		assert.Equal(t, common.CodeInput, common.CodeOf(err))
		fe.AssertNotCalled(t, "ExtractFields", mock.Anything, mock.Anything)
	})
}

func TestProcessor_LogsCarryContextIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	fe := new(MockExtractor)
	fe.On("ExtractFields", mock.Anything, mock.Anything).Return(entity.ContractFields{}, []byte(`{}`), nil).Once()
	p := NewProcessor(logger,
		NewEncodeStage(document.NewEncoder(slog.New(slog.NewTextHandler(io.Discard, nil))), logger),
		NewExtractStage(fe, logger),
	)
	ctx := common.WithRequestID(common.WithRunID(context.Background(), "run-9"), "req-9")

	_, err := p.Process(ctx, "a.pdf", memSource("%PDF-1.4"))

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"run_id":"run-9"`)
		assert.Contains(t, line, `"request_id":"req-9"`)
	}
}
