package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/document"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
)

// Encoder is what the encode stage needs from the document package.
type Encoder interface {
	Encode(ctx context.Context, name string, src entity.Source) (document.Encoded, error)
}

type EncodeStage struct {
	Encoder Encoder
	Logger  *slog.Logger
}

func NewEncodeStage(enc Encoder, logger *slog.Logger) *EncodeStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &EncodeStage{Encoder: enc, Logger: logger}
}

// Run reads and encodes the document.
func (s *EncodeStage) Run(ctx context.Context, name string, src entity.Source) (document.Encoded, error) {
	start := time.Now()
	enc, err := s.Encoder.Encode(ctx, name, src)
	if err != nil {
		s.Logger.Error("processor.encode.failed", append([]any{"file", name, "err", err,
			"elapsed_ms", time.Since(start).Milliseconds()}, common.LogAttrs(ctx)...)...)
		return document.Encoded{}, err
	}
	s.Logger.Info("processor.encode.ok", append([]any{
		"file", name,
		"bytes", enc.Size,
		"pages", enc.Pages,
		"elapsed_ms", time.Since(start).Milliseconds(),
	}, common.LogAttrs(ctx)...)...)
	return enc, nil
}
