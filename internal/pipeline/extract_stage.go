package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/document"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
	"github.com/joseph-ayodele/contracts-extractor/internal/llm"
)

type ExtractStage struct {
	Extractor llm.FieldExtractor
	Logger    *slog.Logger
}

func NewExtractStage(fe llm.FieldExtractor, logger *slog.Logger) *ExtractStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStage{Extractor: fe, Logger: logger}
}

// Run sends one encoded document to the extraction service. Exactly one
// request is made; failures are returned as-is.
func (s *ExtractStage) Run(ctx context.Context, enc document.Encoded) (entity.ContractFields, error) {
	start := time.Now()
	req := llm.ExtractRequest{
		FileName: enc.Name,
		MIMEType: enc.MIMEType,
		Data:     enc.Data,
		Base64:   enc.Base64,
		Pages:    enc.Pages,
	}
	fields, raw, err := s.Extractor.ExtractFields(ctx, req)
	if err != nil {
		s.Logger.Error("processor.extract.failed", append([]any{"file", enc.Name, "err", err,
			"elapsed_ms", time.Since(start).Milliseconds()}, common.LogAttrs(ctx)...)...)
		return entity.ContractFields{}, err
	}
	s.Logger.Info("processor.extract.ok", append([]any{
		"file", enc.Name,
		"raw_bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	}, common.LogAttrs(ctx)...)...)
	return fields, nil
}
