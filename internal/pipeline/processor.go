package pipeline

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
)

// Processor coordinates encoding then extraction for one job.
type Processor struct {
	Logger  *slog.Logger
	Encode  *EncodeStage
	Extract *ExtractStage
}

func NewProcessor(logger *slog.Logger, encode *EncodeStage, extract *ExtractStage) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Encode: encode, Extract: extract}
}

// Process encodes the document behind src and extracts its fields.
func (p *Processor) Process(ctx context.Context, name string, src entity.Source) (entity.ContractFields, error) {
	enc, err := p.Encode.Run(ctx, name, src)
	if err != nil {
		return entity.ContractFields{}, err
	}
	return p.Extract.Run(ctx, enc)
}
