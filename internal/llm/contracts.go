package llm

import (
	"context"

	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
)

// ExtractRequest carries one encoded document to the extraction service.
type ExtractRequest struct {
	FileName string
	MIMEType string
	Data     []byte
	Base64   string
	Pages    int
}

// DataURL renders the document as an RFC 2397 data URL.
func (r ExtractRequest) DataURL() string {
	return "data:" + r.MIMEType + ";base64," + r.Base64
}

// FieldExtractor is the interface our pipeline depends on.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (entity.ContractFields, []byte /*rawJSON*/, error)
}
