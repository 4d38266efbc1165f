// Package document turns a raw document into the transfer form the
// extraction service accepts.
package document

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/joseph-ayodele/contracts-extractor/constants"
	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
)

func init() {
	// pdfcpu otherwise writes its config dir under the user's home on first use.
	api.DisableConfigDir()
}

// Encoded is a document ready to be sent for extraction.
type Encoded struct {
	Name     string
	MIMEType string
	Data     []byte
	Base64   string
	Size     int
	Pages    int // 0 when the page count could not be read
}

// DataURL renders the document as an RFC 2397 data URL.
func (e Encoded) DataURL() string {
	return "data:" + e.MIMEType + ";base64," + e.Base64
}

// Encoder reads a Source fully and base64-encodes it.
type Encoder struct {
	conf   *model.Configuration
	logger *slog.Logger
}

func NewEncoder(logger *slog.Logger) *Encoder {
	if logger == nil {
		logger = slog.Default()
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Encoder{conf: conf, logger: logger}
}

// Encode reads src and produces its transfer encoding. The page count is
// informational; a PDF that pdfcpu cannot parse is still sent as-is.
func (e *Encoder) Encode(ctx context.Context, name string, src entity.Source) (Encoded, error) {
	start := time.Now()
	if src == nil {
		return Encoded{}, common.NewAppError(common.CodeInput, "no document source for "+name, common.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return Encoded{}, err
	}

	rc, err := src.Open()
	if err != nil {
		return Encoded{}, common.NewAppError(common.CodeInput, "open "+name, err)
	}
	defer func(rc io.ReadCloser) {
		if err := rc.Close(); err != nil {
			e.logger.Warn("document.encode.close_error", "file", name, "error", err)
		}
	}(rc)

	data, err := io.ReadAll(rc)
	if err != nil {
		return Encoded{}, common.NewAppError(common.CodeInput, "read "+name, err)
	}
	if len(data) == 0 {
		return Encoded{}, common.NewAppError(common.CodeInput, fmt.Sprintf("document %q is empty", name), common.ErrInvalidInput)
	}

	pages := e.pageCount(name, data)
	out := Encoded{
		Name:     name,
		MIMEType: constants.MIMETypePDF,
		Data:     data,
		Base64:   base64.StdEncoding.EncodeToString(data),
		Size:     len(data),
		Pages:    pages,
	}
	e.logger.Debug("document.encode.ok",
		"file", name,
		"bytes", out.Size,
		"pages", pages,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

func (e *Encoder) pageCount(name string, data []byte) (n int) {
	defer func() {
		// pdfcpu can panic on badly broken input
		if r := recover(); r != nil {
			e.logger.Warn("document.page_count.panic", "file", name, "panic", fmt.Sprint(r))
			n = 0
		}
	}()
	n, err := api.PageCount(bytes.NewReader(data), e.conf)
	if err != nil {
		e.logger.Warn("document.page_count.error", "file", name, "error", err)
		return 0
	}
	return n
}
