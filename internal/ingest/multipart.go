package ingest

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
)

const octetStream = "application/octet-stream"

// FromMultipart reads uploaded parts into memory. The declared Content-Type
// wins; it is sniffed only when missing or application/octet-stream.
// No MIME filtering is applied here.
func (i *Ingestor) FromMultipart(headers []*multipart.FileHeader) ([]File, error) {
	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		if i.maxBytes > 0 && fh.Size > i.maxBytes {
			return nil, common.NewAppError(common.CodeInput,
				fmt.Sprintf("file %q exceeds %d bytes", fh.Filename, i.maxBytes), common.ErrInvalidInput)
		}
		data, err := readPart(fh)
		if err != nil {
			return nil, common.NewAppError(common.CodeInput, "read upload "+fh.Filename, err)
		}

		mt := baseMediaType(fh.Header.Get("Content-Type"))
		if mt == "" || mt == octetStream {
			mt = baseMediaType(mimetype.Detect(data).String())
		}
		files = append(files, File{
			Name:     fh.Filename,
			MIMEType: mt,
			Source:   BytesSource(data),
		})
		i.logger.Debug("ingest.upload", "file", fh.Filename, "mime", mt, "bytes", len(data))
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// baseMediaType strips parameters ("; charset=...") and lowercases.
func baseMediaType(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(v); err == nil {
		return mt
	}
	if idx := strings.IndexByte(v, ';'); idx >= 0 {
		v = v[:idx]
	}
	return strings.ToLower(strings.TrimSpace(v))
}
