package ingest

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/contracts-extractor/constants"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
)

// File is one candidate document offered at intake.
type File struct {
	Name     string
	MIMEType string
	Source   entity.Source
}

// PathSource reads a document from the local filesystem.
type PathSource string

func (p PathSource) Open() (io.ReadCloser, error) {
	return os.Open(string(p))
}

// BytesSource serves a document already held in memory (uploads).
type BytesSource []byte

func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// DirStats summarizes a directory intake.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
	Failed  uint32
}

// Ingestor turns paths, directories and uploads into intake Files.
type Ingestor struct {
	maxBytes int64
	logger   *slog.Logger
}

// NewIngestor returns an Ingestor that refuses uploads larger than maxBytes
// (no limit when maxBytes <= 0).
func NewIngestor(maxBytes int64, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{maxBytes: maxBytes, logger: logger}
}

// IsPDF reports whether f passes the intake filter.
func IsPDF(f File) bool {
	return f.MIMEType == constants.MIMETypePDF
}

// FilterPDF keeps exactly the files declared or detected as application/pdf,
// in their original order. Everything else is dropped without error.
func FilterPDF(files []File) (kept []File, dropped int) {
	kept = make([]File, 0, len(files))
	for _, f := range files {
		if IsPDF(f) {
			kept = append(kept, f)
			continue
		}
		dropped++
	}
	return kept, dropped
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
