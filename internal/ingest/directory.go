package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FromPaths sniffs each path and returns one File per readable path, in order.
// Unreadable paths are logged and counted as failed. No MIME filtering is applied.
func (i *Ingestor) FromPaths(paths []string) ([]File, DirStats) {
	var files []File
	var stats DirStats
	for _, p := range paths {
		stats.Scanned++
		f, err := i.fromPath(p)
		if err != nil {
			i.logger.Warn("ingest.path.error", "path", p, "error", err)
			stats.Failed++
			continue
		}
		if IsPDF(f) {
			stats.Matched++
		}
		files = append(files, f)
	}
	return files, stats
}

// FromDirectory walks root and returns every PDF found, in walk order.
// Hidden entries are skipped when skipHidden is set; non-PDF files are skipped.
func (i *Ingestor) FromDirectory(ctx context.Context, root string, skipHidden bool) ([]File, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var files []File
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			i.logger.Warn("ingest.walk.error", "path", path, "error", walkErr)
			stats.Failed++
			return nil // continue walking
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			stats.Skipped++
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++

		f, err := i.fromPath(path)
		if err != nil {
			i.logger.Warn("ingest.path.error", "path", path, "error", err)
			stats.Failed++
			return nil
		}
		if !IsPDF(f) {
			i.logger.Debug("ingest.path.skipped", "path", path, "mime", f.MIMEType)
			stats.Skipped++
			return nil
		}
		stats.Matched++
		files = append(files, f)
		return nil
	})
	if err != nil {
		return files, stats, fmt.Errorf("walk: %w", err)
	}

	i.logger.Info("ingest.directory.ok",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return files, stats, nil
}

func (i *Ingestor) fromPath(path string) (File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, fmt.Errorf("abs path: %w", err)
	}
	mt, err := mimetype.DetectFile(abs)
	if err != nil {
		return File{}, fmt.Errorf("detect type: %w", err)
	}
	return File{
		Name:     filepath.Base(abs),
		MIMEType: baseMediaType(mt.String()),
		Source:   PathSource(abs),
	}, nil
}
