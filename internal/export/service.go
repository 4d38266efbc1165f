package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/contracts-extractor/constants"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
)

const minColumnWidth = 20

// Row is one flattened success job, aligned with Columns.
type Row []string

// Report is a rendered workbook.
type Report struct {
	FileName string
	MIMEType string
	Data     []byte
	Rows     int
}

// BuildRows keeps the success jobs, in list order, and flattens each into a Row.
func BuildRows(jobs []entity.Job) []Row {
	var rows []Row
	for _, j := range jobs {
		done, ok := j.(entity.CompletedJob)
		if !ok {
			continue
		}
		row := make(Row, len(Columns))
		for i, c := range Columns {
			row[i] = c.Value(done.Name, done.Data)
		}
		rows = append(rows, row)
	}
	return rows
}

// RenderXLSX writes the header row and rows to a single-sheet workbook.
func RenderXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := constants.ReportSheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range Headers() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header %q: %w", h, err)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, columnWidth(h)); err != nil {
			return nil, fmt.Errorf("column width %s: %w", col, err)
		}
	}

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			// SetCellStr keeps values such as "001" or "3.500,00" as text.
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidth(header string) float64 {
	return float64(max(minColumnWidth, utf8.RuneCountInString(header)+5))
}

// Service produces the spreadsheet report from a job list.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Export renders the report. ok is false, with no bytes, when no job has succeeded.
func (s *Service) Export(jobs []entity.Job) (Report, bool, error) {
	start := time.Now()
	rows := BuildRows(jobs)
	if len(rows) == 0 {
		s.logger.Info("export.xlsx.skipped", "jobs", len(jobs))
		return Report{}, false, nil
	}
	data, err := RenderXLSX(rows)
	if err != nil {
		s.logger.Error("export.xlsx.error", "error", err)
		return Report{}, false, err
	}
	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"bytes", len(data),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Report{
		FileName: constants.ReportFileName,
		MIMEType: constants.ReportMIMEType,
		Data:     data,
		Rows:     len(rows),
	}, true, nil
}

// WriteFile exports into dir under the fixed report name, replacing any
// previous report. It does nothing and reports false when no job has succeeded.
func (s *Service) WriteFile(dir string, jobs []entity.Job) (string, bool, error) {
	rep, ok, err := s.Export(jobs)
	if err != nil || !ok {
		return "", ok, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, rep.FileName)
	tmp, err := os.CreateTemp(dir, ".report-*.xlsx")
	if err != nil {
		return "", false, fmt.Errorf("create temp report: %w", err)
	}
	if _, err := tmp.Write(rep.Data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", false, fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", false, fmt.Errorf("close report: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		s.logger.Warn("export.file.chmod_error", "path", tmp.Name(), "error", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", false, fmt.Errorf("rename report: %w", err)
	}
	s.logger.Info("export.file.ok", "path", path, "rows", rep.Rows)
	return path, true, nil
}
