package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/joseph-ayodele/contracts-extractor/internal/export"
)

type ExportHandler struct {
	jobs   JobStore
	svc    *export.Service
	logger *slog.Logger
}

func NewExportHandler(jobs JobStore, svc *export.Service, logger *slog.Logger) *ExportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportHandler{jobs: jobs, svc: svc, logger: logger}
}

// Download renders the report for the current list. 204 when no job succeeded.
func (h *ExportHandler) Download(c echo.Context) error {
	rep, ok, err := h.svc.Export(h.jobs.Jobs())
	if err != nil {
		h.logger.Error("server.export.error", "error", err)
		return errorJSON(c, err)
	}
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+rep.FileName+`"`)
	c.Response().Header().Set("X-Report-Rows", strconv.Itoa(rep.Rows))
	return c.Blob(http.StatusOK, rep.MIMEType, rep.Data)
}
