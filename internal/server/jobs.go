package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joseph-ayodele/contracts-extractor/internal/async"
	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
	"github.com/joseph-ayodele/contracts-extractor/internal/ingest"
)

// UploadField is the multipart field carrying the documents.
const UploadField = "files"

type JobsHandler struct {
	jobs     JobStore
	runner   async.Queue
	ingestor *ingest.Ingestor
	logger   *slog.Logger
}

func NewJobsHandler(jobs JobStore, runner async.Queue, ing *ingest.Ingestor, logger *slog.Logger) *JobsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobsHandler{jobs: jobs, runner: runner, ingestor: ing, logger: logger}
}

type UploadResponse struct {
	Accepted int              `json:"accepted"`
	Dropped  int              `json:"dropped"`
	Jobs     []entity.JobView `json:"jobs"`
}

type ListResponse struct {
	Jobs       []entity.JobView `json:"jobs"`
	HasPending bool             `json:"hasPending"`
	HasSuccess bool             `json:"hasSuccess"`
	Processing bool             `json:"processing"`
}

// Upload accepts PDFs and appends them as pending jobs. Parts that are not
// application/pdf are dropped and counted.
func (h *JobsHandler) Upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "multipart form expected: " + err.Error()})
	}
	files, err := h.ingestor.FromMultipart(form.File[UploadField])
	if err != nil {
		h.logger.Warn("server.upload.error", "request_id", common.RequestIDFromContext(c.Request().Context()), "error", err)
		return errorJSON(c, err)
	}
	pdfs, dropped := ingest.FilterPDF(files)
	accepted := h.jobs.Enqueue(pdfs)

	h.logger.Info("server.upload.ok",
		"request_id", common.RequestIDFromContext(c.Request().Context()),
		"accepted", accepted,
		"dropped", dropped,
	)
	return c.JSON(http.StatusOK, UploadResponse{
		Accepted: accepted,
		Dropped:  dropped,
		Jobs:     h.jobs.Snapshot(),
	})
}

// List returns the job list and the flags a UI needs to enable its actions.
func (h *JobsHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, ListResponse{
		Jobs:       h.jobs.Snapshot(),
		HasPending: h.jobs.HasPending(),
		HasSuccess: h.jobs.HasSuccess(),
		Processing: h.jobs.Processing(),
	})
}

// Process schedules a background run over the pending jobs.
func (h *JobsHandler) Process(c echo.Context) error {
	if !h.jobs.HasPending() {
		return c.JSON(http.StatusConflict, map[string]string{"error": "no pending jobs"})
	}
	queued, err := h.runner.Trigger(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusAccepted, map[string]bool{"queued": queued})
}

// Clear empties the list. The caller must confirm with ?confirm=true.
func (h *JobsHandler) Clear(c echo.Context) error {
	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "confirm=true is required to clear the list"})
	}
	if err := h.jobs.Clear(); err != nil {
		return errorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
