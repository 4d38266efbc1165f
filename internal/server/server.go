// Package server exposes the job list over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/joseph-ayodele/contracts-extractor/internal/async"
	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
	"github.com/joseph-ayodele/contracts-extractor/internal/export"
	"github.com/joseph-ayodele/contracts-extractor/internal/ingest"
)

// JobStore is the part of the tracker the HTTP layer uses.
type JobStore interface {
	Enqueue(files []ingest.File) int
	Snapshot() []entity.JobView
	Jobs() []entity.Job
	HasPending() bool
	HasSuccess() bool
	Processing() bool
	Clear() error
}

type Server struct {
	e      *echo.Echo
	logger *slog.Logger
}

// Deps are the collaborators the handlers need.
type Deps struct {
	Jobs     JobStore
	Runner   async.Queue
	Ingestor *ingest.Ingestor
	Exporter *export.Service
}

func NewServer(cfg common.ServerConfig, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestContext)
	e.Use(middleware.Logger())
	if cfg.MaxUploadMB > 0 {
		e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.MaxUploadMB)))
	}

	jobs := NewJobsHandler(deps.Jobs, deps.Runner, deps.Ingestor, logger)
	exp := NewExportHandler(deps.Jobs, deps.Exporter, logger)

	e.GET("/health", Health)
	api := e.Group("/api")
	api.POST("/jobs", jobs.Upload)
	api.GET("/jobs", jobs.List)
	api.POST("/jobs/process", jobs.Process)
	api.DELETE("/jobs", jobs.Clear)
	api.GET("/export", exp.Download)

	return &Server{e: e, logger: logger}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start serves on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("server.http.listen", "addr", addr)
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// requestContext copies the echo request id into the request context so
// downstream logs can pick it up.
func requestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		if rid != "" {
			req := c.Request()
			c.SetRequest(req.WithContext(common.WithRequestID(req.Context(), rid)))
		}
		return next(c)
	}
}

// Health reports liveness.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
