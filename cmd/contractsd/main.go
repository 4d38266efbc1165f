package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/contracts-extractor/internal/async"
	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/document"
	"github.com/joseph-ayodele/contracts-extractor/internal/export"
	"github.com/joseph-ayodele/contracts-extractor/internal/ingest"
	"github.com/joseph-ayodele/contracts-extractor/internal/llm/provider"
	"github.com/joseph-ayodele/contracts-extractor/internal/pipeline"
	"github.com/joseph-ayodele/contracts-extractor/internal/server"
	"github.com/joseph-ayodele/contracts-extractor/internal/tracker"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file (defaults to $CONFIG_FILE)")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	// Setup structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if !cfg.HasAPIKey() {
		logger.Warn("API key not configured; every extraction will fail until one is set",
			"provider", cfg.LLM.Provider)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor, err := provider.NewExtractor(cfg.LLM, logger)
	if err != nil {
		logger.Error("failed to create extraction client", "error", err)
		os.Exit(1)
	}

	processor := pipeline.NewProcessor(logger,
		pipeline.NewEncodeStage(document.NewEncoder(logger), logger),
		pipeline.NewExtractStage(extractor, logger),
	)
	jobs := tracker.New(processor, logger)
	runner := async.NewRunner(jobs, logger)

	srv := server.NewServer(cfg.Server, server.Deps{
		Jobs:     jobs,
		Runner:   runner,
		Ingestor: ingest.NewIngestor(int64(cfg.Server.MaxUploadMB)<<20, logger),
		Exporter: export.NewService(logger),
	}, logger)

	logger.Info("contractsd listening", "addr", cfg.Server.HTTPAddr, "provider", cfg.LLM.Provider)
	go func() {
		if err := srv.Start(cfg.Server.HTTPAddr); err != nil {
			logger.Error("http serve error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown error", "error", err)
	}
	runner.Shutdown(shutdownCtx)
	logger.Info("contractsd stopped")
}
