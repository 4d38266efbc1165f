package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/document"
	"github.com/joseph-ayodele/contracts-extractor/internal/ingest"
	"github.com/joseph-ayodele/contracts-extractor/internal/llm"
	"github.com/joseph-ayodele/contracts-extractor/internal/llm/provider"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: llm <file.pdf> [times]")
		os.Exit(2)
	}
	path := os.Args[1]
	times := 1
	if len(os.Args) >= 3 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil && n > 0 {
			times = n
		}
	}

	_ = godotenv.Load()
	cfg, err := common.LoadConfig("")
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if !cfg.HasAPIKey() {
		logger.Error("API key is required", "provider", cfg.LLM.Provider)
		os.Exit(2)
	}

	extractor, err := provider.NewExtractor(cfg.LLM, logger)
	if err != nil {
		logger.Error("create extraction client", "error", err)
		os.Exit(1)
	}

	base := filepath.Base(path)
	enc, err := document.NewEncoder(logger).Encode(context.Background(), base, ingest.PathSource(path))
	if err != nil {
		logger.Error("encode document", "file", path, "error", err)
		os.Exit(1)
	}
	req := llm.ExtractRequest{
		FileName: enc.Name,
		MIMEType: enc.MIMEType,
		Data:     enc.Data,
		Base64:   enc.Base64,
		Pages:    enc.Pages,
	}

	// --- Loop N times on the SAME document
	for i := 1; i <= times; i++ {
		runCtx, cancelRun := context.WithTimeout(context.Background(), cfg.LLM.Timeout)
		start := time.Now()
		logger.Info("llm.run.start", "iter", i, "file", base, "pages", enc.Pages)

		_, raw, err := extractor.ExtractFields(runCtx, req)
		cancelRun()

		if err != nil {
			logger.Error("llm.run.error", "iter", i, "err", err, "raw", string(raw))
		} else {
			logger.Info("llm.run.ok", "iter", i, "elapsed_ms", time.Since(start).Milliseconds(), "json", string(raw))
		}

		if i < times {
			time.Sleep(750 * time.Millisecond)
		}
	}

	logger.Info("done", "file", base, "times", times)
}
