package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/document"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
	"github.com/joseph-ayodele/contracts-extractor/internal/export"
	"github.com/joseph-ayodele/contracts-extractor/internal/ingest"
	"github.com/joseph-ayodele/contracts-extractor/internal/llm/provider"
	"github.com/joseph-ayodele/contracts-extractor/internal/pipeline"
	"github.com/joseph-ayodele/contracts-extractor/internal/tracker"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir        = flag.String("dir", "", "directory to scan for PDF contracts")
		out        = flag.String("out", "", "output directory for the XLSX report (defaults to $EXPORT_DIR or .)")
		configPath = flag.String("config", "", "optional YAML config file (defaults to $CONFIG_FILE)")
		skipHidden = flag.Bool("skip-hidden", true, "skip hidden files and directories under -dir")
	)
	flag.Usage = func() {
		printError("usage: contract-batch [-dir DIR] [-out DIR] [file.pdf ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *dir == "" && flag.NArg() == 0 {
		printError("Error: give -dir and/or at least one PDF path\n")
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *out != "" {
		cfg.Export.Dir = *out
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if !cfg.HasAPIKey() {
		logger.Warn("API key not configured; every extraction will fail", "provider", cfg.LLM.Provider)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Intake
	ingestor := ingest.NewIngestor(0, logger)
	var files []ingest.File
	if *dir != "" {
		found, stats, err := ingestor.FromDirectory(ctx, *dir, *skipHidden)
		if err != nil {
			logger.Error("failed to scan directory", "dir", *dir, "error", err)
			os.Exit(1)
		}
		logger.Info("directory scanned",
			"dir", *dir,
			"scanned", stats.Scanned,
			"matched", stats.Matched,
			"skipped", stats.Skipped,
			"failed", stats.Failed)
		files = append(files, found...)
	}
	if flag.NArg() > 0 {
		given, stats := ingestor.FromPaths(flag.Args())
		logger.Info("paths read", "given", stats.Scanned, "failed", stats.Failed)
		files = append(files, given...)
	}
	pdfs, dropped := ingest.FilterPDF(files)
	if dropped > 0 {
		logger.Info("non-PDF files dropped", "dropped", dropped)
	}

	// Wire processing
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
	jobs.Enqueue(pdfs)

	sum, err := jobs.ProcessPending(ctx)
	if err != nil {
		logger.Error("processing failed", "error", err)
		os.Exit(1)
	}

	// Export
	exporter := export.NewService(logger)
	path, wrote, err := exporter.WriteFile(cfg.Export.Dir, jobs.Jobs())
	if err != nil {
		logger.Error("failed to write report", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Batch processing complete!\n")
	for _, v := range jobs.Snapshot() {
		fmt.Println(statusLine(v))
	}
	fmt.Printf("- Files accepted: %d (dropped: %d)\n", len(pdfs), dropped)
	fmt.Printf("- Processed: %d\n", sum.Processed)
	fmt.Printf("- Succeeded: %d\n", sum.Succeeded)
	fmt.Printf("- Failures: %d\n", sum.Failed)
	if wrote {
		fmt.Printf("- Output: %s\n", path)
	} else {
		fmt.Printf("- Output: none (no successful extractions)\n")
	}
}

func statusLine(v entity.JobView) string {
	line := fmt.Sprintf("  [%d] %-10s %s", v.Index, v.Status, v.FileName)
	if v.Error != "" {
		line += ": " + v.Error
	}
	return line
}
