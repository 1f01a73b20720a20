package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/conveydocs/searchreport/internal/config"
	"github.com/conveydocs/searchreport/internal/extract"
	"github.com/conveydocs/searchreport/internal/pipeline"
	"github.com/conveydocs/searchreport/internal/rules"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures the process logger from the configured level.
func setupLogging(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadSchema returns the configured rule schema, or the built-in default
// when no rule file was given. Schema errors are fatal before any
// document is touched.
func loadSchema(cfg *config.Config) (*rules.Schema, error) {
	if cfg.RulesPath == "" {
		return rules.Default(), nil
	}
	return rules.Load(cfg.RulesPath)
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if version != "dev" {
		cfg.Version = version
	}

	logger := setupLogging(cfg)
	if cfg.IsDebug() {
		logger.Debug("starting", "config", cfg.String())
	}

	schema, err := loadSchema(cfg)
	if err != nil {
		logger.Error("failed to load rule schema", "error", err)
		os.Exit(1)
	}

	extractor := extract.NewExtractor(extract.Config{
		Pdftoppm:      cfg.Pdftoppm,
		Tesseract:     cfg.Tesseract,
		TesseractLang: cfg.TesseractLang,
		DPI:           cfg.DPI,
		MaxPages:      cfg.MaxPages,
		OCRTimeout:    cfg.OCRTimeout,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run := pipeline.New(cfg, schema, extractor, logger)
	if err := run.Run(ctx); err != nil {
		if errors.Is(err, pipeline.ErrNoArchive) {
			logger.Info("no input archive found, nothing to do", "input", cfg.InputDir)
			return
		}
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Search Reply Report Generator\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
