package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/accent-lens/internal/analysis"
	"github.com/nguyentantai21042004/accent-lens/internal/config"
	"github.com/nguyentantai21042004/accent-lens/internal/logger"
	"github.com/nguyentantai21042004/accent-lens/internal/normalizer"
	"github.com/nguyentantai21042004/accent-lens/internal/processor"
	"github.com/nguyentantai21042004/accent-lens/internal/report"
	"github.com/nguyentantai21042004/accent-lens/internal/server"
	"github.com/nguyentantai21042004/accent-lens/internal/watcher"
	"github.com/nguyentantai21042004/accent-lens/pkg/executor"
)

func main() {
	ctx := context.Background()

	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Accent Lens - Audio Accent & Content Analyzer")
	log.Info(ctx, "========================================")

	// The inference API key is the one required secret; without it there is
	// nothing this service can do.
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Error(ctx, "GEMINI_API_KEY not set. Provide it via environment or .env file")
		os.Exit(1)
	}

	// Clear leftovers from a previous process before accepting new runs
	if err := resetScratchDir(cfg); err != nil {
		log.Error(ctx, "Failed to prepare scratch dir: %v", err)
		os.Exit(1)
	}
	log.Info(ctx, "Scratch dir ready: %s", cfg.Paths.Temp)

	exec := executor.New()
	for _, tool := range []string{cfg.Tools.FFmpegBinary, cfg.Tools.YtDlpBinary} {
		if err := exec.Available(tool); err != nil {
			log.Warn(ctx, "%v - normalization will fail until it is installed", err)
		}
	}

	norm := normalizer.New(cfg, exec, log)
	client := analysis.New(apiKey, cfg.Gemini.Model, log)
	proc := processor.New(cfg, norm, client, log)
	srv := server.New(cfg, proc, log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 2)

	if cfg.Watch.Enabled {
		w, err := startWatcher(ctx, cfg, proc, log, errChan)
		if err != nil {
			log.Error(ctx, "Failed to start drop-folder watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()
	}

	go func() {
		log.Info(ctx, "HTTP server listening on %s", cfg.Server.ListenAddr())
		if err := srv.Listen(); err != nil {
			errChan <- err
		}
	}()

	log.Info(ctx, "Model: %s", cfg.Gemini.Model)
	log.Info(ctx, "Canonical audio: %d channel(s) at %dHz", cfg.Audio.Channels, cfg.Audio.SampleRate)
	log.Info(ctx, "Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Warn(ctx, "HTTP shutdown: %v", err)
	}
	log.Info(ctx, "Accent Lens stopped")
}

// resetScratchDir removes temp files left behind by a previous process and
// recreates the scratch dir
func resetScratchDir(cfg *config.Config) error {
	if err := os.RemoveAll(cfg.Paths.Temp); err != nil {
		return fmt.Errorf("clear scratch dir %s: %w", cfg.Paths.Temp, err)
	}
	if err := os.MkdirAll(cfg.Paths.Temp, 0755); err != nil {
		return fmt.Errorf("create scratch dir %s: %w", cfg.Paths.Temp, err)
	}
	return nil
}

// startWatcher wires the drop-folder mode: every media file dropped into the
// input dir runs through the same pipeline, with the result written as a
// docx report into the output dir.
func startWatcher(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger, errChan chan<- error) (watcher.Watcher, error) {
	for _, dir := range []string{cfg.Watch.Input, cfg.Watch.Output} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	handler := func(ctx context.Context, filePath string) error {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("read dropped file: %w", err)
		}

		run := proc.Process(ctx, processor.Source{
			Filename: filepath.Base(filePath),
			Data:     data,
		})
		if run.Status.Failed() {
			return fmt.Errorf("%s: %s", run.Status, run.Error)
		}

		name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		reportPath := filepath.Join(cfg.Watch.Output, name+".docx")
		if err := report.Write(run, reportPath); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		log.Info(ctx, "[DONE] %s -> %s (accent=%s confidence=%s)",
			filePath, reportPath, run.Accent, run.Confidence)
		return nil
	}

	w, err := watcher.New(cfg.Watch.Input, handler, log, cfg.Watch.MaxConcurrent)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Drop-folder mode enabled. Monitoring: %s", cfg.Watch.Input)
	return w, nil
}
