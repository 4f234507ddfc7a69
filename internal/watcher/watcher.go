package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/accent-lens/internal/logger"
	"github.com/nguyentantai21042004/accent-lens/internal/normalizer"
)

type implWatcher struct {
	inputDir  string
	handler   EventHandler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// Start monitors the drop folder until the context is cancelled. Each new
// media file is handed to the handler; concurrent handling is bounded by the
// semaphore while each individual run stays strictly linear.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Drop-folder watcher started (max concurrent: %d). Monitoring: %s", cap(w.semaphore), w.inputDir)

	for {
		select {
		case <-ctx.Done():
			return w.drain(ctx)

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !normalizer.SupportedExtension(event.Name) {
				w.logger.Debug(ctx, "Ignoring unsupported file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New media file detected: %s", event.Name)

			// Small delay so the file is fully written before reading
			time.Sleep(500 * time.Millisecond)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, filePath); err != nil {
						w.logger.Error(ctx, "Failed to analyze %s: %v", filePath, err)
					}
				}(event.Name)
			case <-ctx.Done():
				return w.drain(ctx)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// drain waits for every in-flight handler before the watcher exits, so a
// shutdown never abandons a run mid-analysis.
func (w *implWatcher) drain(ctx context.Context) error {
	w.logger.Info(ctx, "Waiting for in-flight analyses to complete...")
	w.wg.Wait()
	w.logger.Info(ctx, "Drop-folder watcher stopped")
	return ctx.Err()
}

// Stop closes the underlying fsnotify watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
