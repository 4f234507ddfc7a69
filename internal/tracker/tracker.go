// Package tracker records temporary files and directories created during a
// single analysis run and removes them all when the run finishes.
package tracker

import (
	"context"
	"os"
	"sync"

	"github.com/nguyentantai21042004/accent-lens/internal/logger"
)

// Tracker owns the set of temp paths for one run. Registration is append-only;
// Cleanup removes everything best-effort and resets the sets, so calling it
// again without new registrations is a no-op.
type Tracker struct {
	logger logger.Logger

	mu    sync.Mutex
	files []string
	dirs  []string
}

// New creates an empty Tracker for a fresh run
func New(log logger.Logger) *Tracker {
	return &Tracker{logger: log}
}

// RegisterFile records a temp file for end-of-run deletion
func (t *Tracker) RegisterFile(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.files = append(t.files, path)
}

// RegisterDir records a temp directory for recursive end-of-run deletion
func (t *Tracker) RegisterDir(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dirs = append(t.dirs, path)
}

// Cleanup deletes every tracked path. A locked or already-removed path must
// not abort cleanup of the rest, so deletion errors are logged and swallowed.
func (t *Tracker) Cleanup(ctx context.Context) {
	t.mu.Lock()
	files := t.files
	dirs := t.dirs
	t.files = nil
	t.dirs = nil
	t.mu.Unlock()

	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := os.Remove(path); err != nil {
			t.logger.Warn(ctx, "Failed to remove temp file %s: %v", path, err)
		} else {
			t.logger.Debug(ctx, "Removed temp file: %s", path)
		}
	}

	for _, path := range dirs {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			t.logger.Warn(ctx, "Failed to remove temp dir %s: %v", path, err)
		} else {
			t.logger.Debug(ctx, "Removed temp dir: %s", path)
		}
	}
}

// Size returns the number of tracked paths, used by tests
func (t *Tracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.files) + len(t.dirs)
}
