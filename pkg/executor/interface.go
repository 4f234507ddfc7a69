package executor

import "context"

// Executor defines the interface for running external tools (ffmpeg, yt-dlp)
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	Available(name string) error
}
