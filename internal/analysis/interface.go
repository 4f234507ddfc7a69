package analysis

import "context"

// Client sends normalized audio to the hosted inference service and returns
// the raw response text. One synchronous request per call, no retry.
type Client interface {
	Analyze(ctx context.Context, wavPath string) (string, error)
}
