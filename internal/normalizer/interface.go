package normalizer

import (
	"context"

	"github.com/nguyentantai21042004/accent-lens/internal/tracker"
)

// Normalizer converts heterogeneous media inputs into the canonical audio
// form: mono WAV at the configured sample rate. Every temp path it creates is
// registered with the run's tracker before the conversion that may fail.
type Normalizer interface {
	FromUpload(ctx context.Context, filename string, data []byte, tr *tracker.Tracker) (string, error)
	FromURL(ctx context.Context, url string, tr *tracker.Tracker) (string, error)
}
