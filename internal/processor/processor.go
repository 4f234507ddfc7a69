package processor

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/accent-lens/internal/parser"
	"github.com/nguyentantai21042004/accent-lens/internal/tracker"
)

// Process runs one analysis cycle. The flow is strictly linear: normalize,
// verify, analyze, parse. Each run owns a fresh tracker; the deferred cleanup
// fires on every exit path, success or failure.
func (p *implProcessor) Process(ctx context.Context, src Source) *Run {
	run := &Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		SourceName: src.Filename,
	}
	if run.SourceName == "" {
		run.SourceName = src.URL
	}
	defer func() {
		run.Duration = time.Since(run.StartedAt)
	}()

	tr := tracker.New(p.logger)
	defer tr.Cleanup(ctx)

	p.logger.Info(ctx, "Starting analysis run %s: %s", run.ID, run.SourceName)

	wavPath, err := p.normalize(ctx, src, tr)
	if err != nil {
		run.Status = StatusNormalizeFailed
		if errors.Is(err, errNoInput{}) {
			run.Status = StatusInputError
		}
		run.Error = err.Error()
		p.logger.Error(ctx, "Run %s: %s: %v", run.ID, run.Status, err)
		return run
	}

	// Keep the canonical audio for playback; cleanup deletes the file before
	// the result is rendered. A read failure only loses the player.
	if audio, err := os.ReadFile(wavPath); err != nil {
		p.logger.Warn(ctx, "Run %s: could not retain audio for playback: %v", run.ID, err)
	} else {
		run.AudioWAV = audio
	}

	raw, err := p.analysis.Analyze(ctx, wavPath)
	if err != nil {
		run.Status = StatusAnalyzeFailed
		run.Error = err.Error()
		p.logger.Error(ctx, "Run %s: analysis failed: %v", run.ID, err)
		return run
	}
	run.Raw = raw

	res := parser.Parse(raw)
	run.Accent = res.Fields.Accent
	run.Confidence = res.Fields.Confidence
	run.Summary = res.Fields.Summary
	if res.Degraded {
		run.Status = StatusDegraded
		run.Error = res.Err.Error()
		p.logger.Warn(ctx, "Run %s: response degraded to sentinels: %v", run.ID, res.Err)
	} else {
		run.Status = StatusCompleted
	}

	p.logger.Info(ctx, "Run %s finished: %s (accent=%s confidence=%s)",
		run.ID, run.Status, run.Accent, run.Confidence)
	return run
}

// normalize resolves the source type and produces the canonical WAV. A run
// with neither upload nor URL is an input error, not a normalization failure.
func (p *implProcessor) normalize(ctx context.Context, src Source, tr *tracker.Tracker) (string, error) {
	switch {
	case len(src.Data) > 0:
		return p.normalizer.FromUpload(ctx, src.Filename, src.Data, tr)
	case src.URL != "":
		return p.normalizer.FromURL(ctx, src.URL, tr)
	default:
		return "", errNoInput{}
	}
}

type errNoInput struct{}

func (errNoInput) Error() string {
	return "no audio source supplied: upload a file or provide a URL"
}
