package processor

import (
	"context"
	"time"
)

// Source is one user-supplied input: exactly one of the uploaded bytes or the
// URL is expected to be present.
type Source struct {
	Filename string
	Data     []byte
	URL      string
}

// Status describes where a run ended up
type Status string

const (
	StatusCompleted       Status = "completed"
	StatusDegraded        Status = "degraded"
	StatusInputError      Status = "input_error"
	StatusNormalizeFailed Status = "normalize_failed"
	StatusAnalyzeFailed   Status = "analyze_failed"
)

// Failed reports whether the run produced no displayable analysis at all.
// Degraded runs still display a partial result.
func (s Status) Failed() bool {
	return s == StatusInputError || s == StatusNormalizeFailed || s == StatusAnalyzeFailed
}

// Run is the ephemeral result of one analysis cycle. Nothing in it persists
// across process restarts.
type Run struct {
	ID         string
	Status     Status
	Accent     string
	Confidence string
	Summary    string
	Raw        string
	Error      string
	AudioWAV   []byte
	SourceName string
	StartedAt  time.Time
	Duration   time.Duration
}

// Processor drives one full run: normalize, analyze, parse, cleanup.
// It never returns an error; failures are reported on the Run.
type Processor interface {
	Process(ctx context.Context, src Source) *Run
}
