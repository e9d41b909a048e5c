package metrics

import "time"

// Mode labels which build pipeline produced an observation.
type Mode string

const (
	ModeSync  Mode = "sync"
	ModeAsync Mode = "async"
)

// Outcome labels the final status of a build.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeCanceled Outcome = "canceled"
	OutcomeFailed   Outcome = "failed"
)

// Recorder receives build observations. Implementations must be safe for
// concurrent use; builds sharing a Recorder may run in parallel.
type Recorder interface {
	ObserveBuildDuration(mode Mode, d time.Duration)
	ObserveStepDuration(mode Mode, d time.Duration)
	IncBuildOutcome(mode Mode, outcome Outcome)
}

// NoopRecorder discards every observation. It is the default when no recorder is configured.
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(Mode, time.Duration) {}
func (NoopRecorder) ObserveStepDuration(Mode, time.Duration)  {}
func (NoopRecorder) IncBuildOutcome(Mode, Outcome)            {}
