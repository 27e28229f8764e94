package metrics

import "time"

// ResultLabel enumerates per-source compile results for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// BuildOutcomeLabel enumerates the final status of a build call.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess BuildOutcomeLabel = "success"
	BuildOutcomeFailed  BuildOutcomeLabel = "failed"
	BuildOutcomeSkipped BuildOutcomeLabel = "skipped"
)

// Recorder defines observability hooks for stylesheet builds. Implementations
// may forward to Prometheus or any other backend.
type Recorder interface {
	ObserveCompileDuration(source string, d time.Duration, result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	SetBuildSources(n int)
	IncStaticMount(prefix string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveCompileDuration(string, time.Duration, ResultLabel) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)                        {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)                         {}
func (NoopRecorder) SetBuildSources(int)                                       {}
func (NoopRecorder) IncStaticMount(string)                                     {}
