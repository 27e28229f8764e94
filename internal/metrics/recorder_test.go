package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	compiles map[ResultLabel]int
	outcomes map[BuildOutcomeLabel]int
	builds   int
	sources  int
	mounts   map[string]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{compiles: map[ResultLabel]int{}, outcomes: map[BuildOutcomeLabel]int{}, mounts: map[string]int{}}
}

func (t *testRecorder) ObserveCompileDuration(_ string, _ time.Duration, r ResultLabel) { t.compiles[r]++ }
func (t *testRecorder) ObserveBuildDuration(time.Duration)                            { t.builds++ }
func (t *testRecorder) IncBuildOutcome(o BuildOutcomeLabel)                           { t.outcomes[o]++ }
func (t *testRecorder) SetBuildSources(n int)                                         { t.sources = n }
func (t *testRecorder) IncStaticMount(prefix string)                                  { t.mounts[prefix]++ }

func TestRecorderInterfaceCompliance(t *testing.T) {
	var _ Recorder = NoopRecorder{}
	var _ Recorder = (*PrometheusRecorder)(nil)

	r := newTestRecorder()
	var rec Recorder = r
	rec.ObserveCompileDuration("a.scss", 5*time.Millisecond, ResultSuccess)
	rec.ObserveCompileDuration("b.scss", 5*time.Millisecond, ResultFailed)
	rec.ObserveBuildDuration(10 * time.Millisecond)
	rec.IncBuildOutcome(BuildOutcomeFailed)
	rec.SetBuildSources(2)
	rec.IncStaticMount("/css")

	if r.compiles[ResultSuccess] != 1 || r.compiles[ResultFailed] != 1 {
		t.Fatalf("unexpected compile counts: %v", r.compiles)
	}
	if r.builds != 1 || r.outcomes[BuildOutcomeFailed] != 1 || r.sources != 2 || r.mounts["/css"] != 1 {
		t.Fatalf("unexpected recorder state: %+v", r)
	}
}

func TestNoopRecorderDoesNothing(t *testing.T) {
	var r NoopRecorder
	r.ObserveCompileDuration("a.scss", time.Second, ResultSuccess)
	r.ObserveBuildDuration(time.Second)
	r.IncBuildOutcome(BuildOutcomeSuccess)
	r.SetBuildSources(1)
	r.IncStaticMount("/css")
}
