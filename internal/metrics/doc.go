// Package metrics provides build observability for the stylesheet plugin.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	orch := sass.NewOrchestrator(comp, sass.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The host harness serves the registry on /metrics via HTTPHandler.
package metrics
