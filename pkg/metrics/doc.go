// Package metrics defines the observability hooks of the build pipeline.
//
// The pipeline reports through the Recorder interface: total build duration,
// per-step duration and the final outcome, each labelled by Mode (sync or async).
// NoopRecorder is the default and costs nothing; PrometheusRecorder forwards to
// github.com/prometheus/client_golang collectors registered on a caller-supplied
// registry:
//
//	reg := prometheus.NewRegistry()
//	rec, err := metrics.NewPrometheusRecorder(reg, "fixtures")
//	if err != nil {
//	    return err
//	}
//	bc := builder.NewContext(ctx, builder.WithRecorder(rec))
package metrics
