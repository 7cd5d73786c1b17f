// Package metrics exposes Prometheus counters and histograms for pipeline
// runs, component executions and scheduler ticks, plus an HTTP listener to
// serve them.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RunsTotal counts pipeline runs by pipeline name and outcome.
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeweave_pipeline_runs_total",
			Help: "Total number of pipeline runs by outcome",
		},
		[]string{"pipeline", "outcome"},
	)

	// RunDuration tracks wall-clock pipeline run duration.
	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeweave_pipeline_run_duration_seconds",
			Help:    "Duration of pipeline runs",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
		[]string{"pipeline"},
	)

	// ComponentExecutionsTotal counts component executions by stage, type and status.
	ComponentExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeweave_component_executions_total",
			Help: "Total number of component executions by stage, type and status",
		},
		[]string{"stage", "type", "status"},
	)

	// ComponentDuration tracks component execution duration.
	ComponentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeweave_component_duration_seconds",
			Help:    "Duration of individual component executions",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"stage", "type"},
	)

	// SchedulerTicks counts scheduler ticks by pipeline and result.
	SchedulerTicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeweave_scheduler_ticks_total",
			Help: "Total number of scheduler ticks by result",
		},
		[]string{"pipeline", "result"},
	)

	// SchedulerMissed counts ticks the scheduler could not honor on time.
	SchedulerMissed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeweave_scheduler_missed_total",
			Help: "Total number of scheduler ticks missed due to overrun",
		},
		[]string{"pipeline"},
	)
)

// Serve starts an HTTP server exposing /metrics and blocks until ctx is
// cancelled or the server fails. Callers typically run it in a goroutine.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return server.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
