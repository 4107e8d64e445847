package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "framesnap_frames_saved_total",
		Help: "Total number of snapshots written to disk",
	})

	FramesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "framesnap_frames_skipped_total",
		Help: "Total number of snapshots skipped because the save failed",
	})

	CaptureRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "framesnap_capture_runs_total",
		Help: "Total number of capture runs, by outcome",
	}, []string{"outcome"})

	CaptureRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "framesnap_capture_run_duration_seconds",
		Help:    "Wall time of a capture run",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
	})

	ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "framesnap_active_workers",
		Help: "Number of capture workers currently running (0 or 1)",
	})
)

const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
)
