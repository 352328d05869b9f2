package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mikhailv/number-feed/internal/types"
)

const (
	promNamespace = "number_feed"
)

var (
	durationBuckets = []float64{0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 20, 60, 120, 600} // 17 items

	operationDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: promNamespace,
		Name:      "operation_duration_seconds",
		Buckets:   durationBuckets,
	}, []string{"op"})

	operationStatusCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "operation_status",
	}, []string{"op", "status"})

	valuesEmittedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "values_emitted",
	}, []string{"source"})

	valuesAppliedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "values_applied",
	})

	boardValueGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Name:      "board_value",
	})

	boardSeqGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Name:      "board_seq",
	})
)

func TrackDuration(operation string) func() {
	start := time.Now()
	return func() {
		operationDurationHistogram.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

func TrackStatus(operation, status string) {
	operationStatusCounter.WithLabelValues(operation, status).Inc()
}

func TrackValueEmitted(source string) {
	valuesEmittedCounter.WithLabelValues(source).Inc()
}

func TrackBoardState(state types.BoardState) {
	valuesAppliedCounter.Inc()
	boardValueGauge.Set(float64(state.Value))
	boardSeqGauge.Set(float64(state.Seq))
}

// ObservePendingValues registers a gauge backed by f, reporting emitted
// values not yet applied to the board. Call at most once per process.
func ObservePendingValues(f func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Name:      "pending_values",
	}, func() float64 {
		return float64(f())
	})
}
