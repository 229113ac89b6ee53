package schedule

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	scheduled    *prometheus.CounterVec
	executions   *prometheus.CounterVec
	failures     *prometheus.CounterVec
	stops        prometheus.Counter
	pending      prometheus.Gauge
	tickDuration prometheus.Histogram
}

func newMetrics(name string) *metrics {
	labels := prometheus.Labels{"scheduler": name}
	return &metrics{
		scheduled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_tasks_scheduled_total",
			Help:        "Total number of wait and loop handles created",
			ConstLabels: labels,
		}, []string{"kind"}),
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_task_executions_total",
			Help:        "Total number of task executions",
			ConstLabels: labels,
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_task_failures_total",
			Help:        "Total number of task executions which panicked",
			ConstLabels: labels,
		}, []string{"kind"}),
		stops: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "schedule_handles_stopped_total",
			Help:        "Total number of stopped handles dropped by the dispatcher",
			ConstLabels: labels,
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "schedule_pending_handles",
			Help:        "Number of handles waiting in the time buckets",
			ConstLabels: labels,
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "schedule_tick_duration_seconds",
			Help:        "Time spent dispatching one tick",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.scheduled,
		m.executions,
		m.failures,
		m.stops,
		m.pending,
		m.tickDuration,
	}
}
