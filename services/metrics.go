package services

import (
	"SocialStream/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the automation loop. Each
// instance owns its registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	Cycles           *prometheus.CounterVec
	Posts            *prometheus.CounterVec
	CaptionFallbacks prometheus.Counter
	Status           *prometheus.GaugeVec
	NextRun          prometheus.Gauge
	LinkedAccounts   prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "socialstream_cycles_total",
				Help: "Completed automation cycles by outcome",
			},
			[]string{"outcome"},
		),
		Posts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "socialstream_posts_total",
				Help: "Posts published per platform",
			},
			[]string{"platform"},
		),
		CaptionFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "socialstream_caption_fallbacks_total",
			Help: "Cycles that used the fallback caption after a rewrite failure",
		}),
		Status: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "socialstream_runner_status",
				Help: "1 for the runner's current status, 0 otherwise",
			},
			[]string{"status"},
		),
		NextRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "socialstream_next_run_timestamp_seconds",
			Help: "Unix time of the next scheduled cycle, 0 when disarmed",
		}),
		LinkedAccounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "socialstream_linked_accounts",
			Help: "Number of linked platform accounts",
		}),
	}

	m.Registry.MustRegister(
		m.Cycles,
		m.Posts,
		m.CaptionFallbacks,
		m.Status,
		m.NextRun,
		m.LinkedAccounts,
	)
	m.SetStatus(models.StatusIdle)
	return m
}

var allStatuses = []models.CycleStatus{
	models.StatusIdle,
	models.StatusFetching,
	models.StatusRewriting,
	models.StatusPosting,
	models.StatusWaitingForSchedule,
	models.StatusError,
}

func (m *Metrics) SetStatus(status models.CycleStatus) {
	for _, s := range allStatuses {
		v := 0.0
		if s == status {
			v = 1
		}
		m.Status.WithLabelValues(string(s)).Set(v)
	}
}
