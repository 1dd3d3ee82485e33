package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "livekit_henryk"

// Metrics holds the Prometheus collectors for call setup and the post-call pipeline.
type Metrics struct {
	// Call setup
	CallsCreated *prometheus.CounterVec

	// Pipeline
	PipelineJobs       *prometheus.CounterVec
	PipelineStageTotal *prometheus.HistogramVec
	PipelineQueueDepth prometheus.Gauge
	PipelineDropped    prometheus.Counter

	// Events
	WebhookEvents     *prometheus.CounterVec
	DuplicateEvents   *prometheus.CounterVec
	NotificationsSent *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CallsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_created_total",
			Help:      "Calls created, by kind (test, lead) and outcome",
		}, []string{"kind", "outcome"}),
		PipelineJobs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_jobs_total",
			Help:      "Post-call pipeline runs by final outcome",
		}, []string{"outcome"}),
		PipelineStageTotal: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of each post-call pipeline stage",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"stage", "outcome"}),
		PipelineQueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_queue_depth",
			Help:      "Jobs waiting for a pipeline worker",
		}),
		PipelineDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_jobs_dropped_total",
			Help:      "Jobs rejected because the pipeline queue was full or stopped",
		}),
		WebhookEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "livekit_events_total",
			Help:      "Inbound LiveKit webhook events by type",
		}, []string{"event"}),
		DuplicateEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_events_total",
			Help:      "Events ignored because their work was already claimed",
		}, []string{"kind"}),
		NotificationsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Downstream webhook deliveries by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveStage records how long a pipeline stage took.
func (m *Metrics) ObserveStage(stage string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.PipelineStageTotal.WithLabelValues(stage, outcome(err)).Observe(time.Since(start).Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (m *Metrics) CallCreated(kind string, err error) {
	if m == nil {
		return
	}
	m.CallsCreated.WithLabelValues(kind, outcome(err)).Inc()
}

// PipelineJob counts a finished pipeline run; outcome is the failing stage or "success".
func (m *Metrics) PipelineJob(result string) {
	if m == nil {
		return
	}
	m.PipelineJobs.WithLabelValues(result).Inc()
}

func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.PipelineQueueDepth.Set(float64(n))
}

func (m *Metrics) JobDropped() {
	if m == nil {
		return
	}
	m.PipelineDropped.Inc()
}

func (m *Metrics) WebhookEvent(event string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) DuplicateEvent(kind string) {
	if m == nil {
		return
	}
	m.DuplicateEvents.WithLabelValues(kind).Inc()
}

// NotificationSent counts a delivery: "delivered", "retrying" or "gave_up".
func (m *Metrics) NotificationSent(result string) {
	if m == nil {
		return
	}
	m.NotificationsSent.WithLabelValues(result).Inc()
}
