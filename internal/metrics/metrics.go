package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Contest Metrics
var (
	ContributionsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameContributionsSubmitted,
			Help: HelpTextContributionsSubmitted,
		},
		[]string{LabelKind},
	)

	SubmissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSubmissionsRejected,
			Help: HelpTextSubmissionsRejected,
		},
		[]string{LabelReason},
	)

	ModerationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameModerationDecisions,
			Help: HelpTextModerationDecisions,
		},
		[]string{LabelOutcome},
	)

	ModerationConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameModerationConflicts,
			Help: HelpTextModerationConflicts,
		},
	)

	PointsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePointsAwarded,
			Help: HelpTextPointsAwarded,
		},
		[]string{LabelKind},
	)

	LeaderboardDrift = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLeaderboardDrift,
			Help: HelpTextLeaderboardDrift,
		},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotificationsSent,
			Help: HelpTextNotificationsSent,
		},
		[]string{LabelChannel},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotificationFailures,
			Help: HelpTextNotificationFailures,
		},
		[]string{LabelChannel},
	)
)

// Background Job Metrics
var (
	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobRuns,
			Help: HelpTextJobRuns,
		},
		[]string{LabelJob, LabelResult},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameJobDuration,
			Help:    HelpTextJobDuration,
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelJob},
	)

	EventLogPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEventLogPruned,
			Help: HelpTextEventLogPruned,
		},
	)
)

// ObserveJob records one run of a scheduled job
func ObserveJob(name string, elapsed time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	JobRuns.WithLabelValues(name, result).Inc()
	JobDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}
