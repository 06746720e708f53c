package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/osse101/ContestBot_Go/internal/metrics"
)

// AdminMetricsResponse contains JSON-formatted metrics for the admin dashboard
type AdminMetricsResponse struct {
	HTTP    HTTPMetrics    `json:"http"`
	Events  EventMetrics   `json:"events"`
	Contest ContestMetrics `json:"contest"`
	SSE     SSEMetrics     `json:"sse"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

type ContestMetrics struct {
	SubmittedByKind       map[string]float64 `json:"submitted_by_kind"`
	RefusedByReason       map[string]float64 `json:"refused_by_reason"`
	DecisionsByOutcome    map[string]float64 `json:"decisions_by_outcome"`
	PointsByKind          map[string]float64 `json:"points_by_kind"`
	ModerationConflicts   float64            `json:"moderation_conflicts"`
	LeaderboardDrift      float64            `json:"leaderboard_drift"`
	NotificationsSent     map[string]float64 `json:"notifications_sent"`
	NotificationsFailures map[string]float64 `json:"notification_failures"`
}

type SSEMetrics struct {
	ClientCount int `json:"client_count"`
}

// ClientCounter reports connected console streams
type ClientCounter interface {
	ClientCount() int
}

// HandleGetMetrics summarizes Prometheus metrics as JSON for the admin console
// @Summary Console metrics summary
// @Tags admin
// @Produce json
// @Success 200 {object} AdminMetricsResponse
// @Router /api/v1/admin/metrics [get]
func HandleGetMetrics(gatherer prometheus.Gatherer, clients ClientCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := gatherMetrics(gatherer)
		if err != nil {
			respondServiceError(w, r, ErrMsgGatherMetricsFailed, err)
			return
		}
		if clients != nil {
			resp.SSE.ClientCount = clients.ClientCount()
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

func gatherMetrics(gatherer prometheus.Gatherer) (*AdminMetricsResponse, error) {
	metricFamilies, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{
			RequestsTotalByStatus: make(map[string]float64),
		},
		Events: EventMetrics{
			PublishedTotalByType: make(map[string]float64),
			HandlerErrorsByType:  make(map[string]float64),
		},
		Contest: ContestMetrics{
			SubmittedByKind:       make(map[string]float64),
			RefusedByReason:       make(map[string]float64),
			DecisionsByOutcome:    make(map[string]float64),
			PointsByKind:          make(map[string]float64),
			NotificationsSent:     make(map[string]float64),
			NotificationsFailures: make(map[string]float64),
		},
	}

	for _, mf := range metricFamilies {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			sumCounterBy(mf, metrics.LabelStatus, resp.HTTP.RequestsTotalByStatus)
		case metrics.MetricNameHTTPRequestDuration:
			var count uint64
			var sum float64
			for _, m := range mf.GetMetric() {
				hist := m.GetHistogram()
				count += hist.GetSampleCount()
				sum += hist.GetSampleSum()
				if q := estimateQuantile(hist, 0.95) * 1000; q > resp.HTTP.P95LatencyMs {
					resp.HTTP.P95LatencyMs = q
				}
			}
			if count > 0 {
				resp.HTTP.AvgLatencyMs = sum / float64(count) * 1000
			}
		case metrics.MetricNameHTTPRequestsInFlight:
			for _, m := range mf.GetMetric() {
				resp.HTTP.InFlight += m.GetGauge().GetValue()
			}
		case metrics.MetricNameEventsPublished:
			sumCounterBy(mf, metrics.LabelType, resp.Events.PublishedTotalByType)
		case metrics.MetricNameEventHandlerErrors:
			sumCounterBy(mf, metrics.LabelType, resp.Events.HandlerErrorsByType)
		case metrics.MetricNameContributionsSubmitted:
			sumCounterBy(mf, metrics.LabelKind, resp.Contest.SubmittedByKind)
		case metrics.MetricNameSubmissionsRejected:
			sumCounterBy(mf, metrics.LabelReason, resp.Contest.RefusedByReason)
		case metrics.MetricNameModerationDecisions:
			sumCounterBy(mf, metrics.LabelOutcome, resp.Contest.DecisionsByOutcome)
		case metrics.MetricNamePointsAwarded:
			sumCounterBy(mf, metrics.LabelKind, resp.Contest.PointsByKind)
		case metrics.MetricNameModerationConflicts:
			resp.Contest.ModerationConflicts = sumCounter(mf)
		case metrics.MetricNameLeaderboardDrift:
			resp.Contest.LeaderboardDrift = sumCounter(mf)
		case metrics.MetricNameNotificationsSent:
			sumCounterBy(mf, metrics.LabelChannel, resp.Contest.NotificationsSent)
		case metrics.MetricNameNotificationFailures:
			sumCounterBy(mf, metrics.LabelChannel, resp.Contest.NotificationsFailures)
		}
	}

	return resp, nil
}

func sumCounterBy(mf *dto.MetricFamily, label string, into map[string]float64) {
	for _, m := range mf.GetMetric() {
		if v := getLabelValue(m, label); v != "" {
			into[v] += m.GetCounter().GetValue()
		}
	}
}

func sumCounter(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	return total
}

func getLabelValue(m *dto.Metric, labelName string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == labelName {
			return label.GetValue()
		}
	}
	return ""
}

// estimateQuantile approximates the given quantile from a histogram
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	totalCount := hist.GetSampleCount()
	if totalCount == 0 {
		return 0
	}

	targetCount := float64(totalCount) * quantile
	var cumulativeCount uint64

	buckets := hist.GetBucket()
	for _, bucket := range buckets {
		cumulativeCount = bucket.GetCumulativeCount()
		if float64(cumulativeCount) >= targetCount {
			return bucket.GetUpperBound()
		}
	}

	// If we reach here, return the last bucket's upper bound
	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}
