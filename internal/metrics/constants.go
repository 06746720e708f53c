package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Contest metric names
const (
	MetricNameContributionsSubmitted = "contributions_submitted_total"
	MetricNameSubmissionsRejected    = "submissions_rejected_total"
	MetricNameModerationDecisions    = "moderation_decisions_total"
	MetricNameModerationConflicts    = "moderation_conflicts_total"
	MetricNamePointsAwarded          = "points_awarded_total"
	MetricNameLeaderboardDrift       = "leaderboard_drift_total"
	MetricNameNotificationsSent      = "notifications_sent_total"
	MetricNameNotificationFailures   = "notification_failures_total"
)

// Background job metric names
const (
	MetricNameJobRuns        = "background_job_runs_total"
	MetricNameJobDuration    = "background_job_duration_seconds"
	MetricNameEventLogPruned = "event_log_pruned_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Contest metric help text
const (
	HelpTextContributionsSubmitted = "Total number of contributions accepted into the pending queue"
	HelpTextSubmissionsRejected    = "Total number of submissions refused before storage, by reason"
	HelpTextModerationDecisions    = "Total number of committed moderation decisions"
	HelpTextModerationConflicts    = "Total number of decisions that lost to an earlier decision"
	HelpTextPointsAwarded          = "Total points awarded by approvals"
	HelpTextLeaderboardDrift       = "Total number of team totals found out of step with recomputation"
	HelpTextNotificationsSent      = "Total number of notifications delivered"
	HelpTextNotificationFailures   = "Total number of notification deliveries that failed"
)

// Background job metric help text
const (
	HelpTextJobRuns        = "Total number of scheduled job runs, by job and result"
	HelpTextJobDuration    = "Scheduled job run time in seconds"
	HelpTextEventLogPruned = "Total number of event log rows removed by retention"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelKind    = "kind"
	LabelReason  = "reason"
	LabelOutcome = "outcome"
	LabelChannel = "channel"
	LabelJob     = "job"
	LabelResult  = "result"
)

// Job run results
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Submission refusal reasons
const (
	ReasonUnregistered = "unregistered"
	ReasonDuplicate    = "duplicate"
	ReasonInvalid      = "invalid"
	ReasonNotFound     = "not_found"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded"
	LogMsgMetricsRecorded         = "Metrics recorded for event"
)

// unmatchedRoute labels requests that no route matched, keeping path cardinality bounded
const unmatchedRoute = "unmatched"
