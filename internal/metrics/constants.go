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

// Bot metric names
const (
	MetricNameCommandsTotal        = "discord_commands_total"
	MetricNameGuardRejectionsTotal = "discord_guard_rejections_total"
	MetricNameGatewayCallsTotal    = "twitch_gateway_calls_total"
	MetricNameLiveNotifications    = "twitch_live_notifications_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal     = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration   = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight  = "Current number of HTTP requests being served"
	HelpTextCommandsTotal         = "Total number of slash commands handled, by outcome"
	HelpTextGuardRejectionsTotal  = "Total number of commands rejected by a guard"
	HelpTextGatewayCallsTotal     = "Total number of Twitch gateway calls, by operation and result"
	HelpTextLiveNotificationsSent = "Total number of stream.online notifications posted to Discord"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelCommand   = "command"
	LabelOutcome   = "outcome"
	LabelReason    = "reason"
	LabelOperation = "operation"
	LabelResult    = "result"
)

const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Gateway operations
const (
	OperationResolve        = "resolve"
	OperationSubscribe      = "subscribe"
	OperationUnsubscribe    = "unsubscribe"
	OperationUnsubscribeAll = "unsubscribe_all"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration in seconds
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
