package metrics

import (
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

// Bot Metrics
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsTotal,
			Help: HelpTextCommandsTotal,
		},
		[]string{LabelCommand, LabelOutcome},
	)

	GuardRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGuardRejectionsTotal,
			Help: HelpTextGuardRejectionsTotal,
		},
		[]string{LabelCommand, LabelReason},
	)

	GatewayCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGatewayCallsTotal,
			Help: HelpTextGatewayCallsTotal,
		},
		[]string{LabelOperation, LabelResult},
	)

	LiveNotificationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLiveNotifications,
			Help: HelpTextLiveNotificationsSent,
		},
	)
)

// RecordGatewayCall counts one gateway call; a nil err is a success.
func RecordGatewayCall(operation string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	GatewayCallsTotal.WithLabelValues(operation, result).Inc()
}
