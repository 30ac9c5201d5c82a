// Package observability owns the Prometheus collectors exported at /metrics.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "softgym"

var (
	accessAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_attempts_total",
		Help:      "Keypad access validations by outcome.",
	}, []string{"status"})
	paymentsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Payments written, including the first payment of a registration.",
	})
	clientsRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_registered_total",
		Help:      "Clients registered.",
	})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and response status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
	queryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "db_query_duration_seconds",
		Help:      "Database call latency by operation.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(accessAttempts, paymentsRecorded, clientsRegistered, httpDuration, queryDuration)
}

// RecordAccessAttempt counts one validation outcome.
func RecordAccessAttempt(status string) {
	accessAttempts.WithLabelValues(status).Inc()
}

// RecordPayment counts one persisted payment.
func RecordPayment() {
	paymentsRecorded.Inc()
}

// RecordClientRegistered counts one new client.
func RecordClientRegistered() {
	clientsRegistered.Inc()
}

// ObserveHTTPRequest records the latency of a finished request.
func ObserveHTTPRequest(method string, status int, d time.Duration) {
	httpDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}

// ObserveQuery records the latency of a database call.
func ObserveQuery(op string, d time.Duration) {
	queryDuration.WithLabelValues(op).Observe(d.Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
