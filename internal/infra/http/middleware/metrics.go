package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Total number of lead capture attempts by outcome",
		},
		[]string{"outcome"},
	)

	captureRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_capture_rate_limited_total",
			Help: "Total number of lead captures rejected by the per-IP limiter",
		},
	)

	userAuth = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_auth_total",
			Help: "Total number of registrations and logins by outcome",
		},
		[]string{"action", "outcome"},
	)

	welcomeEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_welcome_emails_total",
			Help: "Total number of welcome e-mails processed by status",
		},
		[]string{"status"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		path := routePattern(r)
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern labels requests by the matched chi route, so unknown paths
// share one series.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// RecordLeadCapture counts a capture; outcome is "success" or a failure code.
func RecordLeadCapture(outcome string) {
	leadsCaptured.WithLabelValues(outcome).Inc()
}

func RecordCaptureRateLimited() {
	captureRateLimited.Inc()
}

func RecordUserAuth(action, outcome string) {
	userAuth.WithLabelValues(action, outcome).Inc()
}

func RecordWelcomeEmail(status string) {
	welcomeEmails.WithLabelValues(status).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
