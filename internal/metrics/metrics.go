package metrics

import (
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// StorageDuration tracks storage statement latency by operation and outcome.
	StorageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_statement_duration_seconds",
			Help:    "Storage statement duration in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 5},
		},
		[]string{"op", "outcome"},
	)

	// UsersCreated counts successful signups.
	UsersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "users_created_total",
			Help: "Total number of users created",
		},
	)

	// ExercisesLogged counts exercises written to storage.
	ExercisesLogged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "exercises_logged_total",
			Help: "Total number of exercises logged",
		},
	)

	// LogQueries counts log queries by whether a limit was requested.
	LogQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "log_queries_total",
			Help: "Total number of exercise log queries",
		},
		[]string{"limited"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	datePathSegment    = regexp.MustCompile(`/[0-9]{4}-[0-9]{2}-[0-9]{2}(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, StorageDuration, UsersCreated, ExercisesLogged, LogQueries)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}
// and date segments with {date}.
// E.g. /api/users/1700000000000/logs/2024-01-01/2024-02-01 -> /api/users/{id}/logs/{date}/{date}.
func NormalizePath(path string) string {
	// Each pass can skip a segment that shares its separator with the previous match.
	for i := 0; i < 2; i++ {
		path = datePathSegment.ReplaceAllString(path, "/{date}$1")
		path = numericPathSegment.ReplaceAllString(path, "/{id}$1")
	}
	return path
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveStorage records how long op took since start. Use with defer and a named error.
func ObserveStorage(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StorageDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}

// IncLogQueries counts a log query.
func IncLogQueries(limited bool) {
	LogQueries.WithLabelValues(strconv.FormatBool(limited)).Inc()
}
