// Package metrics exposes the Prometheus collectors shared by the HTTP layer
// and the usecases.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ohc_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ohc_http_request_duration_seconds",
		Help:    "HTTP request latency by route and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	AppointmentsBooked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ohc_appointments_booked_total",
		Help: "Appointments successfully booked.",
	})

	SlotConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ohc_appointment_slot_conflicts_total",
		Help: "Booking attempts rejected because the slot was already taken.",
	})

	AppointmentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ohc_appointment_transitions_total",
		Help: "Appointment status changes by target status.",
	}, []string{"status"})

	EmergencyIntakes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ohc_emergency_contacts_total",
		Help: "Emergency contact submissions by type.",
	}, []string{"type"})

	ArticleViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ohc_article_views_total",
		Help: "Article detail fetches.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency labelled by the mux route
// template, so path parameters do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
