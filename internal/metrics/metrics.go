// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// HTTPDuration measures request latency keyed by the chi route pattern.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// TripsCreated counts successfully created trips.
	TripsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_trips_created_total",
			Help: "Total number of trips created",
		},
	)

	// ParticipantsInvited counts participants added after trip creation.
	ParticipantsInvited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planner_participants_invited_total",
			Help: "Total number of participants invited to existing trips",
		},
	)

	// Confirmations counts first-time confirmations by subject (trip|participant).
	Confirmations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_confirmations_total",
			Help: "Total number of trip and participant confirmations",
		},
		[]string{"subject"},
	)

	// MailDeliveries counts outbound email by kind and result (success|failure).
	MailDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_mail_deliveries_total",
			Help: "Total number of email delivery attempts",
		},
		[]string{"kind", "result"},
	)
)
