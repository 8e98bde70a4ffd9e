package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransactionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transactions_created_total",
		Help: "Total number of transactions created",
	})

	TransactionsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transactions_failed_total",
		Help: "Total number of failed transaction creations",
	}, []string{"reason"})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transaction_status_transitions_total",
		Help: "Total number of admin status transitions",
	}, []string{"status"})

	RewardsRedeemedPoints = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewards_redeemed_points_total",
		Help: "Total reward points redeemed at order creation",
	})

	RewardsAccruedPoints = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewards_accrued_points_total",
		Help: "Total reward points credited on successful orders",
	})

	UsersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "users_registered_total",
		Help: "Total number of user registrations",
	})

	LoginFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "login_failures_total",
		Help: "Total number of rejected login attempts",
	})

	EmailsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notification_emails_sent_total",
		Help: "Total number of notification emails delivered",
	})

	EmailsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notification_emails_failed_total",
		Help: "Total number of notification emails that failed to send",
	})

	GameIDValidationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "game_id_validation_latency_seconds",
		Help:    "Latency of external game account validation calls",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
