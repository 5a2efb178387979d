package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP request metrics, labeled by method, route template and status code.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kinetix_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kinetix_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Business metrics.
var (
	SubscriptionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kinetix_subscriptions_created_total",
		Help: "Subscriptions sold, including renewals.",
	})

	SubscriptionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kinetix_subscriptions_expired_total",
		Help: "Subscriptions marked expired by the daily sweep.",
	})

	VisitsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kinetix_visits_recorded_total",
		Help: "Member check-ins recorded.",
	})

	CampaignEmailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kinetix_campaign_emails_sent_total",
		Help: "Campaign emails delivered.",
	})

	CampaignEmailsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kinetix_campaign_emails_failed_total",
		Help: "Campaign email send attempts that failed.",
	})
)
