// Package metrics 集中定義 Prometheus 指標
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// NotificationFanout 依結果（ok / error）計數通知建立
	NotificationFanout = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_notification_fanout_total",
			Help: "Notification creations by result",
		},
		[]string{"result"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"name"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cache_lookups_total",
			Help: "Cache lookups by result (hit / miss / error)",
		},
		[]string{"cache", "result"},
	)

	ExpiredNotificationsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_expired_notifications_purged_total",
			Help: "Notifications removed by the expiry purge",
		},
	)
)
