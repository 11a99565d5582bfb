package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agromarket_http_requests_total",
		Help: "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agromarket_http_request_duration_seconds",
		Help:    "HTTP request latency by route and method",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
)

func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestCount.WithLabelValues(route, ctx.Request.Method, strconv.Itoa(ctx.Writer.Status())).Inc()
		requestLatency.WithLabelValues(route, ctx.Request.Method).Observe(time.Since(start).Seconds())
	}
}
