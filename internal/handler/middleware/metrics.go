package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const MetricsPath = "/metrics"

type Metrics struct {
	requests *prometheus.CounterVec
}

// NewMetrics registers the request counter on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests served",
	}, []string{"method", "route", "status"})
	if err := reg.Register(requests); err != nil {
		return nil, err
	}
	return &Metrics{requests: requests}, nil
}

// CountRequests counts every request except scrapes of the metrics endpoint.
func (m *Metrics) CountRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.URL.Path == MetricsPath {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
