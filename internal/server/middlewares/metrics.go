package middlewares

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const maxDurations = 1000

// HTTPMetrics holds only HTTP request metrics
type HTTPMetrics struct {
	mutex            sync.RWMutex
	requestsTotal    map[string]int64
	requestDurations []float64
	activeRequests   int64
}

// HTTPMetricsSnapshot is a point-in-time copy of HTTPMetrics.
type HTTPMetricsSnapshot struct {
	RequestsTotal      map[string]int64
	AvgDurationSeconds float64
	ActiveRequests     int64
}

type MetricsMiddleware struct {
	metrics *HTTPMetrics
}

func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: &HTTPMetrics{
			requestsTotal:    make(map[string]int64),
			requestDurations: make([]float64, 0, maxDurations),
		},
	}
}

func (m *MetricsMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.metrics.mutex.Lock()
		m.metrics.activeRequests++
		m.metrics.mutex.Unlock()

		c.Next()

		duration := time.Since(start).Seconds()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		key := c.Request.Method + " " + route + "_" + strconv.Itoa(c.Writer.Status())

		m.metrics.mutex.Lock()
		m.metrics.requestsTotal[key]++
		m.metrics.requestDurations = append(m.metrics.requestDurations, duration)
		m.metrics.activeRequests--

		// Keep only the most recent durations
		if len(m.metrics.requestDurations) > maxDurations {
			m.metrics.requestDurations = m.metrics.requestDurations[len(m.metrics.requestDurations)-maxDurations:]
		}
		m.metrics.mutex.Unlock()
	}
}

// Snapshot returns the HTTP metrics for the metrics handler to expose
func (m *MetricsMiddleware) Snapshot() HTTPMetricsSnapshot {
	m.metrics.mutex.RLock()
	defer m.metrics.mutex.RUnlock()

	totals := make(map[string]int64, len(m.metrics.requestsTotal))
	for k, v := range m.metrics.requestsTotal {
		totals[k] = v
	}

	var avg float64
	if n := len(m.metrics.requestDurations); n > 0 {
		sum := 0.0
		for _, d := range m.metrics.requestDurations {
			sum += d
		}
		avg = sum / float64(n)
	}

	return HTTPMetricsSnapshot{
		RequestsTotal:      totals,
		AvgDurationSeconds: avg,
		ActiveRequests:     m.metrics.activeRequests,
	}
}
