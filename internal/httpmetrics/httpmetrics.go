// Package httpmetrics supplies the status server's Gin middleware:
// operator authentication for the mutating endpoint and a rolling
// per-path latency tracker behind GET /metrics.
package httpmetrics

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crossplay/crossfill/internal/auth"
)

const authClaimsKey = "authClaims"

// AuthMiddleware gates handlers behind a valid operator bearer token.
type AuthMiddleware struct {
	service *auth.Service
}

func NewAuthMiddleware(service *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{service: service}
}

// RequireAuth rejects requests without a valid Authorization bearer
// token naming an operator. It is applied only to POST /cancel.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		claims, err := m.service.ValidateToken(token)
		if err != nil {
			if err == auth.ErrTokenExpired {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// AuthClaims retrieves the validated operator claims set by RequireAuth.
func AuthClaims(c *gin.Context) *auth.Claims {
	v, exists := c.Get(authClaimsKey)
	if !exists {
		return nil
	}
	return v.(*auth.Claims)
}

// CORS allows the status dashboard to be served from a different
// origin than the crossfill process itself.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// endpointMetrics tracks per-path latency for GET /metrics.
type endpointMetrics struct {
	count       int64
	totalTime   time.Duration
	minTime     time.Duration
	maxTime     time.Duration
	p95Time     time.Duration
	recentTimes []time.Duration
}

// Recorder accumulates request latency per path. A *Recorder is safe
// for concurrent use; the status server keeps exactly one for its
// lifetime.
type Recorder struct {
	mu           sync.RWMutex
	requestCount int64
	totalTime    time.Duration
	endpoints    map[string]*endpointMetrics
}

func NewRecorder() *Recorder {
	return &Recorder{endpoints: make(map[string]*endpointMetrics)}
}

// Middleware records the latency of every request except /healthz and /ws.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start)
		if path != "/healthz" && !strings.HasSuffix(path, "/ws") {
			r.record(path, duration)
		}
		c.Header("X-Response-Time", duration.String())
	}
}

func (r *Recorder) record(path string, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requestCount++
	r.totalTime += duration

	m, exists := r.endpoints[path]
	if !exists {
		m = &endpointMetrics{minTime: duration, maxTime: duration, recentTimes: make([]time.Duration, 0, 100)}
		r.endpoints[path] = m
	}

	m.count++
	m.totalTime += duration
	if duration < m.minTime {
		m.minTime = duration
	}
	if duration > m.maxTime {
		m.maxTime = duration
	}

	m.recentTimes = append(m.recentTimes, duration)
	if len(m.recentTimes) > 100 {
		m.recentTimes = m.recentTimes[1:]
	}

	sorted := make([]time.Duration, len(m.recentTimes))
	copy(sorted, m.recentTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	p95Index := int(float64(len(sorted)) * 0.95)
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}
	if p95Index >= 0 {
		m.p95Time = sorted[p95Index]
	}
}

// Snapshot returns the current metrics as a JSON-ready map.
func (r *Recorder) Snapshot() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	endpoints := make(map[string]interface{}, len(r.endpoints))
	for path, m := range r.endpoints {
		avg := time.Duration(0)
		if m.count > 0 {
			avg = m.totalTime / time.Duration(m.count)
		}
		endpoints[path] = map[string]interface{}{
			"count":  m.count,
			"avg_ms": avg.Milliseconds(),
			"min_ms": m.minTime.Milliseconds(),
			"max_ms": m.maxTime.Milliseconds(),
			"p95_ms": m.p95Time.Milliseconds(),
		}
	}

	avg := time.Duration(0)
	if r.requestCount > 0 {
		avg = r.totalTime / time.Duration(r.requestCount)
	}

	return map[string]interface{}{
		"total_requests":  r.requestCount,
		"avg_duration_ms": avg.Milliseconds(),
		"endpoints":       endpoints,
	}
}
