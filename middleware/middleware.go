package middleware

import (
	"net/http"
	"sync"
	"time"

	"HospitalHub/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

// RequestID keeps an incoming X-Request-ID or generates one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Logger writes one structured line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := log.WithFields(log.Fields{
			"requestId": GetRequestID(c),
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"clientIp":  c.ClientIP(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("Request failed")
			return
		}
		entry.Info("Request handled")
	}
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// Throttle is a token bucket per client IP.
type Throttle struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perSecond rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewThrottle(perSecond float64, burst int) *Throttle {
	return &Throttle{
		buckets:   make(map[string]*bucket),
		perSecond: rate.Limit(perSecond),
		burst:     burst,
		ttl:       5 * time.Minute,
		now:       time.Now,
	}
}

func (t *Throttle) Allow(ip string) bool {
	if ip == "" {
		ip = "unknown"
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if now.Sub(t.lastSweep) > time.Minute {
		for k, b := range t.buckets {
			if now.Sub(b.seen) > t.ttl {
				delete(t.buckets, k)
			}
		}
		t.lastSweep = now
	}
	b, ok := t.buckets[ip]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(t.perSecond, t.burst)}
		t.buckets[ip] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

// LoginThrottle rejects bursts of login requests from one client with 429.
// A non-positive rate disables it.
func LoginThrottle(t *Throttle) gin.HandlerFunc {
	return func(c *gin.Context) {
		if t == nil || t.perSecond <= 0 {
			c.Next()
			return
		}
		if !t.Allow(c.ClientIP()) {
			err := util.NewError(util.KindTooManyRequests, util.RATE_LIMIT_EXCEEDED)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, util.FailedResponse(err))
			return
		}
		c.Next()
	}
}
