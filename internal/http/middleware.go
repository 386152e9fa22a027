package http

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// SubmissionLimiter caps public application submissions per client IP
// within a fixed window.
type SubmissionLimiter struct {
	mu              sync.Mutex
	submissions     map[string]*submissionRecord
	maxSubmissions  int
	windowDuration  time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
	now             func() time.Time
}

type submissionRecord struct {
	count       int
	windowStart time.Time
}

// NewSubmissionLimiter allows maxSubmissions per IP every window.
func NewSubmissionLimiter(maxSubmissions int, window time.Duration) *SubmissionLimiter {
	if window <= 0 {
		window = time.Hour
	}

	sl := &SubmissionLimiter{
		submissions:     make(map[string]*submissionRecord),
		maxSubmissions:  maxSubmissions,
		windowDuration:  window,
		cleanupInterval: window,
		stopCleanup:     make(chan struct{}),
		now:             time.Now,
	}

	go sl.cleanupLoop()

	return sl
}

// Stop stops the background cleanup goroutine.
func (sl *SubmissionLimiter) Stop() {
	sl.stopOnce.Do(func() { close(sl.stopCleanup) })
}

// Take records one submission from ip. When the window is exhausted it
// returns false and how long until the window resets.
func (sl *SubmissionLimiter) Take(ip string) (bool, time.Duration) {
	now := sl.now()

	sl.mu.Lock()
	defer sl.mu.Unlock()

	record, exists := sl.submissions[ip]
	if !exists || now.Sub(record.windowStart) >= sl.windowDuration {
		record = &submissionRecord{windowStart: now}
		sl.submissions[ip] = record
	}

	if record.count >= sl.maxSubmissions {
		return false, record.windowStart.Add(sl.windowDuration).Sub(now)
	}

	record.count++
	return true, 0
}

func (sl *SubmissionLimiter) cleanupLoop() {
	ticker := time.NewTicker(sl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sl.cleanup()
		case <-sl.stopCleanup:
			return
		}
	}
}

func (sl *SubmissionLimiter) cleanup() {
	now := sl.now()

	sl.mu.Lock()
	defer sl.mu.Unlock()

	for ip, record := range sl.submissions {
		if now.Sub(record.windowStart) >= sl.windowDuration {
			delete(sl.submissions, ip)
		}
	}
}

// Middleware rejects requests over the limit with 429.
func (sl *SubmissionLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := sl.Take(c.ClientIP())
		if !allowed {
			seconds := int(retryAfter.Round(time.Second) / time.Second)
			c.Header("Retry-After", strconv.Itoa(max(seconds, 1)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error: "too many applications from this address",
				Code:  "rate_limited",
			})
			return
		}
		c.Next()
	}
}

// SecurityHeadersMiddleware adds the response headers every JSON endpoint
// and file download carries.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Next()
	}
}
