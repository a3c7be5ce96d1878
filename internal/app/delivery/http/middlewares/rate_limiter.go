package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"

	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter throttles clients per IP with a token bucket. A client that
// drains its bucket is blocked for blockTime.
type RateLimiter struct {
	log       *zap.Logger
	limiters  map[string]*rate.Limiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	now       func() time.Time
}

func NewRateLimiter(logger *zap.Logger, requests int, per, blockTime time.Duration) *RateLimiter {
	return &RateLimiter{
		log:       logger,
		limiters:  make(map[string]*rate.Limiter),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		now:       time.Now,
	}
}

// NewPublicRateLimiter builds the limiter guarding the unauthenticated
// respondent endpoints.
func (m *Middlewares) NewPublicRateLimiter() *RateLimiter {
	app := m.InternalConfig.App
	return NewRateLimiter(
		m.Log,
		app.PublicMaxRequestsPerMinute,
		time.Minute,
		time.Duration(app.PublicBlockTimeInSeconds)*time.Second,
	)
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if rl.requests <= 0 {
			next.ServeHTTP(w, req)
			return
		}

		ip := clientIP(req)
		now := rl.now()

		rl.mu.Lock()
		if blockedUntil, found := rl.blocked[ip]; found {
			if now.Before(blockedUntil) {
				rl.mu.Unlock()
				utils.BuildErrorResponse(rl.log, w, exceptions.ErrTooManyRequests(ip, blockedUntil))
				return
			}
			delete(rl.blocked, ip)
		}

		limiter, exists := rl.limiters[ip]
		if !exists {
			// refill one token every per/requests so the bucket holds `requests` per window
			limiter = rate.NewLimiter(rate.Every(rl.per/time.Duration(rl.requests)), rl.requests)
			rl.limiters[ip] = limiter
		}
		rl.mu.Unlock()

		if !limiter.AllowN(now, 1) {
			blockedUntil := now.Add(rl.blockTime)

			rl.mu.Lock()
			rl.blocked[ip] = blockedUntil
			rl.mu.Unlock()

			requestID := utils.GetRequestID(req.Context())
			rl.log.Warn("middlewares.RateLimiter client throttled",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRemoteAddrKey, ip),
			)
			utils.BuildErrorResponse(rl.log, w, exceptions.ErrTooManyRequests(ip, blockedUntil))
			return
		}

		next.ServeHTTP(w, req)
	})
}

func clientIP(req *http.Request) string {
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return ip
}
