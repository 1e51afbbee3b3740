package middleware

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"cicd-demo/statusboard/internal/logging"
	"cicd-demo/statusboard/internal/metrics"
)

const peerAddrKey ctxKey = "peer_addr"

// PeerAddrMiddleware records the TCP peer host before anything rewrites
// RemoteAddr from forwarded headers. It must run ahead of chi's RealIP.
func PeerAddrMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), peerAddrKey, hostOnly(r.RemoteAddr))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PeerAddrFromContext returns the host stored by PeerAddrMiddleware.
func PeerAddrFromContext(ctx context.Context) string {
	addr, _ := ctx.Value(peerAddrKey).(string)
	return addr
}

func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// RateLimiter hands out one token bucket per client IP. Idle buckets expire
// so the map does not grow with every address ever seen.
type RateLimiter struct {
	limiters   *cache.Cache
	rps        rate.Limit
	burst      int
	metricsReg *metrics.MetricsRegistry
}

func NewRateLimiter(rps float64, burst int, metricsReg *metrics.MetricsRegistry) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters:   cache.New(10*time.Minute, 5*time.Minute),
		rps:        rate.Limit(rps),
		burst:      burst,
		metricsReg: metricsReg,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	if l, found := rl.limiters.Get(ip); found {
		// touch to extend expiry
		rl.limiters.SetDefault(ip, l)
		return l.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.rps, rl.burst)
	if err := rl.limiters.Add(ip, limiter, cache.DefaultExpiration); err != nil {
		// lost a race with another request from the same IP
		if l, found := rl.limiters.Get(ip); found {
			return l.(*rate.Limiter)
		}
	}
	return limiter
}

// Allow reports whether a request from ip may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.getLimiter(ip).Allow()
}

// Middleware keys buckets on the peer address, never on forwarded headers.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := PeerAddrFromContext(r.Context())
		if ip == "" {
			ip = hostOnly(r.RemoteAddr)
		}

		if !rl.Allow(ip) {
			if rl.metricsReg != nil {
				rl.metricsReg.RateLimitedTotal.Inc()
			}
			logging.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
