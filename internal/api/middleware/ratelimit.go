package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/smilehub/clinic-booking/internal/api/handlers"
)

const (
	msgTooManyRequests = "too many requests, please try again later"

	limiterIdleTTL = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP (token bucket)
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	proxies  []netip.Prefix
	logger   Logger
	now      func() time.Time
}

// NewRateLimiter создает лимитер на requestsPerMinute запросов в минуту с пиком burst.
// X-Forwarded-For учитывается только если запрос пришел от адреса из trustedProxies
func NewRateLimiter(requestsPerMinute float64, burst int, trustedProxies []netip.Prefix, logger Logger) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(requestsPerMinute / 60),
		burst:    burst,
		proxies:  trustedProxies,
		logger:   logger,
		now:      time.Now,
	}
}

// Limit middleware, превышение лимита - 429
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)
		if !rl.allow(ip) {
			rl.logger.Warn("%s %s - rate limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
			w.Header().Set("Retry-After", "60")
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// Cleanup удаляет лимитеры IP, не приходивших дольше limiterIdleTTL
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-limiterIdleTTL)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

// RunCleanup периодически вызывает Cleanup до закрытия stopCh
func (rl *RateLimiter) RunCleanup(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.Cleanup()
		case <-stopCh:
			return
		}
	}
}

// clientIP адрес клиента. За доверенным прокси берется самый правый
// адрес X-Forwarded-For, не принадлежащий доверенным прокси
func (rl *RateLimiter) clientIP(r *http.Request) string {
	remote := remoteHost(r)
	if !rl.isTrustedProxy(remote) {
		return remote
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" || rl.isTrustedProxy(hop) {
			continue
		}
		return hop
	}
	return remote
}

func (rl *RateLimiter) isTrustedProxy(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range rl.proxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
