package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterPool struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func (p *limiterPool) get(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, exists := p.visitors[ip]
	if !exists {
		l := rate.NewLimiter(p.limit, p.burst)
		p.visitors[ip] = &visitor{limiter: l, lastSeen: time.Now()}
		return l
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// cleanup drops idle entries so the map does not grow forever.
func (p *limiterPool) cleanup() {
	for {
		time.Sleep(time.Minute)
		p.mu.Lock()
		for ip, v := range p.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(p.visitors, ip)
			}
		}
		p.mu.Unlock()
	}
}

// RateLimit returns a per-IP limiter middleware. A non-positive limit
// disables it.
func RateLimit(limit float64, burst int) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	pool := &limiterPool{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(limit),
		burst:    burst,
	}
	go pool.cleanup()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !pool.get(ip).Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
