package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	visitorTTL    = 10 * time.Minute
	sweepInterval = 5 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	last    time.Time
}

type visitorLimiter struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	visitors  map[string]*limiterEntry
	lastSweep time.Time
}

func (v *visitorLimiter) allow(ip string, now time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if now.Sub(v.lastSweep) > sweepInterval {
		for k, e := range v.visitors {
			if now.Sub(e.last) > visitorTTL {
				delete(v.visitors, k)
			}
		}
		v.lastSweep = now
	}

	le, ok := v.visitors[ip]
	if !ok {
		le = &limiterEntry{limiter: rate.NewLimiter(v.rps, v.burst)}
		v.visitors[ip] = le
	}
	le.last = now
	return le.limiter.AllowN(now, 1)
}

// clientIP resolves the address a request is rate limited by. X-Forwarded-For
// is read only when the direct peer is a trusted proxy, walking hops from the
// right and returning the first untrusted one.
type clientIP struct {
	trusted []netip.Prefix
}

func newClientIP(proxies []string) clientIP {
	var c clientIP
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if pfx, err := netip.ParsePrefix(p); err == nil {
			c.trusted = append(c.trusted, pfx.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(p); err == nil {
			addr = addr.Unmap()
			c.trusted = append(c.trusted, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return c
}

func (c clientIP) isTrusted(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, pfx := range c.trusted {
		if pfx.Contains(addr) {
			return true
		}
	}
	return false
}

func (c clientIP) resolve(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if len(c.trusted) == 0 {
		return host
	}
	peer, err := netip.ParseAddr(host)
	if err != nil || !c.isTrusted(peer) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			return host
		}
		if !c.isTrusted(hop) {
			return hop.Unmap().String()
		}
	}
	return host
}

// RateLimit applies an IP-based token bucket limiter. rps <= 0 disables it.
// trustedProxies lists the IPs or CIDRs whose X-Forwarded-For is honored.
func RateLimit(rps float64, burst int, trustedProxies []string) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	vl := &visitorLimiter{
		rps:       rate.Limit(rps),
		burst:     burst,
		visitors:  map[string]*limiterEntry{},
		lastSweep: time.Now(),
	}
	ips := newClientIP(trustedProxies)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !vl.allow(ips.resolve(r), time.Now()) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"msg":"Too many requests"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
