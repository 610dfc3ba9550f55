package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"kudoswall/internal/apperrors"
	"kudoswall/internal/cache"
	"kudoswall/internal/logger"
)

// RateLimit limits requests per route scope and client IP. The scope is the
// formId path variable when present. Forwarded headers are only read from
// peers inside trustedProxies. Redis failures let the request through; a nil
// limiter disables the check.
func RateLimit(limiter cache.RateLimiter, trustedProxies []netip.Prefix, name string, limit int, window time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("%s:%s:%s", name, mux.Vars(r)["formId"], clientIP(r, trustedProxies))

			allowed, retryAfter, err := limiter.Allow(r.Context(), key, limit, window)
			if err != nil {
				logger.GetLogger().Warnw("Rate limit check failed", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				seconds := int(retryAfter.Round(time.Second).Seconds())
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
				writeError(w, apperrors.RateLimited(fmt.Sprintf("retry in %d seconds", seconds)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the connection address unless the peer is a trusted
// proxy. Behind one, X-Forwarded-For is walked from the right and the first
// untrusted hop wins; X-Real-IP is the fallback.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !isTrusted(host, trusted) {
		return host
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !isTrusted(hop, trusted) {
				return hop
			}
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return host
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	if len(trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
