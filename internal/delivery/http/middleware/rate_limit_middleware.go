package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"online-health-consultation/internal/service"
	"online-health-consultation/pkg/response"

	"github.com/sirupsen/logrus"
)

// TrustedProxies lists the peers allowed to report the client address through
// X-Forwarded-For or X-Real-Ip.
type TrustedProxies struct {
	prefixes []netip.Prefix
}

// ParseTrustedProxies accepts single addresses and CIDR ranges.
func ParseTrustedProxies(entries []string) (*TrustedProxies, error) {
	trusted := &TrustedProxies{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
			}
			trusted.prefixes = append(trusted.prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		trusted.prefixes = append(trusted.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return trusted, nil
}

func (t *TrustedProxies) contains(ip string) bool {
	if t == nil {
		return false
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range t.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the socket peer unless that peer is a trusted proxy. Behind
// a trusted proxy the X-Forwarded-For chain is walked from the right and the
// first untrusted hop wins, falling back to X-Real-Ip.
func (t *TrustedProxies) ClientIP(r *http.Request) string {
	peer := RemoteIP(r)
	if !t.contains(peer) {
		return peer
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if _, err := netip.ParseAddr(hop); err != nil {
				break
			}
			if !t.contains(hop) || i == 0 {
				return hop
			}
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-Ip")); realIP != "" {
		if _, err := netip.ParseAddr(realIP); err == nil {
			return realIP
		}
	}
	return peer
}

// RemoteIP is the host part of the socket address.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type RateLimitMiddleware struct {
	limiter service.RateLimiter
	proxies *TrustedProxies
	log     *logrus.Logger
}

func NewRateLimitMiddleware(limiter service.RateLimiter, proxies *TrustedProxies, log *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		proxies: proxies,
		log:     log,
	}
}

// Limit counts requests per client IP. If Redis is unreachable the request is
// let through.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter, err := m.limiter.Allow(r.Context(), m.proxies.ClientIP(r))
		if err != nil {
			m.log.Warnf("Failed to check rate limit: %+v", err)
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			response.TooManyRequests(w, "Too many requests, please try again later", retryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}
