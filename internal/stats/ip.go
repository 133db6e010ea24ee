package stats

import (
	"net"
	"net/http"
	"strings"
)

// IPResolver handles IP address extraction from HTTP requests.
type IPResolver struct {
	trustProxy bool
}

// NewIPResolver creates a new IP resolver. trustProxy enables the
// X-Forwarded-For and X-Real-IP headers.
func NewIPResolver(trustProxy bool) *IPResolver {
	return &IPResolver{
		trustProxy: trustProxy,
	}
}

// GetClientIP extracts the client IP address from the request.
//
// With trustProxy set, the first X-Forwarded-For entry or X-Real-IP is used
// when it parses as an IP. Otherwise the host part of RemoteAddr is returned.
func (resolver *IPResolver) GetClientIP(r *http.Request) string {
	if resolver.trustProxy {
		// Check X-Forwarded-For header (first IP in comma-separated list)
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
				return ip
			}
		}
		// Check X-Real-IP header
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			if ip := strings.TrimSpace(xri); net.ParseIP(ip) != nil {
				return ip
			}
		}
	}
	// Fall back to RemoteAddr, removing port if present
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
