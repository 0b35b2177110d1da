package http

import (
	"net"
	"net/http"
	"strings"
	"unicode/utf8"
)

// UnknownClient is the identifier shared by all requests that carry no usable address.
const UnknownClient = "unknown"

// maxClientIDLen bounds identifiers taken from request headers.
const maxClientIDLen = 128

// IPConfig holds configuration for IP extraction and validation
type IPConfig struct {
	// TrustProxyHeaders enables X-Forwarded-For and X-Real-IP. Only safe behind a
	// reverse proxy that overwrites these headers.
	TrustProxyHeaders bool
	// TrustedProxies limits header trust to peers in these CIDR ranges. Empty means any peer.
	TrustedProxies []string
}

// ExtractClientIP derives the client identifier used for login rate limiting.
//
// Flow when proxy headers are trusted for this peer:
// 1. First entry of X-Forwarded-For
// 2. X-Real-IP
// 3. UnknownClient
//
// Otherwise the peer address from RemoteAddr is used.
func ExtractClientIP(r *http.Request, config *IPConfig) string {
	remoteIP := getRemoteAddr(r)

	if config == nil || !config.TrustProxyHeaders {
		return remoteIP
	}
	if len(config.TrustedProxies) > 0 && !isTrustedProxy(remoteIP, config.TrustedProxies) {
		return remoteIP
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return clampClientID(first)
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return clampClientID(xri)
	}

	return UnknownClient
}

// getRemoteAddr extracts the IP address from RemoteAddr (removing port if present)
func getRemoteAddr(r *http.Request) string {
	if r.RemoteAddr != "" {
		if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return ip
		}
		return r.RemoteAddr
	}
	return UnknownClient
}

// isTrustedProxy checks if an IP address is within any of the trusted proxy CIDR ranges
func isTrustedProxy(ip string, trustedProxies []string) bool {
	clientIP := net.ParseIP(ip)
	if clientIP == nil {
		return false
	}

	for _, cidr := range trustedProxies {
		if !strings.Contains(cidr, "/") {
			if proxyIP := net.ParseIP(cidr); proxyIP != nil && proxyIP.Equal(clientIP) {
				return true
			}
			continue
		}
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			continue // Skip invalid CIDR ranges
		}
		if ipNet.Contains(clientIP) {
			return true
		}
	}

	return false
}

// clampClientID cuts id to at most maxClientIDLen bytes on a rune boundary.
func clampClientID(id string) string {
	if len(id) <= maxClientIDLen {
		return id
	}
	end := maxClientIDLen
	for end > 0 && !utf8.RuneStart(id[end]) {
		end--
	}
	return id[:end]
}
