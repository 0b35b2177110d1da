package http_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	pkghttp "github.com/BradenHooton/heavyprofile/pkg/http"
	"github.com/stretchr/testify/assert"
)

func TestExtractClientIP_ForwardedForFirstEntry(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/admin/auth", nil)
	req.RemoteAddr = "10.0.0.5:54321"
	req.Header.Set("X-Forwarded-For", " 203.0.113.42 , 203.0.113.43, 10.0.0.5")
	req.Header.Set("X-Real-IP", "198.51.100.1")

	ip := pkghttp.ExtractClientIP(req, &pkghttp.IPConfig{TrustProxyHeaders: true})

	assert.Equal(t, "203.0.113.42", ip)
}

func TestExtractClientIP_RealIPFallback(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.RemoteAddr = "10.0.0.5:54321"
	req.Header.Set("X-Real-IP", "198.51.100.1")

	ip := pkghttp.ExtractClientIP(req, &pkghttp.IPConfig{TrustProxyHeaders: true})

	assert.Equal(t, "198.51.100.1", ip)
}

func TestExtractClientIP_NoHeadersIsUnknown(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.RemoteAddr = "10.0.0.5:54321"

	ip := pkghttp.ExtractClientIP(req, &pkghttp.IPConfig{TrustProxyHeaders: true})

	assert.Equal(t, pkghttp.UnknownClient, ip)
}

func TestExtractClientIP_EmptyForwardedForFallsThrough(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("X-Forwarded-For", " , 203.0.113.9")

	ip := pkghttp.ExtractClientIP(req, &pkghttp.IPConfig{TrustProxyHeaders: true})

	assert.Equal(t, pkghttp.UnknownClient, ip)
}

// Headers are attacker controlled unless a proxy overwrites them.
func TestExtractClientIP_HeadersIgnoredWhenNotTrusted(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.10:54321"
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	req.Header.Set("X-Real-IP", "192.168.1.1")

	assert.Equal(t, "203.0.113.10", pkghttp.ExtractClientIP(req, &pkghttp.IPConfig{TrustProxyHeaders: false}))
	assert.Equal(t, "203.0.113.10", pkghttp.ExtractClientIP(req, nil))
}

func TestExtractClientIP_UntrustedPeerIgnoresHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.10:54321"
	req.Header.Set("X-Forwarded-For", "1.2.3.4")

	config := &pkghttp.IPConfig{
		TrustProxyHeaders: true,
		TrustedProxies:    []string{"10.0.0.0/8", "172.16.0.0/12", "127.0.0.1"},
	}

	assert.Equal(t, "203.0.113.10", pkghttp.ExtractClientIP(req, config))
}

func TestExtractClientIP_TrustedPeer(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		proxies    []string
		xff        string
		want       string
	}{
		{"cidr match", "10.0.0.5:1", []string{"10.0.0.0/8"}, "203.0.113.42", "203.0.113.42"},
		{"single ip", "127.0.0.1:1", []string{"127.0.0.1"}, "203.0.113.42", "203.0.113.42"},
		{"ipv6", "[::1]:1", []string{"::1/128"}, "2001:db8::1", "2001:db8::1"},
		{"invalid cidr", "10.0.0.5:1", []string{"not-a-cidr"}, "203.0.113.42", "10.0.0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			req.Header.Set("X-Forwarded-For", tt.xff)

			config := &pkghttp.IPConfig{TrustProxyHeaders: true, TrustedProxies: tt.proxies}
			assert.Equal(t, tt.want, pkghttp.ExtractClientIP(req, config))
		})
	}
}

func TestExtractClientIP_LongHeaderIsClamped(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", strings.Repeat("a", 1000))

	ip := pkghttp.ExtractClientIP(req, &pkghttp.IPConfig{TrustProxyHeaders: true})

	assert.Len(t, ip, 128)
}

func TestExtractClientIP_ClampKeepsRunesWhole(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/admin/auth", nil)
	req.Header.Set("X-Real-IP", strings.Repeat("a", 127)+"яя")

	ip := pkghttp.ExtractClientIP(req, &pkghttp.IPConfig{TrustProxyHeaders: true})

	assert.True(t, utf8.ValidString(ip))
	assert.Equal(t, strings.Repeat("a", 127), ip)
}
