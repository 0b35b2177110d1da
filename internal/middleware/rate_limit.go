package middleware

import (
	"net/http"
	"time"

	pkghttp "github.com/BradenHooton/heavyprofile/pkg/http"
	"github.com/go-chi/httprate"
)

// RateLimitConfig holds coarse request rate limiting configuration.
// It sits in front of the login lockout and only throttles request floods.
type RateLimitConfig struct {
	RequestsPerMinute int
}

// DefaultLoginRateLimit allows bursts of typing mistakes but not scripted floods
func DefaultLoginRateLimit() RateLimitConfig {
	return RateLimitConfig{RequestsPerMinute: 30}
}

// DefaultLeadRateLimit limits the public contact form
func DefaultLeadRateLimit() RateLimitConfig {
	return RateLimitConfig{RequestsPerMinute: 5}
}

// DefaultUploadRateLimit limits admin uploads
func DefaultUploadRateLimit() RateLimitConfig {
	return RateLimitConfig{RequestsPerMinute: 20}
}

// RateLimitByClient rate limits requests by the same client identifier the login lockout uses
func RateLimitByClient(config RateLimitConfig, ipConfig *pkghttp.IPConfig) func(next http.Handler) http.Handler {
	return httprate.Limit(
		config.RequestsPerMinute,
		1*time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return pkghttp.ExtractClientIP(r, ipConfig), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			pkghttp.WriteMessageError(w, http.StatusTooManyRequests, "Слишком много запросов. Попробуйте позже.")
		}),
	)
}
