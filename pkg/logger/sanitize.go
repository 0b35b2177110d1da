package logger

import (
	"log/slog"
	"strings"
	"unicode"
)

// MaskPhone hides every digit except the last two, keeping the formatting.
//
//	"+7 (999) 123-45-67" -> "+* (***) ***-**-67"
func MaskPhone(phone string) string {
	total := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			total++
		}
	}
	if total <= 2 {
		return strings.Repeat("*", len(phone))
	}

	seen := 0
	return strings.Map(func(r rune) rune {
		if !unicode.IsDigit(r) {
			return r
		}
		seen++
		if seen > total-2 {
			return r
		}
		return '*'
	}, phone)
}

// RedactedAttr hides value outside development.
func RedactedAttr(key, value, env string) slog.Attr {
	if env == "production" {
		return slog.String(key, "[REDACTED]")
	}
	return slog.String(key, value)
}

var sensitiveQueryKeys = []string{"password", "token", "secret", "api_key", "apikey", "auth", "phone"}

// SanitizeQueryString reports whether a raw query mentions a sensitive key
// and should be dropped from request logs.
func SanitizeQueryString(rawQuery string) bool {
	q := strings.ToLower(rawQuery)
	for _, key := range sensitiveQueryKeys {
		if strings.Contains(q, key) {
			return true
		}
	}
	return false
}
