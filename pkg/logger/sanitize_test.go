package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+7 (999) 123-45-67", "+* (***) ***-**-67"},
		{"89991234567", "*********67"},
		{"12", "**"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskPhone(tt.in), tt.in)
	}
}

func TestRedactedAttr(t *testing.T) {
	assert.Equal(t, "[REDACTED]", RedactedAttr("username", "admin", "production").Value.String())
	assert.Equal(t, "admin", RedactedAttr("username", "admin", "development").Value.String())
}

func TestSanitizeQueryString(t *testing.T) {
	assert.True(t, SanitizeQueryString("password=x"))
	assert.True(t, SanitizeQueryString("Phone=123"))
	assert.False(t, SanitizeQueryString("type=privacy"))
	assert.False(t, SanitizeQueryString(""))
}
