package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-session-secret-of-40-characters!!!!"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("DB_PASSWORD", "test")
}

func TestServerConfig_Timeouts_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	tests := []struct {
		name     string
		actual   time.Duration
		expected time.Duration
	}{
		{"ReadTimeout", cfg.Server.ReadTimeout, 15 * time.Second},
		{"WriteTimeout", cfg.Server.WriteTimeout, 15 * time.Second},
		{"IdleTimeout", cfg.Server.IdleTimeout, 60 * time.Second},
	}

	for _, tt := range tests {
		if tt.actual != tt.expected {
			t.Errorf("%s: got %v, want %v", tt.name, tt.actual, tt.expected)
		}
	}
}

func TestServerConfig_Timeouts_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_READ_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	// Invalid duration should fall back to default
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout with invalid value: got %v, want %v", cfg.Server.ReadTimeout, 15*time.Second)
	}
}

func TestLoginConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Login.MaxAttempts)
	assert.Equal(t, 24*time.Hour, cfg.Login.LockoutDuration)
	assert.Equal(t, 24*time.Hour, cfg.Login.AttemptWindow)
	assert.Equal(t, 10*time.Minute, cfg.Login.SweepInterval)
	assert.Equal(t, 5*time.Second, cfg.Login.CredentialLookupTimeout)
	assert.Equal(t, AttemptStoreMemory, cfg.Login.AttemptStore)
	assert.True(t, cfg.Login.TrustProxyHeaders)
	assert.Empty(t, cfg.Login.TrustedProxies)
}

func TestLoginConfig_WindowFollowsLockout(t *testing.T) {
	setRequired(t)
	t.Setenv("LOGIN_LOCKOUT_DURATION", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Login.LockoutDuration)
	assert.Equal(t, time.Hour, cfg.Login.AttemptWindow)
}

func TestLoginConfig_CustomValues(t *testing.T) {
	setRequired(t)
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("LOGIN_ATTEMPT_WINDOW", "30m")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1 ,")
	t.Setenv("TRUST_PROXY_HEADERS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Login.MaxAttempts)
	assert.Equal(t, 30*time.Minute, cfg.Login.AttemptWindow)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Login.TrustedProxies)
	assert.False(t, cfg.Login.TrustProxyHeaders)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing session secret", map[string]string{"SESSION_SECRET": "", "DB_PASSWORD": "test"}},
		{"short session secret", map[string]string{"SESSION_SECRET": "short", "DB_PASSWORD": "test"}},
		{"short secret in production", map[string]string{"SESSION_SECRET": "sixteen-chars-ok!", "DB_PASSWORD": "test", "ENV": "production"}},
		{"missing database credentials", map[string]string{"DB_PASSWORD": "", "DATABASE_URL": ""}},
		{"zero max attempts", map[string]string{"LOGIN_MAX_ATTEMPTS": "0"}},
		{"unknown attempt store", map[string]string{"ATTEMPT_STORE": "memcached"}},
		{"redis store without url", map[string]string{"ATTEMPT_STORE": "redis"}},
		{"s3 upload without bucket", map[string]string{"UPLOAD_BACKEND": "s3"}},
		{"unknown upload backend", map[string]string{"UPLOAD_BACKEND": "ftp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DatabaseCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL or DB_PASSWORD is required")

	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/n")
	_, err = Load()
	assert.NoError(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DSN())

	cfg.URL = "postgres://u:p@db/n"
	assert.Equal(t, "postgres://u:p@db/n", cfg.DSN())
}

func TestSessionConfig_CookieSecureFollowsEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Session.CookieSecure)
	assert.True(t, cfg.Server.IsProduction())
}
