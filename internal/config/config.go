package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Login    LoginConfig
	Session  SessionConfig
	Redis    RedisConfig
	Leads    LeadConfig
	Upload   UploadConfig
}

type DatabaseConfig struct {
	URL               string
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	SSLMode           string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	AutoMigrate       bool
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

// LoginConfig controls the admin login brute-force guard.
type LoginConfig struct {
	MaxAttempts             int
	LockoutDuration         time.Duration
	AttemptWindow           time.Duration
	SweepInterval           time.Duration
	CredentialLookupTimeout time.Duration
	AttemptStore            string // memory or redis
	TrustProxyHeaders       bool
	TrustedProxies          []string
	TimingDelayBaseMs       int
	TimingDelayRandomMs     int
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieSecure bool
}

type RedisConfig struct {
	URL string
}

// LeadConfig configures where contact form submissions are forwarded.
type LeadConfig struct {
	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIBase  string
	EmailTo          string
	EmailFrom        string
	AWSRegion        string
}

type UploadConfig struct {
	Backend     string // local, s3 or empty to disable uploads
	Dir         string
	PublicURL   string
	MaxBytes    int64
	S3Bucket    string
	S3PublicURL string
	AWSRegion   string
}

const (
	AttemptStoreMemory = "memory"
	AttemptStoreRedis  = "redis"

	UploadBackendLocal = "local"
	UploadBackendS3    = "s3"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	sessionSecret := getEnv("SESSION_SECRET", "")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	env := getEnv("ENV", "development")
	lockout := getEnvAsDuration("LOGIN_LOCKOUT_DURATION", 24*time.Hour)
	awsRegion := getEnv("AWS_REGION", "eu-central-1")

	cfg := &Config{
		Database: DatabaseConfig{
			URL:               getEnv("DATABASE_URL", ""),
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvAsInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			Name:              getEnv("DB_NAME", "heavyprofile"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 10)),
			MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 1)),
			MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 1*time.Minute),
			HealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", 1*time.Minute),
			AutoMigrate:       getEnvAsBool("AUTO_MIGRATE", false),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: parseAllowedOrigins(env),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Login: LoginConfig{
			MaxAttempts:             getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
			LockoutDuration:         lockout,
			AttemptWindow:           getEnvAsDuration("LOGIN_ATTEMPT_WINDOW", lockout),
			SweepInterval:           getEnvAsDuration("LOGIN_SWEEP_INTERVAL", 10*time.Minute),
			CredentialLookupTimeout: getEnvAsDuration("CREDENTIAL_LOOKUP_TIMEOUT", 5*time.Second),
			AttemptStore:            strings.ToLower(getEnv("ATTEMPT_STORE", AttemptStoreMemory)),
			TrustProxyHeaders:       getEnvAsBool("TRUST_PROXY_HEADERS", true),
			TrustedProxies:          getEnvAsList("TRUSTED_PROXIES"),
			TimingDelayBaseMs:       getEnvAsInt("AUTH_TIMING_DELAY_BASE_MS", 200),
			TimingDelayRandomMs:     getEnvAsInt("AUTH_TIMING_DELAY_RANDOM_MS", 100),
		},
		Session: SessionConfig{
			Secret:       sessionSecret,
			TTL:          getEnvAsDuration("SESSION_TTL", 12*time.Hour),
			CookieSecure: getEnvAsBool("COOKIE_SECURE", env == "production"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Leads: LeadConfig{
			TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
			TelegramAPIBase:  getEnv("TELEGRAM_API_BASE", "https://api.telegram.org"),
			EmailTo:          getEnv("LEAD_EMAIL_TO", ""),
			EmailFrom:        getEnv("LEAD_EMAIL_FROM", ""),
			AWSRegion:        awsRegion,
		},
		Upload: UploadConfig{
			Backend:     strings.ToLower(getEnv("UPLOAD_BACKEND", "")),
			Dir:         getEnv("UPLOAD_DIR", "./public/uploads"),
			PublicURL:   getEnv("UPLOAD_PUBLIC_URL", "/uploads"),
			MaxBytes:    int64(getEnvAsInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
			S3Bucket:    getEnv("S3_BUCKET", ""),
			S3PublicURL: getEnv("S3_PUBLIC_URL", ""),
			AWSRegion:   awsRegion,
		},
	}

	if cfg.Database.URL == "" && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DATABASE_URL or DB_PASSWORD is required")
	}

	if err := validateSessionSecret(sessionSecret, env); err != nil {
		return nil, err
	}

	if err := cfg.Login.validate(); err != nil {
		return nil, err
	}

	if cfg.Login.AttemptStore == AttemptStoreRedis && cfg.Redis.URL == "" {
		return nil, fmt.Errorf("REDIS_URL is required when ATTEMPT_STORE=redis")
	}

	switch cfg.Upload.Backend {
	case "", UploadBackendLocal:
	case UploadBackendS3:
		if cfg.Upload.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when UPLOAD_BACKEND=s3")
		}
	default:
		return nil, fmt.Errorf("unknown UPLOAD_BACKEND %q", cfg.Upload.Backend)
	}

	return cfg, nil
}

func (c *LoginConfig) validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must be at least 1 (got %d)", c.MaxAttempts)
	}
	if c.LockoutDuration <= 0 {
		return fmt.Errorf("LOGIN_LOCKOUT_DURATION must be positive")
	}
	if c.AttemptWindow <= 0 {
		return fmt.Errorf("LOGIN_ATTEMPT_WINDOW must be positive")
	}
	switch c.AttemptStore {
	case AttemptStoreMemory, AttemptStoreRedis:
	default:
		return fmt.Errorf("unknown ATTEMPT_STORE %q", c.AttemptStore)
	}
	return nil
}

// validateSessionSecret enforces minimum security standards for the session signing key
func validateSessionSecret(secret, env string) error {
	minLength := 16
	if env == "production" {
		minLength = 32
	}

	if len(secret) < minLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters in %s environment (got %d)",
			minLength, env, len(secret))
	}

	weakSecrets := []string{
		"secret", "test", "password", "12345", "changeme",
		"admin", "root", "default", "example",
	}

	secretLower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if secretLower == weak {
			return fmt.Errorf("SESSION_SECRET cannot be a common weak value")
		}
	}

	return nil
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the DB_* settings.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		return getEnvAsList("ALLOWED_ORIGINS")
	}

	// Development: allow localhost variants
	return []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:5173", // Vite default
		"http://127.0.0.1:3000",
		"http://127.0.0.1:8080",
		"http://127.0.0.1:5173",
	}
}
