package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr         string
	LogLevel     string
	CookieSecure bool

	API          APIConfig
	Redis        RedisConfig
	Database     DatabaseConfig
	Audit        AuditConfig
	Registration RegistrationConfig
	Login        LoginConfig
}

// APIConfig points at the external note/billing API server.
type APIConfig struct {
	BaseURL          string
	Timeout          time.Duration
	FailureThreshold int
	Cooldown         time.Duration
}

// RedisConfig enables the Redis-backed session store and taken-domain set.
// An empty URL keeps everything in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig is used by the postgres registration submitter.
type DatabaseConfig struct {
	URL string
}

// AuditConfig enables Kafka audit publishing when Brokers is non-empty.
type AuditConfig struct {
	Brokers []string
	Topic   string
}

// Submitter modes for the registration collaborator.
const (
	SubmitterMock     = "mock"
	SubmitterAPI      = "api"
	SubmitterPostgres = "postgres"
)

// RegistrationConfig tunes the tenant registration wizard.
type RegistrationConfig struct {
	Submitter         string
	SubmitDelay       time.Duration
	SubmitTimeout     time.Duration
	DomainDebounce    time.Duration
	DomainLookupDelay time.Duration
	TakenDomains      []string
	WizardTTL         time.Duration
}

// LoginConfig drives the cosmetic attempt counter shown on the login page.
type LoginConfig struct {
	MaxAttempts     int
	LockoutDuration time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:         getString("TENANTNOTES_ADDR", ":8080"),
		LogLevel:     getString("LOG_LEVEL", "info"),
		CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
		API: APIConfig{
			BaseURL:          strings.TrimRight(getString("API_BASE_URL", "http://localhost:5000/api"), "/"),
			Timeout:          getDuration("API_TIMEOUT", 10*time.Second),
			FailureThreshold: getInt("API_FAILURE_THRESHOLD", 5),
			Cooldown:         getDuration("API_COOLDOWN", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Audit: AuditConfig{
			Brokers: getList("KAFKA_BROKERS", nil),
			Topic:   getString("AUDIT_TOPIC", "tenantnotes.audit"),
		},
		Registration: RegistrationConfig{
			Submitter:         getString("REGISTRATION_SUBMITTER", SubmitterMock),
			SubmitDelay:       getDuration("REGISTRATION_SUBMIT_DELAY", 3*time.Second),
			SubmitTimeout:     getDuration("REGISTRATION_SUBMIT_TIMEOUT", 30*time.Second),
			DomainDebounce:    getDuration("DOMAIN_DEBOUNCE", 500*time.Millisecond),
			DomainLookupDelay: getDuration("DOMAIN_LOOKUP_DELAY", time.Second),
			TakenDomains:      getList("TAKEN_DOMAINS", []string{"example.com", "test.com"}),
			WizardTTL:         getDuration("WIZARD_TTL", 30*time.Minute),
		},
		Login: LoginConfig{
			MaxAttempts:     getInt("LOGIN_MAX_ATTEMPTS", 5),
			LockoutDuration: getDuration("LOGIN_LOCKOUT", 5*time.Minute),
		},
	}
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
