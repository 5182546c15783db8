package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	// Optional Redis, used for rate limiting and idempotency replay when set.
	RedisURL           string
	RateLimit          string // ulule/limiter format, e.g. "100-M"
	CORSAllowedOrigins []string
	IdempotencyTTL     time.Duration

	// Claim preparation
	CollaboratorTimeout time.Duration
	ExtraCPTCodes       []string
	ExtraPayers         []string
	ParallelValidation  bool

	// Tracing
	OTLPEndpoint   string
	ServiceName    string
	ServiceVersion string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "clara-backend")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("IDEMPOTENCY_TTL", "24h")
	viper.SetDefault("COLLABORATOR_TIMEOUT", "5s")
	viper.SetDefault("EXTRA_CPT_CODES", "")
	viper.SetDefault("EXTRA_PAYERS", "")
	viper.SetDefault("PARALLEL_VALIDATION", false)
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	viper.SetDefault("SERVICE_NAME", "clara-backend")
	viper.SetDefault("SERVICE_VERSION", "dev")

	// Environment variables override .env values and defaults.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Rate limiting and idempotency use in-process storage.")
	}
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.IdempotencyTTL = durationOrDefault("IDEMPOTENCY_TTL", 24*time.Hour)
	cfg.CollaboratorTimeout = durationOrDefault("COLLABORATOR_TIMEOUT", 5*time.Second)

	cfg.ExtraCPTCodes = splitList(viper.GetString("EXTRA_CPT_CODES"))
	cfg.ExtraPayers = splitList(viper.GetString("EXTRA_PAYERS"))
	cfg.ParallelValidation = viper.GetBool("PARALLEL_VALIDATION")

	cfg.OTLPEndpoint = viper.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.ServiceName = viper.GetString("SERVICE_NAME")
	cfg.ServiceVersion = viper.GetString("SERVICE_VERSION")

	return cfg, nil
}

// durationOrDefault parses key as a duration (e.g. "5s", "1h"), warning and falling back on bad input.
func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

// splitList turns "a, b,,c" into [a b c].
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
