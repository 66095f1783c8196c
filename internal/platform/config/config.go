package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	IsProduction    bool
	LogLevel        string
	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`

	// Upstream REST backend
	BackendBaseURL string
	BackendTimeout time.Duration
	BackendRPS     float64
	BackendBurst   int

	// Console session tokens
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Wizard behaviour
	WizardSessionTTL   time.Duration
	ReferenceCacheTTL  time.Duration
	SearchDebounce     time.Duration
	MaxUploadFiles     int
	MaxUploadFileBytes int64

	// Audit journal
	DatabaseURL        string
	EnableAuditJournal bool
	MigrationsPath     string

	RateLimit       string // ulule/limiter formatted rate, e.g. "100-M"
	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`
	PosthogEndpoint string `mapstructure:"POSTHOG_ENDPOINT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		FrontendBaseURL:    v.GetString("FRONTEND_BASE_URL"),
		BackendBaseURL:     v.GetString("BACKEND_BASE_URL"),
		BackendRPS:         v.GetFloat64("BACKEND_RPS"),
		BackendBurst:       v.GetInt("BACKEND_BURST"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		MaxUploadFiles:     v.GetInt("MAX_UPLOAD_FILES"),
		MaxUploadFileBytes: v.GetInt64("MAX_UPLOAD_FILE_BYTES"),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		EnableAuditJournal: v.GetBool("ENABLE_AUDIT_JOURNAL"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    v.GetString("POSTHOG_ENDPOINT"),
	}

	cfg.BackendTimeout = durationOr(v, "BACKEND_TIMEOUT", 15*time.Second)
	cfg.JWTExpiryDuration = durationOr(v, "JWT_EXPIRY_DURATION", time.Hour*8)
	cfg.WizardSessionTTL = durationOr(v, "WIZARD_SESSION_TTL", time.Hour)
	cfg.ReferenceCacheTTL = durationOr(v, "REFERENCE_CACHE_TTL", 5*time.Minute)
	cfg.SearchDebounce = durationOr(v, "SEARCH_DEBOUNCE", 300*time.Millisecond)

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.BackendBaseURL == "" {
		log.Println("Warning: BACKEND_BASE_URL environment variable not set.")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.MaxUploadFiles <= 0 {
		cfg.MaxUploadFiles = 5
	}
	if cfg.EnableAuditJournal && cfg.DatabaseURL == "" {
		log.Println("Warning: ENABLE_AUDIT_JOURNAL is set but PGSQL_URL is empty, audit journal disabled.")
		cfg.EnableAuditJournal = false
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:5173")
	v.SetDefault("BACKEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("BACKEND_TIMEOUT", "15s")
	v.SetDefault("BACKEND_RPS", 20)
	v.SetDefault("BACKEND_BURST", 40)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "8h")
	v.SetDefault("JWT_ISSUER", "asset-movements-console")
	v.SetDefault("WIZARD_SESSION_TTL", "1h")
	v.SetDefault("REFERENCE_CACHE_TTL", "5m")
	v.SetDefault("SEARCH_DEBOUNCE", "300ms")
	v.SetDefault("MAX_UPLOAD_FILES", 5)
	v.SetDefault("MAX_UPLOAD_FILE_BYTES", 10<<20)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_AUDIT_JOURNAL", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
