package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values of DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	DBDriver      string
	DatabaseURL   string // PGSQL_URL, used when DBDriver is postgres
	SQLitePath    string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret string
	JWTIssuer string

	// Optional Redis read-through cache for join code resolution. Empty disables it.
	RedisURL        string
	ScopeCacheTTL   time.Duration
	ScopeCacheLocal int
	// Bounds how long another instance may keep serving a deactivated scope.
	ScopeCacheLocalTTL time.Duration

	RateLimit          string // ulule formatted, e.g. "100-M"
	PosthogAPIKey      string
	CORSAllowedOrigins []string

	AccountingLocation *time.Location
	TxMaxRetries       uint64
	AuditLogPath       string // empty writes the security log to stderr
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DB_DRIVER", DriverPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_PATH", "claims_ledger.db")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SCOPE_CACHE_TTL", "5m")
	viper.SetDefault("SCOPE_CACHE_LOCAL_SIZE", 1000)
	viper.SetDefault("SCOPE_CACHE_LOCAL_TTL", "5s")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("ACCOUNTING_TIMEZONE", "UTC")
	viper.SetDefault("TX_MAX_RETRIES", 3)
	viper.SetDefault("AUDIT_LOG_PATH", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DBDriver:        strings.ToLower(viper.GetString("DB_DRIVER")),
		DatabaseURL:     viper.GetString("PGSQL_URL"),
		SQLitePath:      viper.GetString("SQLITE_PATH"),
		Port:            viper.GetString("PORT"),
		IsProduction:    viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		JWTIssuer:       viper.GetString("JWT_ISSUER"),
		RedisURL:        viper.GetString("REDIS_URL"),
		ScopeCacheLocal: viper.GetInt("SCOPE_CACHE_LOCAL_SIZE"),
		RateLimit:       viper.GetString("RATE_LIMIT"),
		PosthogAPIKey:   viper.GetString("POSTHOG_API_KEY"),
		TxMaxRetries:    uint64(max(viper.GetInt("TX_MAX_RETRIES"), 0)),
		AuditLogPath:    viper.GetString("AUDIT_LOG_PATH"),
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH must be set when DB_DRIVER is %s", DriverSQLite)
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	ttlStr := viper.GetString("SCOPE_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 5 * time.Minute
		log.Printf("Warning: Invalid value for SCOPE_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl)
	}
	cfg.ScopeCacheTTL = ttl

	localTTLStr := viper.GetString("SCOPE_CACHE_LOCAL_TTL")
	localTTL, err := time.ParseDuration(localTTLStr)
	if err != nil || localTTL <= 0 {
		localTTL = 5 * time.Second
		log.Printf("Warning: Invalid value for SCOPE_CACHE_LOCAL_TTL ('%s'). Defaulting to %s.\n", localTTLStr, localTTL)
	}
	cfg.ScopeCacheLocalTTL = min(localTTL, ttl)

	tz := viper.GetString("ACCOUNTING_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid ACCOUNTING_TIMEZONE %q: %w", tz, err)
	}
	cfg.AccountingLocation = loc

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
