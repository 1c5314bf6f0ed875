package config

import (
	"fmt"
	"time"
)

// Policy sources
const (
	PolicySourceBuiltin  = "builtin"
	PolicySourceFile     = "file"
	PolicySourcePostgres = "postgres"
)

type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DSN returns the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a redis host is configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Config is the service configuration assembled from the environment.
type Config struct {
	Port             string
	Env              string
	PolicySource     string
	PolicyFile       string
	DB               DBConfig
	Redis            RedisConfig
	QuoteCacheTTL    time.Duration
	StatsEnabled     bool
	JWTSecret        string
	CORSAllowOrigins string
	RateLimitMax     int
	RateLimitWindow  time.Duration
	BatchMaxStores   int
	BatchConcurrency int
}

// Load reads Config from the environment. Call LoadEnv first to pick up a
// .env file.
func Load() Config {
	return Config{
		Port:         GetEnv("PORT", "3000"),
		Env:          GetEnv("ENV", "development"),
		PolicySource: GetEnv("POLICY_SOURCE", PolicySourceBuiltin),
		PolicyFile:   GetEnv("POLICY_FILE", "policy.yaml"),
		DB: DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "storefront"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 2),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 5),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", ""),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},
		QuoteCacheTTL:    GetDurationEnv("QUOTE_CACHE_TTL", 10*time.Minute),
		StatsEnabled:     GetBoolEnv("QUOTE_STATS_ENABLED", true),
		JWTSecret:        GetEnv("JWT_SECRET", ""),
		CORSAllowOrigins: GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		RateLimitMax:     GetIntEnv("RATE_LIMIT_MAX", 120),
		RateLimitWindow:  GetDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		BatchMaxStores:   GetIntEnv("BATCH_MAX_STORES", 50),
		BatchConcurrency: GetIntEnv("BATCH_CONCURRENCY", 8),
	}
}
