package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	Postgres Postgres

	SessionTTL      time.Duration
	AdminSessionTTL time.Duration

	BreakGlass BreakGlass
}

type Postgres struct {
	Host    string
	Port    int
	User    string
	Pass    string
	DB      string
	SSLMode string
}

// BreakGlass holds the emergency admin credentials. They come from protected
// deployment configuration, never from source. Break-glass access stays
// disabled unless both values are set.
type BreakGlass struct {
	User string
	Pass string
}

func (b BreakGlass) Enabled() bool {
	return b.User != "" && b.Pass != ""
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		Postgres: Postgres{
			Host:    getEnv("POSTGRES_HOST", "localhost"),
			Port:    getEnvInt("POSTGRES_PORT", 5432),
			User:    getEnv("POSTGRES_USER", "storefront"),
			Pass:    getEnv("POSTGRES_PASSWORD", ""),
			DB:      getEnv("POSTGRES_DB", "storefront_db"),
			SSLMode: getEnv("POSTGRES_SSLMODE", "disable"),
		},
		SessionTTL:      getEnvDuration("SESSION_TTL", 24*time.Hour),
		AdminSessionTTL: getEnvDuration("ADMIN_SESSION_TTL", 15*time.Minute),
		BreakGlass: BreakGlass{
			User: getEnv("BREAK_GLASS_USER", ""),
			Pass: getEnv("BREAK_GLASS_PASSWORD", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}
