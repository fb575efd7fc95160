// Package postgres owns the process-wide database handle. The handle is
// opened once in main, injected into repositories, and closed on shutdown.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

type Config struct {
	Host    string
	Port    int
	User    string
	Pass    string
	DB      string
	SSLMode string
}

func (c Config) dsn() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Pass, c.DB, c.SSLMode,
	)
}

func Open(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// HealthCheck verifies the handle can reach the database and reports the
// round-trip latency.
func HealthCheck(ctx context.Context, db *sql.DB) (time.Duration, error) {
	start := time.Now()
	if err := db.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("postgres health check: %w", err)
	}
	return time.Since(start), nil
}
