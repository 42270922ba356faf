// Package config provides env-driven connection configurations for
// integration tests against a real Postgres instance.
package config

import (
	"os"
	"strconv"

	"github.com/attachio/gin-pgx-attach/pgattach"
)

const (
	envHost     = "PGATTACH_TEST_HOST"
	envPort     = "PGATTACH_TEST_PORT"
	envDatabase = "PGATTACH_TEST_DATABASE"
	envUsername = "PGATTACH_TEST_USERNAME"
	envPassword = "PGATTACH_TEST_PASSWORD"
)

// FromEnv builds a connection configuration from PGATTACH_TEST_* env vars.
// The second return value is false when PGATTACH_TEST_HOST is unset,
// which is the signal for integration tests to skip themselves.
func FromEnv() (pgattach.Config, bool) {
	host := os.Getenv(envHost)
	if host == "" {
		return pgattach.Config{}, false
	}

	cfg := pgattach.NewConfig().
		WithHost(host).
		WithPort(envPortOr(5432)).
		WithDatabase(envOr(envDatabase, "sessions")).
		WithUsername(envOr(envUsername, "test")).
		WithPassword(envOr(envPassword, "test")).
		WithSSLMode("disable")

	return cfg, true
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func envPortOr(fallback uint16) uint16 {
	value := os.Getenv(envPort)
	if value == "" {
		return fallback
	}

	port, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return fallback
	}

	return uint16(port)
}
