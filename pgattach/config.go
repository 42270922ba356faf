package pgattach

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultHost           = "localhost"
	defaultPort           = uint16(5432)
	defaultMaxConnections = int32(5)
	defaultConnectTimeout = time.Second * 5
	defaultSSLMode        = "prefer"
)

// Config carries the connection parameters for building a PostgreSQL
// connection pool. The zero value is not usable; start from NewConfig.
//
// Config is a value type: all WithX setters return an updated copy and
// leave the receiver untouched.
type Config struct {
	database       string
	username       string
	password       string
	host           string
	port           uint16
	sslMode        string
	maxConnections int32
	connectTimeout time.Duration
}

// NewConfig returns a Config with default host, port, pool size,
// connect timeout and SSL mode. Database, username and password start
// empty and must be supplied before the configuration validates.
func NewConfig() Config {
	return Config{
		host:           defaultHost,
		port:           defaultPort,
		sslMode:        defaultSSLMode,
		maxConnections: defaultMaxConnections,
		connectTimeout: defaultConnectTimeout,
	}
}

// WithDatabase sets the database name.
func (c Config) WithDatabase(database string) Config {
	c.database = database
	return c
}

// WithUsername sets the username for login.
func (c Config) WithUsername(username string) Config {
	c.username = username
	return c
}

// WithPassword sets the password for login.
func (c Config) WithPassword(password string) Config {
	c.password = password
	return c
}

// WithHost sets the database host address.
func (c Config) WithHost(host string) Config {
	c.host = host
	return c
}

// WithPort sets the database port.
func (c Config) WithPort(port uint16) Config {
	c.port = port
	return c
}

// WithSSLMode sets the sslmode parameter of the connection string.
func (c Config) WithSSLMode(sslMode string) Config {
	c.sslMode = sslMode
	return c
}

// WithMaxConnections sets the pool's maximum connection count,
// clamped to at least one connection.
func (c Config) WithMaxConnections(maxConnections int32) Config {
	if maxConnections < 1 {
		maxConnections = 1
	}

	c.maxConnections = maxConnections

	return c
}

// WithConnectTimeout sets the timeout for establishing a single connection.
func (c Config) WithConnectTimeout(timeout time.Duration) Config {
	c.connectTimeout = timeout
	return c
}

// Database returns the configured database name.
func (c Config) Database() string { return c.database }

// Username returns the configured username.
func (c Config) Username() string { return c.username }

// Host returns the configured host address.
func (c Config) Host() string { return c.host }

// Port returns the configured port.
func (c Config) Port() uint16 { return c.port }

// SSLMode returns the configured sslmode parameter.
func (c Config) SSLMode() string { return c.sslMode }

// MaxConnections returns the configured pool size limit.
func (c Config) MaxConnections() int32 { return c.maxConnections }

// ConnectTimeout returns the configured connect timeout.
func (c Config) ConnectTimeout() time.Duration { return c.connectTimeout }

// Validate checks that all connection parameters are present.
// It reports the first missing field with a dedicated error value.
func (c Config) Validate() error {
	if c.database == "" {
		return ErrEmptyDatabaseName
	}

	if c.username == "" {
		return ErrEmptyUsername
	}

	if c.password == "" {
		return ErrEmptyPassword
	}

	if c.host == "" {
		return ErrEmptyHost
	}

	if c.port == 0 {
		return ErrInvalidPort
	}

	return nil
}

// DSN builds a PostgreSQL connection string from the configuration.
// Username, password and database name are URL-escaped to handle special
// characters, and IPv6 host addresses are bracketed.
func (c Config) DSN() string {
	sslMode := c.sslMode
	if sslMode == "" {
		sslMode = defaultSSLMode
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(c.username),
		url.QueryEscape(c.password),
		net.JoinHostPort(c.host, strconv.Itoa(int(c.port))),
		url.PathEscape(c.database),
		sslMode,
	)
}

// PoolConfig builds a pgxpool.Config from the configuration,
// applying the pool size limit and the connect timeout.
func (c Config) PoolConfig() (*pgxpool.Config, error) {
	poolConfig, parseErr := pgxpool.ParseConfig(c.DSN())
	if parseErr != nil {
		return nil, parseErr
	}

	poolConfig.MaxConns = c.maxConnections
	poolConfig.ConnConfig.ConnectTimeout = c.connectTimeout

	return poolConfig, nil
}
