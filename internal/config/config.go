package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	LogFormat              string   `mapstructure:"log_format"               validate:"required,oneof=json text"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// Host, port, user, password and name describe a PostgreSQL server; Path is
// only read when Driver is "sqlite".
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"   validate:"required,oneof=postgres sqlite"`
	Host     string `mapstructure:"host"     validate:"required_if=Driver postgres"`
	Port     int    `mapstructure:"port"     validate:"required_if=Driver postgres,gte=0,lt=65536"`
	User     string `mapstructure:"user"     validate:"required_if=Driver postgres"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"     validate:"required_if=Driver postgres"`
	SSLMode  string `mapstructure:"sslmode"  validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	Path     string `mapstructure:"path"     validate:"required_if=Driver sqlite"`
}

// URL builds the PostgreSQL connection string from the individual settings.
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.SSLMode != "" {
		u.RawQuery = "sslmode=" + url.QueryEscape(c.SSLMode)
	}
	return u.String()
}

// SafeURL is URL with the password masked, suitable for logs.
func (c DatabaseConfig) SafeURL() string {
	masked := c
	if masked.Password != "" {
		masked.Password = "****"
	}
	return masked.URL()
}

// DataSource returns the driver name and DSN to hand to sql.Open.
func (c DatabaseConfig) DataSource() (driver, dsn string, err error) {
	switch c.Driver {
	case DriverPostgres:
		return "pgx", c.URL(), nil
	case DriverSQLite:
		return "sqlite", c.Path, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}
