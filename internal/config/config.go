// Package config loads process configuration. Values cascade from
// defaults, then a .env file, then the environment, then command line
// flags applied through Overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full configuration shared by the server and the clients.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Client   ClientConfig
}

// ServerConfig controls the HTTP gateway.
type ServerConfig struct {
	Port            string
	WasmDir         string // static assets served at /
	ShutdownTimeout time.Duration
}

// DatabaseConfig selects the store. A postgres:// or postgresql:// URL
// selects PostgreSQL; anything else is a SQLite file path.
type DatabaseConfig struct {
	URL string
}

// ClientConfig is read by the gio and terminal clients.
type ClientConfig struct {
	APIBase string
}

// Overrides holds command line flag values. Nil fields leave the loaded
// value untouched.
type Overrides struct {
	Port            *string
	DatabaseURL     *string
	WasmDir         *string
	ShutdownTimeout *time.Duration
	APIBase         *string
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "3000",
			WasmDir:         filepath.Join(".", "web"),
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			URL: filepath.Join(".", "data", "tareas.db"),
		},
		Client: ClientConfig{
			APIBase: "http://localhost:3000/",
		},
	}
}

// Load reads .env (if present) and the environment on top of defaults.
func Load() (*Config, error) {
	return LoadWithOverrides(nil)
}

// LoadWithOverrides is Load followed by flag overrides and validation.
func LoadWithOverrides(o *Overrides) (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	cfg := New()
	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	cfg.apply(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnvironment overrides fields from PORT, DATABASE_URL, WASM_DIR,
// SHUTDOWN_TIMEOUT and API_BASE.
func (c *Config) LoadFromEnvironment() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("WASM_DIR"); v != "" {
		c.Server.WasmDir = v
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		c.Server.ShutdownTimeout = d
	}
	if v := os.Getenv("API_BASE"); v != "" {
		c.Client.APIBase = v
	}
	return nil
}

func (c *Config) apply(o *Overrides) {
	if o == nil {
		return
	}
	if o.Port != nil {
		c.Server.Port = *o.Port
	}
	if o.DatabaseURL != nil {
		c.Database.URL = *o.DatabaseURL
	}
	if o.WasmDir != nil {
		c.Server.WasmDir = *o.WasmDir
	}
	if o.ShutdownTimeout != nil {
		c.Server.ShutdownTimeout = *o.ShutdownTimeout
	}
	if o.APIBase != nil {
		c.Client.APIBase = *o.APIBase
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Server.Port)
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("database url is required")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative: %s", c.Server.ShutdownTimeout)
	}
	if c.Client.APIBase != "" && !strings.HasSuffix(c.Client.APIBase, "/") {
		c.Client.APIBase += "/"
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// IsPostgres reports whether the database URL selects PostgreSQL.
func (c *Config) IsPostgres() bool {
	u := c.Database.URL
	return strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://")
}
