// Package config loads the TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"dailydraw/internal/gacha"
	"dailydraw/internal/models"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	Log     LogConfig     `toml:"log"`
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Draw    DrawConfig    `toml:"draw"`
	Catalog CatalogConfig `toml:"catalog"`
	Auth    AuthConfig    `toml:"auth"`
	Seed    SeedConfig    `toml:"seed"`
}

type LogConfig struct {
	Verbose bool   `toml:"verbose"`
	File    string `toml:"file"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
	// Mode is a gin mode: debug, release or test.
	Mode string `toml:"mode"`
}

type StorageConfig struct {
	Driver   string         `toml:"driver"`
	Postgres PostgresConfig `toml:"postgres"`
}

type PostgresConfig struct {
	DSN             string `toml:"dsn"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	Database        string `toml:"database"`
	SSLMode         string `toml:"sslmode"`
	PoolSize        int    `toml:"pool_size"`
	LogQueries      bool   `toml:"log_queries"`
	SlowQueryMillis int    `toml:"slow_query_ms"`
}

type DrawConfig struct {
	AllowClientSelection bool               `toml:"allow_client_selection"`
	Weights              map[string]float64 `toml:"weights"`
}

type CatalogConfig struct {
	SeedFile               string `toml:"seed_file"`
	CacheSize              int    `toml:"cache_size"`
	RefreshIntervalSeconds int    `toml:"refresh_interval_seconds"`
}

type AuthConfig struct {
	IdentityHeader  string `toml:"identity_header"`
	RequireIdentity bool   `toml:"require_identity"`
	AdminToken      string `toml:"admin_token"`
}

type SeedConfig struct {
	TestUser string `toml:"test_user"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	weights := make(map[string]float64)
	for rarity, weight := range gacha.DefaultWeights() {
		weights[string(rarity)] = weight
	}
	return &Config{
		Log:     LogConfig{Verbose: true},
		Server:  ServerConfig{Addr: ":8080", Mode: "release"},
		Storage: StorageConfig{Driver: DriverMemory, Postgres: PostgresConfig{Port: 5432, SSLMode: "disable", PoolSize: 10}},
		Draw:    DrawConfig{Weights: weights},
		Catalog: CatalogConfig{CacheSize: 128, RefreshIntervalSeconds: 600},
		Auth:    AuthConfig{IdentityHeader: "X-User-ID"},
	}
}

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to open config: %w", err)
	default:
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Storage.Postgres.DSN = dsn
	}
	if token := os.Getenv("DRAW_ADMIN_TOKEN"); token != "" {
		c.Auth.AdminToken = token
	}
}

// Validate checks values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverPostgres && c.Storage.Postgres.DSN == "" && c.Storage.Postgres.Host == "" {
		return errors.New("postgres storage needs a dsn or a host")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}
	if _, err := c.Weights(); err != nil {
		return err
	}
	if c.Auth.IdentityHeader == "" {
		return errors.New("auth.identity_header must not be empty")
	}
	return nil
}

// Weights converts the configured weight table.
func (c *Config) Weights() (gacha.Weights, error) {
	weights := make(gacha.Weights, len(c.Draw.Weights))
	for name, weight := range c.Draw.Weights {
		rarity, err := models.ParseRarity(name)
		if err != nil {
			return nil, fmt.Errorf("draw.weights: %w", err)
		}
		weights[rarity] = weight
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("draw.weights: %w", err)
	}
	return weights, nil
}

// RefreshInterval is how often the catalog cache is purged; zero disables it.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Catalog.RefreshIntervalSeconds) * time.Second
}

// PostgresDSN returns the explicit DSN or builds one from the parts.
func (c PostgresConfig) PostgresDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return dsn.String()
}

// SlowQuery is the threshold above which queries are logged as warnings.
func (c PostgresConfig) SlowQuery() time.Duration {
	return time.Duration(c.SlowQueryMillis) * time.Millisecond
}
