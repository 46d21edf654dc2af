package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for the mood tracker
type Config struct {
	Store       StoreConfig       `mapstructure:"store"`
	Spotify     SpotifyConfig     `mapstructure:"spotify"`
	Quotes      QuotesConfig      `mapstructure:"quotes"`
	Server      ServerConfig      `mapstructure:"server"`
	Time        TimeConfig        `mapstructure:"time"`
	Validation  ValidationConfig  `mapstructure:"validation"`
	Application ApplicationConfig `mapstructure:"application"`
	Commands    CommandsConfig    `mapstructure:"commands"`
}

// StoreConfig selects where the task list lives for the lifetime of the process
type StoreConfig struct {
	Backend      string        `mapstructure:"backend" env:"MT_STORE_BACKEND"`
	DSN          string        `mapstructure:"dsn" env:"MT_STORE_DSN"`
	QueryTimeout time.Duration `mapstructure:"query_timeout" env:"MT_STORE_QUERY_TIMEOUT"`
}

// SpotifyConfig holds the client-credentials pair and endpoints for playlist lookup
type SpotifyConfig struct {
	ClientID     string        `mapstructure:"client_id" env:"SPOTIFY_CLIENT_ID"`
	ClientSecret string        `mapstructure:"client_secret" env:"SPOTIFY_CLIENT_SECRET"`
	TokenURL     string        `mapstructure:"token_url" env:"MT_SPOTIFY_TOKEN_URL"`
	APIBaseURL   string        `mapstructure:"api_base_url" env:"MT_SPOTIFY_API_URL"`
	Timeout      time.Duration `mapstructure:"timeout" env:"MT_SPOTIFY_TIMEOUT"`
}

// QuotesConfig holds the motivational quote endpoint
type QuotesConfig struct {
	URL      string        `mapstructure:"url" env:"MT_QUOTES_URL"`
	Timeout  time.Duration `mapstructure:"timeout" env:"MT_QUOTES_TIMEOUT"`
	Fallback string        `mapstructure:"fallback" env:"MT_QUOTES_FALLBACK"`
}

// ServerConfig holds web server configuration
type ServerConfig struct {
	Addr string `mapstructure:"addr" env:"MT_SERVER_ADDR"`
	Mode string `mapstructure:"mode" env:"MT_SERVER_MODE"`
}

// TimeConfig holds time formatting configuration
type TimeConfig struct {
	DisplayFormat string `mapstructure:"display_format" env:"MT_TIME_DISPLAY_FORMAT"`
	// Location interprets deadlines entered without a zone, e.g. from a datetime-local input.
	Location string `mapstructure:"location" env:"MT_TIME_LOCATION"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskNameMinLength int `mapstructure:"task_name_min_length" env:"MT_VALIDATION_TASK_NAME_MIN"`
	TaskNameMaxLength int `mapstructure:"task_name_max_length" env:"MT_VALIDATION_TASK_NAME_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `mapstructure:"timeout" env:"MT_APP_TIMEOUT"`
	Verbose bool          `mapstructure:"verbose" env:"MT_APP_VERBOSE"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	PlanDefaultFormat string `mapstructure:"plan_default_format" env:"MT_PLAN_DEFAULT_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:      BackendMemory,
			DSN:          ":memory:",
			QueryTimeout: 5 * time.Second,
		},
		Spotify: SpotifyConfig{
			TokenURL:   "https://accounts.spotify.com/api/token",
			APIBaseURL: "https://api.spotify.com/v1",
			Timeout:    10 * time.Second,
		},
		Quotes: QuotesConfig{
			URL:      "https://api.quotable.io/random",
			Timeout:  10 * time.Second,
			Fallback: "Could not fetch a quote. Keep going anyway.",
		},
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Time: TimeConfig{
			DisplayFormat: "2006-01-02 15:04",
			Location:      "Local",
		},
		Validation: ValidationConfig{
			TaskNameMinLength: 1,
			TaskNameMaxLength: 255,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
		Commands: CommandsConfig{
			PlanDefaultFormat: "table",
		},
	}
}

// HasCredentials reports whether a client-credentials exchange is possible
func (s SpotifyConfig) HasCredentials() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// GetLocation resolves Time.Location, falling back to the local zone
func (c *Config) GetLocation() *time.Location {
	loc, err := loadLocation(c.Time.Location)
	if err != nil {
		return time.Local
	}
	return loc
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Store configuration
	if backend := os.Getenv("MT_STORE_BACKEND"); backend != "" {
		c.Store.Backend = strings.ToLower(backend)
	}
	if dsn := os.Getenv("MT_STORE_DSN"); dsn != "" {
		c.Store.DSN = dsn
	}
	if timeout := os.Getenv("MT_STORE_QUERY_TIMEOUT"); timeout != "" {
		c.Store.QueryTimeout = ParseDurationWithFallback(timeout, c.Store.QueryTimeout)
	}

	// Spotify configuration
	if id := os.Getenv("SPOTIFY_CLIENT_ID"); id != "" {
		c.Spotify.ClientID = id
	}
	if secret := os.Getenv("SPOTIFY_CLIENT_SECRET"); secret != "" {
		c.Spotify.ClientSecret = secret
	}
	if tokenURL := os.Getenv("MT_SPOTIFY_TOKEN_URL"); tokenURL != "" {
		c.Spotify.TokenURL = tokenURL
	}
	if apiURL := os.Getenv("MT_SPOTIFY_API_URL"); apiURL != "" {
		c.Spotify.APIBaseURL = apiURL
	}
	if timeout := os.Getenv("MT_SPOTIFY_TIMEOUT"); timeout != "" {
		c.Spotify.Timeout = ParseDurationWithFallback(timeout, c.Spotify.Timeout)
	}

	// Quotes configuration
	if url := os.Getenv("MT_QUOTES_URL"); url != "" {
		c.Quotes.URL = url
	}
	if timeout := os.Getenv("MT_QUOTES_TIMEOUT"); timeout != "" {
		c.Quotes.Timeout = ParseDurationWithFallback(timeout, c.Quotes.Timeout)
	}
	if fallback := os.Getenv("MT_QUOTES_FALLBACK"); fallback != "" {
		c.Quotes.Fallback = fallback
	}

	// Server configuration
	if addr := os.Getenv("MT_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if mode := os.Getenv("MT_SERVER_MODE"); mode != "" {
		c.Server.Mode = strings.ToLower(mode)
	}

	// Time configuration
	if format := os.Getenv("MT_TIME_DISPLAY_FORMAT"); format != "" {
		c.Time.DisplayFormat = format
	}
	if location := os.Getenv("MT_TIME_LOCATION"); location != "" {
		c.Time.Location = location
	}

	// Validation configuration
	if minLen := os.Getenv("MT_VALIDATION_TASK_NAME_MIN"); minLen != "" {
		c.Validation.TaskNameMinLength = ParseIntWithFallback(minLen, c.Validation.TaskNameMinLength)
	}
	if maxLen := os.Getenv("MT_VALIDATION_TASK_NAME_MAX"); maxLen != "" {
		c.Validation.TaskNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.TaskNameMaxLength)
	}

	// Application configuration
	if timeout := os.Getenv("MT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("MT_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	// Commands configuration
	if format := os.Getenv("MT_PLAN_DEFAULT_FORMAT"); format != "" {
		c.Commands.PlanDefaultFormat = strings.ToLower(format)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Store configuration
	switch c.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if !IsInMemoryDSN(c.Store.DSN) {
			return &ConfigError{Field: "store.dsn", Message: "sqlite backend only supports in-memory databases"}
		}
	default:
		return &ConfigError{Field: "store.backend", Message: "backend must be one of: memory, sqlite"}
	}
	if c.Store.QueryTimeout <= 0 {
		return &ConfigError{Field: "store.query_timeout", Message: "query timeout must be positive"}
	}

	// Spotify configuration
	if c.Spotify.TokenURL == "" {
		return &ConfigError{Field: "spotify.token_url", Message: "token URL cannot be empty"}
	}
	if c.Spotify.APIBaseURL == "" {
		return &ConfigError{Field: "spotify.api_base_url", Message: "API base URL cannot be empty"}
	}
	if c.Spotify.Timeout <= 0 {
		return &ConfigError{Field: "spotify.timeout", Message: "timeout must be positive"}
	}

	// Quotes configuration
	if c.Quotes.URL == "" {
		return &ConfigError{Field: "quotes.url", Message: "quotes URL cannot be empty"}
	}
	if c.Quotes.Timeout <= 0 {
		return &ConfigError{Field: "quotes.timeout", Message: "timeout must be positive"}
	}

	// Server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return &ConfigError{Field: "server.mode", Message: "mode must be one of: debug, release, test"}
	}

	// Time configuration
	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}
	if _, err := loadLocation(c.Time.Location); err != nil {
		return &ConfigError{Field: "time.location", Message: "unknown time zone " + strconv.Quote(c.Time.Location)}
	}

	// Validation configuration
	if c.Validation.TaskNameMinLength < 1 {
		return &ConfigError{Field: "validation.task_name_min_length", Message: "task name minimum length must be at least 1"}
	}
	if c.Validation.TaskNameMaxLength < c.Validation.TaskNameMinLength {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be greater than minimum length"}
	}

	// Application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	// Commands configuration
	switch c.Commands.PlanDefaultFormat {
	case "table", "csv", "json", "yaml":
	default:
		return &ConfigError{Field: "commands.plan_default_format", Message: "format must be one of: table, csv, json, yaml"}
	}

	return nil
}

// IsInMemoryDSN reports whether dsn names a SQLite database that lives only in memory
func IsInMemoryDSN(dsn string) bool {
	return dsn == ":memory:" ||
		strings.HasPrefix(dsn, "file::memory:") ||
		strings.Contains(dsn, "mode=memory")
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
