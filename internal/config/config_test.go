package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultsAreValid(t *testing.T) {
	cfg := NewConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, ":memory:", cfg.Store.DSN)
	assert.Equal(t, "https://accounts.spotify.com/api/token", cfg.Spotify.TokenURL)
	assert.Equal(t, "https://api.quotable.io/random", cfg.Quotes.URL)
	assert.False(t, cfg.Spotify.HasCredentials())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("MT_STORE_BACKEND", "SQLite")
	t.Setenv("MT_STORE_QUERY_TIMEOUT", "2s")
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
	t.Setenv("MT_QUOTES_URL", "http://quotes.local/random")
	t.Setenv("MT_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("MT_TIME_LOCATION", "UTC")
	t.Setenv("MT_VALIDATION_TASK_NAME_MAX", "40")
	t.Setenv("MT_APP_TIMEOUT", "not-a-duration")
	t.Setenv("MT_APP_VERBOSE", "true")
	t.Setenv("MT_PLAN_DEFAULT_FORMAT", "JSON")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, 2*time.Second, cfg.Store.QueryTimeout)
	assert.True(t, cfg.Spotify.HasCredentials())
	assert.Equal(t, "http://quotes.local/random", cfg.Quotes.URL)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, time.UTC, cfg.GetLocation())
	assert.Equal(t, 40, cfg.Validation.TaskNameMaxLength)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout, "invalid duration keeps the default")
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "json", cfg.Commands.PlanDefaultFormat)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }, "store.backend"},
		{"sqlite on disk", func(c *Config) { c.Store.Backend = BackendSQLite; c.Store.DSN = "/tmp/tasks.db" }, "store.dsn"},
		{"zero query timeout", func(c *Config) { c.Store.QueryTimeout = 0 }, "store.query_timeout"},
		{"empty token url", func(c *Config) { c.Spotify.TokenURL = "" }, "spotify.token_url"},
		{"empty quotes url", func(c *Config) { c.Quotes.URL = "" }, "quotes.url"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"empty display format", func(c *Config) { c.Time.DisplayFormat = "" }, "time.display_format"},
		{"unknown zone", func(c *Config) { c.Time.Location = "Mars/Olympus" }, "time.location"},
		{"min length zero", func(c *Config) { c.Validation.TaskNameMinLength = 0 }, "validation.task_name_min_length"},
		{"max below min", func(c *Config) { c.Validation.TaskNameMaxLength = 0 }, "validation.task_name_max_length"},
		{"zero app timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
		{"bad plan format", func(c *Config) { c.Commands.PlanDefaultFormat = "xml" }, "commands.plan_default_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestConfig_SQLiteInMemoryDSNsAccepted(t *testing.T) {
	for _, dsn := range []string{":memory:", "file::memory:?cache=shared", "file:tasks?mode=memory&cache=shared"} {
		cfg := NewConfig()
		cfg.Store.Backend = BackendSQLite
		cfg.Store.DSN = dsn
		assert.NoError(t, cfg.Validate(), dsn)
	}
}

func TestConfig_GetLocation_FallsBackToLocal(t *testing.T) {
	cfg := NewConfig()
	cfg.Time.Location = "Nowhere/Special"
	assert.Equal(t, time.Local, cfg.GetLocation())
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	assert.Equal(t, "server.addr: listen address cannot be empty", err.Error())
}
