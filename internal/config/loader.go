package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"mood-tracker/internal/logging"
)

// DefaultEnvFile is read when present; values already in the environment win.
const DefaultEnvFile = ".env"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
	envFile    string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config:     NewConfig(),
		configFile: os.Getenv("MT_CONFIG"),
		envFile:    DefaultEnvFile,
	}
}

// WithConfigFile sets a YAML configuration file to merge over the defaults
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithEnvFile sets the dotenv file; an empty path disables dotenv loading
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Merge the YAML config file, if any
// 3. Populate the environment from the dotenv file, if present
// 4. Override with environment variables
// 5. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if l.configFile != "" {
		if err := loadFile(l.configFile, l.config); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read env file %s: %w", l.envFile, err)
			}
			logging.Debugf("no %s file found, using process environment\n", l.envFile)
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		ApplyOverrides(config, overrides)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadFile(path string, cfg *Config) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	StoreBackend *string

	QuotesURL *string

	ServerAddr *string
	ServerMode *string

	TimeFormat   *string
	TimeLocation *string

	TaskNameMinLength *int
	TaskNameMaxLength *int

	Timeout *time.Duration
	Verbose *bool

	PlanDefaultFormat *string
}

// ApplyOverrides applies command line overrides to the configuration
func ApplyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.StoreBackend != nil {
		config.Store.Backend = *overrides.StoreBackend
	}

	if overrides.QuotesURL != nil {
		config.Quotes.URL = *overrides.QuotesURL
	}

	if overrides.ServerAddr != nil {
		config.Server.Addr = *overrides.ServerAddr
	}
	if overrides.ServerMode != nil {
		config.Server.Mode = *overrides.ServerMode
	}

	if overrides.TimeFormat != nil {
		config.Time.DisplayFormat = *overrides.TimeFormat
	}
	if overrides.TimeLocation != nil {
		config.Time.Location = *overrides.TimeLocation
	}

	if overrides.TaskNameMinLength != nil {
		config.Validation.TaskNameMinLength = *overrides.TaskNameMinLength
	}
	if overrides.TaskNameMaxLength != nil {
		config.Validation.TaskNameMaxLength = *overrides.TaskNameMaxLength
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}

	if overrides.PlanDefaultFormat != nil {
		config.Commands.PlanDefaultFormat = *overrides.PlanDefaultFormat
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}
