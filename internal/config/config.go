package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Country  string    `mapstructure:"country"`
	CacheDir string    `mapstructure:"cache_dir"`
	Log      LogConfig `mapstructure:"log"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. Every setting is optional: when no
// config file exists along the search path, defaults apply. An explicit
// configPath that cannot be read is an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/cal2")
	}

	// Read environment variables (CAL2_COUNTRY, CAL2_CACHE_DIR, ...)
	v.SetEnvPrefix("cal2")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register keys so env-only values survive Unmarshal
	v.SetDefault("country", "")
	v.SetDefault("cache_dir", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", c.Log.Level)
	}
	return nil
}

// CacheDirOrDefault returns the configured cache directory, falling back
// to the platform user config directory when unset.
func (c *Config) CacheDirOrDefault() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return dir, nil
}
