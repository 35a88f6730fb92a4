package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads the configuration from file. Without an explicit path a missing
// config file is not an error; the defaults make the CLI work out of the box.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".aniquery"))
		}

		// Check /etc
		v.AddConfigPath("/etc/aniquery/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Client defaults
	v.SetDefault("anilist.timeout", 30)
	v.SetDefault("anilist.decode", "buffered")

	// Search defaults
	v.SetDefault("search.allow_adult", false)
	v.SetDefault("search.include_novels", false)
	v.SetDefault("search.per_page", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.AniList.Timeout <= 0 {
		return fmt.Errorf("anilist.timeout must be positive, got %d", cfg.AniList.Timeout)
	}

	if cfg.AniList.Decode != "buffered" && cfg.AniList.Decode != "streaming" {
		return fmt.Errorf("anilist.decode must be %q or %q, got %q", "buffered", "streaming", cfg.AniList.Decode)
	}

	if cfg.Search.PerPage < 1 || cfg.Search.PerPage > 50 {
		return fmt.Errorf("search.per_page must be between 1 and 50, got %d", cfg.Search.PerPage)
	}

	return nil
}
