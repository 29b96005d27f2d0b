// Package config provides configuration loading for the ServiApp CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment names. Production tightens persistence permissions the same
// way the web client tightens cookie attributes.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all configuration for the CLI.
type Config struct {
	API   APIConfig   `mapstructure:"api"`
	State StateConfig `mapstructure:"state"`
	Env   string      `mapstructure:"environment"`
}

// APIConfig holds the remote backend configuration.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StateConfig holds local persistence configuration.
type StateConfig struct {
	Dir string `mapstructure:"dir"`
}

// IsProduction reports whether the CLI runs against the production backend.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads configuration from files and environment variables.
//
// Lookup order: ./serviapp.yaml, ~/.serviapp/config.yaml, then SERVIAPP_*
// environment variables on top.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".serviapp"))
	}

	v.SetEnvPrefix("SERVIAPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.State.Dir == "" {
		cfg.State.Dir = DefaultStateDir()
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://api.serviapp.com")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("environment", EnvDevelopment)
	v.SetDefault("state.dir", DefaultStateDir())
}

// DefaultStateDir returns the directory used for token and profile files.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".serviapp"
	}
	return filepath.Join(home, ".serviapp")
}
