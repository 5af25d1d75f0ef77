// Package config provides configuration loading for flowmock.
package config

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/flowmock/internal/logging"
)

// Config is the root flowmock configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Instance InstanceConfig `koanf:"instance"`
	Logging  logging.Config `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// InstanceConfig selects which mock instance this process serves.
type InstanceConfig struct {
	ID   string `koanf:"id"`
	Seed bool   `koanf:"seed"`
}

// NewDefaultConfig returns config with defaults applied.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Instance: InstanceConfig{
			ID:   "default",
			Seed: false,
		},
		Logging: *logging.NewDefaultConfig(),
	}
}

// applyDefaults fills in zero values left after loading.
func applyDefaults(cfg *Config) {
	def := NewDefaultConfig()
	if cfg.Server.Host == "" {
		cfg.Server.Host = def.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if cfg.Instance.ID == "" {
		cfg.Instance.ID = def.Instance.ID
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Instance.ID == "" {
		return fmt.Errorf("instance id must not be empty")
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
