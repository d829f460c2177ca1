package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level subtrack.yaml configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// DefaultOwner is applied when a request carries no X-Owner-ID
	// header. Single-user deployments set it once here; it is never a
	// compile-time constant.
	DefaultOwner   string   `yaml:"default_owner"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// StoreConfig locates the subscription database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Load reads a subtrack.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new deployment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			DefaultOwner:   "demo-user",
			AllowedOrigins: []string{"*"},
		},
		Store: StoreConfig{
			Path: "subtrack.db",
		},
	}
}
