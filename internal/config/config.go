package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	API         APIConfig   `yaml:"api"`
	Stages      []StageDef  `yaml:"stages"`
	Transitions Transitions `yaml:"transitions"`
	KeyMappings KeyMappings `yaml:"key_mappings"`
	Cache       CacheConfig `yaml:"cache"`
	ColorScheme ColorScheme `yaml:"theme"`
}

// APIConfig holds the backend connection settings. BaseURL and Token can be
// overridden by the FIRSAT_API_URL and FIRSAT_TOKEN environment variables
// (loaded from .env by main).
type APIConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Token    string        `yaml:"token"`
	TenantID int           `yaml:"tenant_id"`
	EventURL string        `yaml:"event_url"` // websocket change feed, empty disables it
	Timeout  time.Duration `yaml:"timeout"`
}

// CacheConfig controls the entity store's freshness policy and the local
// snapshot file used for offline rendering.
type CacheConfig struct {
	TTL          time.Duration `yaml:"ttl"`
	SnapshotPath string        `yaml:"snapshot_path"` // empty means ~/.firsat/snapshot.db
}

// loadEnvOverrides applies FIRSAT_* environment variables on top of the file
func loadEnvOverrides(config *Config) {
	if v := os.Getenv("FIRSAT_API_URL"); v != "" {
		config.API.BaseURL = v
	}
	if v := os.Getenv("FIRSAT_TOKEN"); v != "" {
		config.API.Token = v
	}
	if v := os.Getenv("FIRSAT_EVENT_URL"); v != "" {
		config.API.EventURL = v
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := Default()
		loadEnvOverrides(config)
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := Default()
		loadEnvOverrides(config)
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	loadEnvOverrides(&config)

	return &config, nil
}

// Default returns the built-in configuration: backend on localhost, the
// backend's stage enumeration, all transitions allowed.
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// applyDefaults fills in any missing values with defaults
func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:8000"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 10 * time.Second
	}
	if len(c.Stages) == 0 {
		c.Stages = defaultStageDefs()
	}
	if c.KeyMappings == (KeyMappings{}) {
		c.KeyMappings = DefaultKeyMappings()
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 30 * time.Second
	}
	c.ColorScheme.ApplyDefaults()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "firsat", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "firsat", "config.yaml"), nil
}
