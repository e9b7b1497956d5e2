// Package config manages YAML-based configuration, environment overrides and favourite folders.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. ENTRYHUB_PORT.
const EnvPrefix = "ENTRYHUB"

// Folder represents a favourite folder with an alias for display
type Folder struct {
	Path  string `yaml:"path" json:"path"`
	Alias string `yaml:"alias" json:"alias"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" envconfig:"ENABLED"`
	RequestsPerSecond int  `yaml:"requests_per_second" envconfig:"RPS"`
	Burst             int  `yaml:"burst" envconfig:"BURST"`
}

// CORSConfig holds cross-origin settings for the HTTP API
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins" envconfig:"ALLOW_ORIGINS"`
}

// Config holds all configuration options for entryhub
type Config struct {
	Host string `yaml:"host" envconfig:"HOST"`
	Port int    `yaml:"port" envconfig:"PORT"`
	Open bool   `yaml:"open" envconfig:"OPEN"`

	// Concurrency bounds how many paths one batch resolves at once
	Concurrency int `yaml:"concurrency" envconfig:"CONCURRENCY"`

	// Favourite folders shown in the sidebar
	Folders []Folder `yaml:"folders,omitempty" json:"folders" ignored:"true"`

	Log       LogConfig       `yaml:"log" envconfig:"LOG"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	CORS      CORSConfig      `yaml:"cors" envconfig:"CORS"`

	// Internal: path to config file for saving
	configPath string
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Host:        "127.0.0.1",
		Port:        8080,
		Open:        false,
		Concurrency: 16,
		Log: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 200,
			Burst:             400,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
	}
}

// GetConfigDir returns the config directory path
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/entryhub"
	}
	return filepath.Join(home, ".config", "entryhub")
}

// GetConfigPath returns the full path to the config file
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Load builds the configuration from defaults, the config file and the environment,
// in that order. An empty path searches ~/.config/entryhub/config.yaml and then
// ./entryhub.yaml; a missing file is only an error when path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	cfgPath := path
	if cfgPath == "" {
		if _, err := os.Stat(GetConfigPath()); err == nil {
			cfgPath = GetConfigPath()
		} else if _, err := os.Stat("entryhub.yaml"); err == nil {
			cfgPath = "entryhub.yaml"
		}
	}

	if cfgPath != "" {
		if err := cfg.loadFromFile(cfgPath); err != nil {
			if path != "" || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("load config %s: %w", cfgPath, err)
			}
		}
		cfg.configPath = cfgPath
	} else {
		// Set default config path for saving
		cfg.configPath = GetConfigPath()
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg.normalizeFolders()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can be served
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond < 1 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("rate limit needs positive requests_per_second and burst")
	}
	return nil
}

// normalizeFolders resolves folder paths to absolute and fills missing aliases
func (c *Config) normalizeFolders() {
	for i := range c.Folders {
		absPath, err := filepath.Abs(c.Folders[i].Path)
		if err == nil {
			c.Folders[i].Path = absPath
		}
		// Set alias to folder name if not specified
		if c.Folders[i].Alias == "" {
			c.Folders[i].Alias = filepath.Base(c.Folders[i].Path)
		}
	}
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Save saves the current configuration to the config file
func (c *Config) Save() error {
	// Ensure config directory exists
	configDir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(c.configPath, data, 0644)
}

// AddFolder adds a new favourite folder with the given path and alias
func (c *Config) AddFolder(path, alias string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	for _, f := range c.Folders {
		if f.Path == absPath {
			return nil // Already exists
		}
	}

	if alias == "" {
		alias = filepath.Base(absPath)
	}

	c.Folders = append(c.Folders, Folder{
		Path:  absPath,
		Alias: alias,
	})
	return nil
}

// RemoveFolderByIndex removes a folder by its index
func (c *Config) RemoveFolderByIndex(index int) {
	if index < 0 || index >= len(c.Folders) {
		return
	}
	c.Folders = append(c.Folders[:index], c.Folders[index+1:]...)
}

// FolderPaths returns the paths of all favourite folders in order
func (c *Config) FolderPaths() []string {
	paths := make([]string, len(c.Folders))
	for i, f := range c.Folders {
		paths[i] = f.Path
	}
	return paths
}

// GetConfigFilePath returns the path to the config file
func (c *Config) GetConfigFilePath() string {
	return c.configPath
}

// SetConfigFilePath changes where Save writes
func (c *Config) SetConfigFilePath(path string) {
	c.configPath = path
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
