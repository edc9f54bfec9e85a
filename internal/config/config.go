package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvToken is the environment variable that supplies the Genius API token.
const EnvToken = "GENIUS_ACCESS_TOKEN"

// Config contains the program configuration
type Config struct {
	Path        string `yaml:"-"` // positional argument, never persisted
	GeniusToken string `yaml:"genius_token"`
	Overwrite   bool   `yaml:"overwrite"`
	Workers     int    `yaml:"workers"`
	LogLevel    string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Overwrite: false,
		Workers:   4,
		LogLevel:  "INFO",
	}
}

// LoadConfigFile loads configuration from a YAML file.
// If path is empty, searches standard locations. Returns defaults if no file found.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overlays environment values onto cfg. The environment wins over
// the config file; explicit CLI flags are applied later and win over both.
func ApplyEnv(cfg *Config) {
	if token := os.Getenv(EnvToken); token != "" {
		cfg.GeniusToken = token
	}
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	home := homeDir()
	locations := []string{
		"./lyricfill.yaml",
		"./lyricfill.yml",
		filepath.Join(home, ".config", "lyricfill", "config.yaml"),
		filepath.Join(home, ".config", "lyricfill", "config.yml"),
		filepath.Join(home, ".lyricfill.yaml"),
		filepath.Join(home, ".lyricfill.yml"),
	}

	for _, path := range locations {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves the current configuration to a YAML file
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default config file path
func GetDefaultConfigPath() string {
	return filepath.Join(homeDir(), ".config", "lyricfill", "config.yaml")
}

// GetDefaultLogPath returns the default log directory path
func GetDefaultLogPath() string {
	return filepath.Join(homeDir(), ".local", "share", "lyricfill", "logs")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("no file or directory given")
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Workers > 16 {
		return fmt.Errorf("workers cannot exceed 16 (to avoid hammering the lyric APIs), got %d", c.Workers)
	}

	validLevels := []string{"DEBUG", "INFO", "WARN", "WARNING", "ERROR"}
	level := strings.ToUpper(c.LogLevel)
	isValid := level == ""
	for _, l := range validLevels {
		if level == l {
			isValid = true
			break
		}
	}
	if !isValid {
		return fmt.Errorf("unsupported log level '%s', valid levels: %v", c.LogLevel, validLevels)
	}

	return nil
}
