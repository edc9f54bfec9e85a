package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Path:     "/music",
			Workers:  4,
			LogLevel: "INFO",
		}
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			modify: func(c *Config) {},
		},
		{
			name:    "empty path",
			modify:  func(c *Config) { c.Path = "" },
			wantErr: true,
		},
		{
			name:    "workers 0",
			modify:  func(c *Config) { c.Workers = 0 },
			wantErr: true,
		},
		{
			name:    "workers 17",
			modify:  func(c *Config) { c.Workers = 17 },
			wantErr: true,
		},
		{
			name:   "workers 16",
			modify: func(c *Config) { c.Workers = 16 },
		},
		{
			name:   "workers 1",
			modify: func(c *Config) { c.Workers = 1 },
		},
		{
			name:   "lowercase log level",
			modify: func(c *Config) { c.LogLevel = "debug" },
		},
		{
			name:   "warning alias",
			modify: func(c *Config) { c.LogLevel = "warning" },
		},
		{
			name:   "empty log level",
			modify: func(c *Config) { c.LogLevel = "" },
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.LogLevel = "TRACE" },
			wantErr: true,
		},
		{
			name:   "token is optional",
			modify: func(c *Config) { c.GeniusToken = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `genius_token: abc123
overwrite: true
workers: 8
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error: %v", err)
	}

	if cfg.GeniusToken != "abc123" {
		t.Errorf("GeniusToken = %q, want %q", cfg.GeniusToken, "abc123")
	}
	if !cfg.Overwrite {
		t.Error("Overwrite = false, want true")
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	cfg, err := LoadConfigFile("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfigFile() should return defaults for missing file, got error: %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected default Workers=4, got %d", cfg.Workers)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("expected default LogLevel=INFO, got %q", cfg.LogLevel)
	}
}

func TestLoadConfigFilePartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	// Unset keys keep their defaults.
	if err := os.WriteFile(path, []byte("workers: 2\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want default INFO", cfg.LogLevel)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GeniusToken = "from-file"

	t.Setenv(EnvToken, "from-env")
	ApplyEnv(&cfg)
	if cfg.GeniusToken != "from-env" {
		t.Errorf("GeniusToken = %q, want env value to win over file", cfg.GeniusToken)
	}

	t.Setenv(EnvToken, "")
	cfg.GeniusToken = "from-file"
	ApplyEnv(&cfg)
	if cfg.GeniusToken != "from-file" {
		t.Errorf("GeniusToken = %q, empty env must not clear the file value", cfg.GeniusToken)
	}
}
