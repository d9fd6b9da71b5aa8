package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create a temporary directory for test config
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "openrouter-launcher")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatalf("failed to create test config dir: %v", err)
	}

	// Override GetConfigDir for testing
	originalGetConfigDir := GetConfigDir
	GetConfigDir = func() (string, error) {
		return configDir, nil
	}
	defer func() { GetConfigDir = originalGetConfigDir }()

	t.Run("returns empty config when file does not exist", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.APIKey != "" {
			t.Errorf("cfg.APIKey = %q, want empty string", cfg.APIKey)
		}
	})

	t.Run("loads config from file", func(t *testing.T) {
		// Write test config
		testConfig := Config{APIKey: "test-api-key"}
		data, _ := json.MarshalIndent(testConfig, "", "  ")
		configPath := filepath.Join(configDir, "config.json")
		if err := os.WriteFile(configPath, data, 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.APIKey != "test-api-key" {
			t.Errorf("cfg.APIKey = %q, want %q", cfg.APIKey, "test-api-key")
		}
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		configPath := filepath.Join(configDir, "config.json")
		if err := os.WriteFile(configPath, []byte("not valid json"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want parse error")
		}
	})
}

func TestSave(t *testing.T) {
	// Create a temporary directory for test config
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "openrouter-launcher")

	// Override GetConfigDir for testing
	originalGetConfigDir := GetConfigDir
	GetConfigDir = func() (string, error) {
		return configDir, nil
	}
	defer func() { GetConfigDir = originalGetConfigDir }()

	t.Run("creates config directory and file", func(t *testing.T) {
		cfg := &Config{APIKey: "test-api-key"}
		if err := Save(cfg); err != nil {
			t.Fatalf("Save() error = %v, want nil", err)
		}

		// Verify file was created
		configPath := filepath.Join(configDir, "config.json")
		data, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("failed to read config file: %v", err)
		}

		var loaded Config
		if err := json.Unmarshal(data, &loaded); err != nil {
			t.Fatalf("failed to parse config file: %v", err)
		}

		if loaded.APIKey != "test-api-key" {
			t.Errorf("loaded.APIKey = %q, want %q", loaded.APIKey, "test-api-key")
		}
	})

	t.Run("file has secure permissions", func(t *testing.T) {
		cfg := &Config{APIKey: "test-api-key"}
		if err := Save(cfg); err != nil {
			t.Fatalf("Save() error = %v, want nil", err)
		}

		configPath := filepath.Join(configDir, "config.json")
		info, err := os.Stat(configPath)
		if err != nil {
			t.Fatalf("failed to stat config file: %v", err)
		}

		// Check permissions (0600 = owner read/write only)
		perm := info.Mode().Perm()
		if perm != 0600 {
			t.Errorf("file permissions = %o, want %o", perm, 0600)
		}
	})
}

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Skipf("no user config dir on this platform: %v", err)
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("GetConfigDir() = %q, want absolute path", dir)
	}

	if filepath.Base(dir) != "openrouter-launcher" {
		t.Errorf("GetConfigDir() = %q, want path ending in 'openrouter-launcher'", dir)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "openrouter-launcher")
	originalGetConfigDir := GetConfigDir
	GetConfigDir = func() (string, error) {
		return configDir, nil
	}
	defer func() { GetConfigDir = originalGetConfigDir }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provider != DefaultProvider {
		t.Errorf("Provider = %q, want %q", cfg.Provider, DefaultProvider)
	}
	if cfg.DefaultModel != DefaultModel {
		t.Errorf("DefaultModel = %q, want %q", cfg.DefaultModel, DefaultModel)
	}
	if cfg.Theme != ThemeAuto {
		t.Errorf("Theme = %q, want %q", cfg.Theme, ThemeAuto)
	}
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", cfg.MaxDepth, DefaultMaxDepth)
	}
	if cfg.HistoryLimit != DefaultHistoryLimit {
		t.Errorf("HistoryLimit = %d, want %d", cfg.HistoryLimit, DefaultHistoryLimit)
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", ThemeAuto, false},
		{"auto", ThemeAuto, false},
		{"Dark", ThemeDark, false},
		{" light ", ThemeLight, false},
		{"solarized", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTheme(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTheme) {
					t.Errorf("ParseTheme(%q) error = %v, want ErrInvalidTheme", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTheme(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTheme(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveDark(t *testing.T) {
	yes := func() bool { return true }
	no := func() bool { return false }

	tests := []struct {
		name   string
		theme  string
		detect func() bool
		want   bool
	}{
		{"dark ignores detection", ThemeDark, no, true},
		{"light ignores detection", ThemeLight, yes, false},
		{"auto uses detection", ThemeAuto, no, false},
		{"auto without detector defaults dark", ThemeAuto, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDark(tt.theme, tt.detect); got != tt.want {
				t.Errorf("ResolveDark(%q) = %v, want %v", tt.theme, got, tt.want)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Run("no variables set", func(t *testing.T) {
		cfg := &Config{DefaultModel: "keep"}
		applied, err := ApplyEnvOverrides(cfg)
		if err != nil {
			t.Fatalf("ApplyEnvOverrides() error = %v", err)
		}
		if len(applied) != 0 || cfg.DefaultModel != "keep" {
			t.Errorf("applied = %v, model = %q", applied, cfg.DefaultModel)
		}
	})

	t.Run("overrides fields", func(t *testing.T) {
		t.Setenv("ORL_MODEL", "env/model")
		t.Setenv("ORL_PROVIDER", "openai")
		t.Setenv("ORL_BASE_URL", "http://localhost:8080/v1")
		t.Setenv("ORL_THEME", "light")
		t.Setenv("ORL_MAX_DEPTH", "8")

		cfg := &Config{}
		cfg.applyDefaults()
		applied, err := ApplyEnvOverrides(cfg)
		if err != nil {
			t.Fatalf("ApplyEnvOverrides() error = %v", err)
		}
		if len(applied) != 5 {
			t.Errorf("applied = %v, want 5 keys", applied)
		}
		if cfg.DefaultModel != "env/model" {
			t.Errorf("DefaultModel = %q", cfg.DefaultModel)
		}
		if cfg.Provider != "openai" {
			t.Errorf("Provider = %q", cfg.Provider)
		}
		if cfg.BaseURL != "http://localhost:8080/v1" {
			t.Errorf("BaseURL = %q", cfg.BaseURL)
		}
		if cfg.Theme != ThemeLight {
			t.Errorf("Theme = %q", cfg.Theme)
		}
		if cfg.MaxDepth != 8 {
			t.Errorf("MaxDepth = %d", cfg.MaxDepth)
		}
	})

	t.Run("invalid theme", func(t *testing.T) {
		t.Setenv("ORL_THEME", "neon")
		_, err := ApplyEnvOverrides(&Config{})
		if !errors.Is(err, ErrInvalidTheme) {
			t.Errorf("error = %v, want ErrInvalidTheme", err)
		}
	})
}

func TestConstants(t *testing.T) {
	// Verify constants have sensible values
	if EscDoublePressTimeout <= 0 {
		t.Errorf("EscDoublePressTimeout = %v, want positive duration", EscDoublePressTimeout)
	}

	if PreviewTruncateLength <= 0 {
		t.Errorf("PreviewTruncateLength = %d, want positive value", PreviewTruncateLength)
	}

	if StreamChannelBuffer <= 0 {
		t.Errorf("StreamChannelBuffer = %d, want positive value", StreamChannelBuffer)
	}

	if DefaultTerminalWidth <= 0 {
		t.Errorf("DefaultTerminalWidth = %d, want positive value", DefaultTerminalWidth)
	}

	if DefaultStreamTimeout <= 0 {
		t.Errorf("DefaultStreamTimeout = %v, want positive duration", DefaultStreamTimeout)
	}
}
