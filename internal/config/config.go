// Package config provides configuration management for the launcher.
package config

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values.
const (
	// DefaultProvider is the chat-completion provider used when none is configured.
	DefaultProvider = "openrouter"

	// DefaultModel is the default model to use when not configured.
	DefaultModel = "moonshotai/kimi-k2.5"

	// DefaultTheme lets the terminal background decide.
	DefaultTheme = ThemeAuto

	// DefaultMaxDepth bounds the markdown format stack.
	DefaultMaxDepth = 32

	// DefaultHistoryLimit is the number of answered queries kept on disk.
	DefaultHistoryLimit = 200

	// DefaultStreamTimeout is the default timeout for streaming requests.
	DefaultStreamTimeout = 5 * time.Minute

	// DefaultTerminalWidth is the default terminal width when auto-detection fails.
	DefaultTerminalWidth = 80

	// EscDoublePressTimeout is the timeout for double-press ESC actions.
	EscDoublePressTimeout = 2 * time.Second

	// PreviewTruncateLength is the max display width for history preview text.
	PreviewTruncateLength = 50

	// StreamChannelBuffer is the buffer size for stream chunk channels.
	StreamChannelBuffer = 100

	// EnvPrefix prefixes environment overrides, e.g. ORL_MODEL.
	EnvPrefix = "ORL"
)

// Theme names accepted in the config file and on the command line.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ErrInvalidTheme is returned for a theme name other than auto, dark or light.
var ErrInvalidTheme = errors.New("invalid theme")

// Config holds the application configuration that is persisted to disk.
type Config struct {
	APIKey       string `json:"api_key"`
	Provider     string `json:"provider,omitempty"`
	BaseURL      string `json:"base_url,omitempty"`
	DefaultModel string `json:"default_model,omitempty"`
	Theme        string `json:"theme,omitempty"`
	MaxDepth     int    `json:"max_depth,omitempty"`
	HistoryLimit int    `json:"history_limit,omitempty"`
}

// applyDefaults fills in any zero-valued fields.
func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.DefaultModel == "" {
		c.DefaultModel = DefaultModel
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = DefaultHistoryLimit
	}
}

// ParseTheme normalizes a theme name.
func ParseTheme(name string) (string, error) {
	switch t := strings.ToLower(strings.TrimSpace(name)); t {
	case "", ThemeAuto:
		return ThemeAuto, nil
	case ThemeDark, ThemeLight:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q (want auto, dark or light)", ErrInvalidTheme, name)
	}
}

// ResolveDark reports whether the dark palette should be used. For the auto
// theme, detect is consulted.
func ResolveDark(theme string, detect func() bool) bool {
	switch theme {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	default:
		if detect == nil {
			return true
		}
		return detect()
	}
}

// GetConfigDir returns the platform-specific config directory for the launcher.
// This is a variable to allow mocking in tests.
var GetConfigDir = func() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "openrouter-launcher"), nil
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the config file and returns the Config struct.
// Returns a defaulted Config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// ApplyEnvOverrides overlays ORL_* environment variables onto cfg and
// returns the names of the keys that were overridden.
func ApplyEnvOverrides(cfg *Config) ([]string, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	var applied []string
	if v.IsSet("MODEL") {
		cfg.DefaultModel = v.GetString("MODEL")
		applied = append(applied, "model")
	}
	if v.IsSet("PROVIDER") {
		cfg.Provider = v.GetString("PROVIDER")
		applied = append(applied, "provider")
	}
	if v.IsSet("BASE_URL") {
		cfg.BaseURL = v.GetString("BASE_URL")
		applied = append(applied, "base_url")
	}
	if v.IsSet("THEME") {
		theme, err := ParseTheme(v.GetString("THEME"))
		if err != nil {
			return applied, err
		}
		cfg.Theme = theme
		applied = append(applied, "theme")
	}
	if v.IsSet("MAX_DEPTH") {
		if n := v.GetInt("MAX_DEPTH"); n > 0 {
			cfg.MaxDepth = n
			applied = append(applied, "max_depth")
		}
	}
	return applied, nil
}

// Save writes the config to disk with secure permissions.
func Save(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	// Create config directory with user-only permissions
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// PromptForAPIKey interactively prompts the user for an API key.
func PromptForAPIKey(providerName, keysURL string) (string, error) {
	fmt.Printf("No %s API key found.\n", providerName)
	if keysURL != "" {
		fmt.Printf("You can get an API key from: %s\n", keysURL)
	}
	fmt.Printf("\nEnter your %s API key: ", providerName)

	reader := bufio.NewReader(os.Stdin)
	key, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("API key cannot be empty")
	}

	return key, nil
}
