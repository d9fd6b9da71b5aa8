package cmd

import (
	"fmt"
	"os"

	"github.com/vstratful/openrouter-launcher/internal/api"
	"github.com/vstratful/openrouter-launcher/internal/config"
	"github.com/vstratful/openrouter-launcher/internal/logging"
)

// promptForAPIKey is a variable to allow mocking in tests.
var promptForAPIKey = config.PromptForAPIKey

// newClient resolves the active provider and its API key.
func newClient() (api.Provider, api.Client, error) {
	p, err := api.LookupProvider(cfg.Provider, cfg.BaseURL)
	if err != nil {
		return api.Provider{}, nil, err
	}

	key, err := getAPIKey(p)
	if err != nil {
		return api.Provider{}, nil, err
	}

	client, err := p.NewClient(key, logging.Logger)
	if err != nil {
		return api.Provider{}, nil, err
	}
	return p, client, nil
}

// getAPIKey retrieves the API key for p using the following precedence:
// 1. The provider's environment variable
// 2. The config file, if it was saved for the same provider
// 3. Interactive prompt, saved for next time
func getAPIKey(p api.Provider) (string, error) {
	if key := os.Getenv(p.KeyEnv); key != "" {
		return key, nil
	}

	// Re-read the file so flag and environment overrides are not persisted.
	stored, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if stored.APIKey != "" && stored.Provider == p.Name {
		return stored.APIKey, nil
	}

	key, err := promptForAPIKey(p.Name, p.KeysURL)
	if err != nil {
		return "", err
	}

	stored.APIKey = key
	stored.Provider = p.Name
	if p.Name == api.ProviderCustom {
		stored.BaseURL = p.BaseURL
	}
	if err := config.Save(stored); err != nil {
		logging.Logger.WithError(err).Warn("failed to save config")
		fmt.Fprintf(os.Stderr, "Warning: failed to save config: %v\n", err)
	} else if path, err := config.GetConfigPath(); err == nil {
		fmt.Fprintf(os.Stderr, "API key saved to %s\n\n", path)
	}

	return key, nil
}
