package api

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Provider names.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderCustom     = "custom"
)

// Provider describes an OpenAI-compatible chat-completion endpoint.
type Provider struct {
	Name    string
	BaseURL string

	// KeyEnv is the environment variable consulted for the API key.
	KeyEnv string

	// KeysURL is shown when prompting for a missing key.
	KeysURL string

	Referer string
	Title   string
}

var builtinProviders = map[string]Provider{
	ProviderOpenRouter: {
		Name:    ProviderOpenRouter,
		BaseURL: DefaultBaseURL,
		KeyEnv:  "OPENROUTER_API_KEY",
		KeysURL: "https://openrouter.ai/keys",
		Referer: "https://github.com/vstratful/openrouter-launcher",
		Title:   "OpenRouter Launcher",
	},
	ProviderOpenAI: {
		Name:    ProviderOpenAI,
		BaseURL: "https://api.openai.com/v1",
		KeyEnv:  "OPENAI_API_KEY",
		KeysURL: "https://platform.openai.com/api-keys",
	},
	ProviderCustom: {
		Name:   ProviderCustom,
		KeyEnv: "ORL_API_KEY",
	},
}

// LookupProvider returns the named provider. A non-empty baseURL overrides the
// provider's endpoint and is required for the custom provider.
func LookupProvider(name, baseURL string) (Provider, error) {
	p, ok := builtinProviders[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Provider{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownProvider, name, strings.Join(ProviderNames(), ", "))
	}
	if baseURL != "" {
		p.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if p.BaseURL == "" {
		return Provider{}, fmt.Errorf("%w: provider %q", ErrMissingBaseURL, p.Name)
	}
	return p, nil
}

// ProviderNames returns the built-in provider names in sorted order.
func ProviderNames() []string {
	names := make([]string, 0, len(builtinProviders))
	for name := range builtinProviders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewClient creates a client for the provider with default retries. log may
// be nil.
func (p Provider) NewClient(apiKey string, log logrus.FieldLogger) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w for %s (set %s)", ErrMissingAPIKey, p.Name, p.KeyEnv)
	}
	retryConfig := DefaultRetryConfig()
	return NewClient(ClientConfig{
		APIKey:  apiKey,
		BaseURL: p.BaseURL,
		Referer: p.Referer,
		Title:   p.Title,
		Retry:   &retryConfig,
		Logger:  log,
	}), nil
}
