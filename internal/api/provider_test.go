package api

import (
	"errors"
	"testing"
)

func TestLookupProvider(t *testing.T) {
	tests := []struct {
		name        string
		provider    string
		baseURL     string
		wantBaseURL string
		wantKeyEnv  string
		wantErr     error
	}{
		{
			name:        "openrouter",
			provider:    "openrouter",
			wantBaseURL: DefaultBaseURL,
			wantKeyEnv:  "OPENROUTER_API_KEY",
		},
		{
			name:        "case insensitive",
			provider:    " OpenAI ",
			wantBaseURL: "https://api.openai.com/v1",
			wantKeyEnv:  "OPENAI_API_KEY",
		},
		{
			name:        "base url override trims slash",
			provider:    "openrouter",
			baseURL:     "http://localhost:9000/v1/",
			wantBaseURL: "http://localhost:9000/v1",
			wantKeyEnv:  "OPENROUTER_API_KEY",
		},
		{
			name:        "custom with base url",
			provider:    "custom",
			baseURL:     "http://localhost:11434/v1",
			wantBaseURL: "http://localhost:11434/v1",
			wantKeyEnv:  "ORL_API_KEY",
		},
		{
			name:     "custom without base url",
			provider: "custom",
			wantErr:  ErrMissingBaseURL,
		},
		{
			name:     "unknown",
			provider: "nope",
			wantErr:  ErrUnknownProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LookupProvider(tt.provider, tt.baseURL)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LookupProvider() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupProvider() error = %v", err)
			}
			if p.BaseURL != tt.wantBaseURL {
				t.Errorf("BaseURL = %q, want %q", p.BaseURL, tt.wantBaseURL)
			}
			if p.KeyEnv != tt.wantKeyEnv {
				t.Errorf("KeyEnv = %q, want %q", p.KeyEnv, tt.wantKeyEnv)
			}
		})
	}
}

func TestProviderNames(t *testing.T) {
	names := ProviderNames()
	want := []string{"custom", "openai", "openrouter"}
	if len(names) != len(want) {
		t.Fatalf("ProviderNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ProviderNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestProvider_NewClient(t *testing.T) {
	p, err := LookupProvider("openrouter", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := p.NewClient("", nil); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("NewClient(\"\") error = %v, want ErrMissingAPIKey", err)
	}

	client, err := p.NewClient("test-key", nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client == nil {
		t.Error("NewClient() returned nil client")
	}
}
