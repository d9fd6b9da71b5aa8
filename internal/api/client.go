package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the OpenRouter API base URL.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout bounds non-streaming requests.
	DefaultTimeout = 30 * time.Second

	// DefaultStreamTimeout bounds a whole streamed answer.
	DefaultStreamTimeout = 5 * time.Minute

	DefaultMaxRetries     = 3
	DefaultInitialBackoff = 500 * time.Millisecond
	DefaultMaxBackoff     = 5 * time.Second
)

// Client is the interface for interacting with a chat-completion API.
type Client interface {
	// Chat sends a non-streaming chat request.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// ChatStream sends a streaming chat request. The caller owns the
	// returned reader and must Close it.
	ChatStream(ctx context.Context, req *ChatRequest) (*StreamReader, error)

	// ListModels retrieves available models.
	ListModels(ctx context.Context, opts *ListModelsOptions) ([]Model, error)
}

// ClientConfig contains configuration for the API client.
type ClientConfig struct {
	APIKey string

	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// Timeout defaults to DefaultTimeout; StreamTimeout to DefaultStreamTimeout.
	Timeout       time.Duration
	StreamTimeout time.Duration

	// HTTPClient, if set, is used for non-streaming requests.
	HTTPClient *http.Client

	// Referer and Title are sent as HTTP-Referer and X-Title when set.
	// OpenRouter uses them for app attribution.
	Referer string
	Title   string

	// Retry configures retry behavior. If nil, retries are disabled.
	Retry *RetryConfig

	// Logger receives retry and request diagnostics. Nil discards them.
	Logger logrus.FieldLogger
}

// NewClient creates a new API client with the given configuration.
func NewClient(cfg ClientConfig) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.StreamTimeout == 0 {
		cfg.StreamTimeout = DefaultStreamTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &client{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		httpClient:   httpClient,
		streamClient: &http.Client{Timeout: cfg.StreamTimeout},
		referer:      cfg.Referer,
		title:        cfg.Title,
		retry:        cfg.Retry,
		log:          log,
	}
}

type client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	streamClient *http.Client
	referer      string
	title        string
	retry        *RetryConfig
	log          logrus.FieldLogger
}

// sender returns a sendFunc that builds a fresh request per attempt, since a
// request body can only be read once.
func (c *client) sender(hc *http.Client, method, path string, body []byte, query url.Values) sendFunc {
	return func(ctx context.Context) (*http.Response, error) {
		var r io.Reader
		if body != nil {
			r = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		if len(query) > 0 {
			req.URL.RawQuery = query.Encode()
		}

		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		if c.referer != "" {
			req.Header.Set("HTTP-Referer", c.referer)
		}
		if c.title != "" {
			req.Header.Set("X-Title", c.title)
		}
		return hc.Do(req)
	}
}

func marshalChat(req *ChatRequest, stream bool) ([]byte, error) {
	r := *req
	r.Stream = stream
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	return body, nil
}

func (c *client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	body, err := marshalChat(req, false)
	if err != nil {
		return nil, err
	}

	return doWithRetry(ctx, c, c.sender(c.httpClient, http.MethodPost, "/chat/completions", body, nil),
		func(resp *http.Response) (*ChatResponse, error) {
			defer resp.Body.Close()
			var chatResp ChatResponse
			if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
				return nil, fmt.Errorf("decoding response: %w", err)
			}
			if chatResp.Error != nil {
				return nil, &APIError{Message: chatResp.Error.Message}
			}
			return &chatResp, nil
		},
	)
}

func (c *client) ChatStream(ctx context.Context, req *ChatRequest) (*StreamReader, error) {
	body, err := marshalChat(req, true)
	if err != nil {
		return nil, err
	}

	return doWithRetry(ctx, c, c.sender(c.streamClient, http.MethodPost, "/chat/completions", body, nil),
		func(resp *http.Response) (*StreamReader, error) {
			// The reader owns the body from here on.
			return NewStreamReader(resp.Body), nil
		},
	)
}

func (c *client) ListModels(ctx context.Context, opts *ListModelsOptions) ([]Model, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Category != "" {
			query.Set("category", opts.Category)
		}
		if opts.SupportedParameters != "" {
			query.Set("supported_parameters", opts.SupportedParameters)
		}
	}

	return doWithRetry(ctx, c, c.sender(c.httpClient, http.MethodGet, "/models", nil, query),
		func(resp *http.Response) ([]Model, error) {
			defer resp.Body.Close()
			var modelsResp ModelsResponse
			if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
				return nil, fmt.Errorf("decoding response: %w", err)
			}
			return modelsResp.Data, nil
		},
	)
}
