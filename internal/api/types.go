// Package api provides a client for OpenAI-compatible chat-completion APIs.
package api

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions API.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// NewQuery builds a single-turn request, with an optional system prompt.
func NewQuery(model, system, query string) *ChatRequest {
	req := &ChatRequest{Model: model}
	if system != "" {
		req.Messages = append(req.Messages, Message{Role: "system", Content: system})
	}
	req.Messages = append(req.Messages, Message{Role: "user", Content: query})
	return req
}

// Delta is the incremental content of a streamed choice.
type Delta struct {
	Content string `json:"content"`
}

// Choice represents a completion choice in the response.
type Choice struct {
	Delta        Delta   `json:"delta"`
	Message      Message `json:"message"`
	FinishReason *string `json:"finish_reason"`
}

// ResponseError is the in-band error object some providers send with a 200.
type ResponseError struct {
	Message string `json:"message"`
}

// ChatResponse represents the response from the chat completions API.
type ChatResponse struct {
	Choices []Choice       `json:"choices"`
	Error   *ResponseError `json:"error"`
}

// Content returns the first choice's message content.
func (r *ChatResponse) Content() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// ModelPricing represents pricing information for a model.
type ModelPricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
	Request    string `json:"request"`
}

// ModelArchitecture represents the architecture of a model.
type ModelArchitecture struct {
	Tokenizer        string   `json:"tokenizer"`
	InputModalities  []string `json:"input_modalities"`
	OutputModalities []string `json:"output_modalities"`
}

// Model represents a model listed by the provider. Providers other than
// OpenRouter usually fill in only ID.
type Model struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Created       int64             `json:"created"`
	Description   string            `json:"description"`
	ContextLength *int              `json:"context_length"`
	Pricing       ModelPricing      `json:"pricing"`
	Architecture  ModelArchitecture `json:"architecture"`
}

// ModelsResponse represents the response from the models API.
type ModelsResponse struct {
	Data []Model `json:"data"`
}

// ListModelsOptions represents options for listing models.
type ListModelsOptions struct {
	Category            string
	SupportedParameters string
}

// DisplayName returns Name, or ID when the provider sends no name.
func (m *Model) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// IsTextModel reports whether the model can answer with text. Models with
// no declared modalities are assumed to be text models.
func (m *Model) IsTextModel() bool {
	out := m.Architecture.OutputModalities
	return len(out) == 0 || hasModality(out, "text")
}

func hasModality(mods []string, want string) bool {
	for _, mod := range mods {
		if mod == want {
			return true
		}
	}
	return false
}
