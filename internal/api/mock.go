package api

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
)

// MockClient is a Client for tests. Each method records its call and then
// delegates to the matching Func field; a nil Func returns zero values.
// Calls may come from the launcher's producer goroutine, so recording is
// locked; read the Calls slices only after the call has completed.
type MockClient struct {
	ChatFunc       func(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	ChatStreamFunc func(ctx context.Context, req *ChatRequest) (*StreamReader, error)
	ListModelsFunc func(ctx context.Context, opts *ListModelsOptions) ([]Model, error)

	ChatCalls       []ChatCall
	ChatStreamCalls []ChatCall
	ListModelsCalls []ListModelsCall

	mu sync.Mutex
}

// ChatCall records a call to Chat or ChatStream.
type ChatCall struct {
	Ctx context.Context
	Req *ChatRequest
}

// ListModelsCall records a call to ListModels.
type ListModelsCall struct {
	Ctx  context.Context
	Opts *ListModelsOptions
}

// NewMockClient returns a MockClient that answers "mock response".
func NewMockClient() *MockClient {
	return &MockClient{
		ChatFunc: func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			return &ChatResponse{
				Choices: []Choice{
					{Message: Message{Role: "assistant", Content: "mock response"}},
				},
			}, nil
		},
		ChatStreamFunc: func(ctx context.Context, req *ChatRequest) (*StreamReader, error) {
			return StreamOf("mock ", "response"), nil
		},
		ListModelsFunc: func(ctx context.Context, opts *ListModelsOptions) ([]Model, error) {
			return []Model{{ID: "mock-model", Name: "Mock Model"}}, nil
		},
	}
}

func (m *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, ChatCall{Ctx: ctx, Req: req})
	fn := m.ChatFunc
	m.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, req)
}

func (m *MockClient) ChatStream(ctx context.Context, req *ChatRequest) (*StreamReader, error) {
	m.mu.Lock()
	m.ChatStreamCalls = append(m.ChatStreamCalls, ChatCall{Ctx: ctx, Req: req})
	fn := m.ChatStreamFunc
	m.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, req)
}

func (m *MockClient) ListModels(ctx context.Context, opts *ListModelsOptions) ([]Model, error) {
	m.mu.Lock()
	m.ListModelsCalls = append(m.ListModelsCalls, ListModelsCall{Ctx: ctx, Opts: opts})
	fn := m.ListModelsFunc
	m.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, opts)
}

// Reset clears all recorded calls.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatCalls = nil
	m.ChatStreamCalls = nil
	m.ListModelsCalls = nil
}

// StreamOf returns a StreamReader that yields each fragment as one SSE chunk
// followed by [DONE].
func StreamOf(fragments ...string) *StreamReader {
	return sseStream(fragments, "data: [DONE]\n")
}

// StreamFailing yields the fragments and then an in-band provider error.
func StreamFailing(message string, fragments ...string) *StreamReader {
	data, _ := json.Marshal(ChatResponse{Error: &ResponseError{Message: message}})
	return sseStream(fragments, "data: "+string(data)+"\n\n")
}

func sseStream(fragments []string, trailer string) *StreamReader {
	var b strings.Builder
	for _, f := range fragments {
		data, _ := json.Marshal(ChatResponse{Choices: []Choice{{Delta: Delta{Content: f}}}})
		b.WriteString("data: ")
		b.Write(data)
		b.WriteString("\n\n")
	}
	b.WriteString(trailer)
	return NewStreamReader(io.NopCloser(strings.NewReader(b.String())))
}
