package api

import (
	"encoding/json"
	"testing"
)

func TestModel_IsTextModel(t *testing.T) {
	tests := []struct {
		name             string
		outputModalities []string
		want             bool
	}{
		{
			name:             "text only",
			outputModalities: []string{"text"},
			want:             true,
		},
		{
			name:             "text and image",
			outputModalities: []string{"text", "image"},
			want:             true,
		},
		{
			name:             "image only",
			outputModalities: []string{"image"},
			want:             false,
		},
		{
			name:             "nil modalities",
			outputModalities: nil,
			want:             true,
		},
		{
			name:             "audio only",
			outputModalities: []string{"audio"},
			want:             false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Model{
				Architecture: ModelArchitecture{
					OutputModalities: tt.outputModalities,
				},
			}
			if got := m.IsTextModel(); got != tt.want {
				t.Errorf("IsTextModel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModel_DisplayName(t *testing.T) {
	if got := (&Model{ID: "a/b", Name: "Model B"}).DisplayName(); got != "Model B" {
		t.Errorf("DisplayName() = %q, want %q", got, "Model B")
	}
	if got := (&Model{ID: "gpt-4o"}).DisplayName(); got != "gpt-4o" {
		t.Errorf("DisplayName() = %q, want %q", got, "gpt-4o")
	}
}

func TestNewQuery(t *testing.T) {
	t.Run("without system prompt", func(t *testing.T) {
		req := NewQuery("m", "", "hi")
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "hi" {
			t.Errorf("Messages = %+v", req.Messages)
		}
	})

	t.Run("with system prompt", func(t *testing.T) {
		req := NewQuery("m", "be brief", "hi")
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("Messages = %+v", req.Messages)
		}
	})

	t.Run("optional fields are omitted", func(t *testing.T) {
		data, err := json.Marshal(NewQuery("m", "", "hi"))
		if err != nil {
			t.Fatal(err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatal(err)
		}
		if _, ok := raw["temperature"]; ok {
			t.Error("temperature should be omitted")
		}
		if _, ok := raw["max_tokens"]; ok {
			t.Error("max_tokens should be omitted")
		}
	})
}

func TestChatResponse_Content(t *testing.T) {
	var nilResp *ChatResponse
	if got := nilResp.Content(); got != "" {
		t.Errorf("nil Content() = %q", got)
	}
	resp := &ChatResponse{Choices: []Choice{{Message: Message{Role: "assistant", Content: "ok"}}}}
	if got := resp.Content(); got != "ok" {
		t.Errorf("Content() = %q, want %q", got, "ok")
	}
}
