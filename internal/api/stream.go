package api

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// maxLineSize bounds a single SSE line. Some providers send large chunks.
const maxLineSize = 1 << 20

// StreamReader reads SSE events from a chat-completion stream.
type StreamReader struct {
	scanner *bufio.Scanner
	body    io.ReadCloser
	done    bool
}

// NewStreamReader creates a new StreamReader from an io.ReadCloser.
func NewStreamReader(body io.ReadCloser) *StreamReader {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &StreamReader{
		scanner: scanner,
		body:    body,
	}
}

// StreamChunk represents a chunk of streamed content.
type StreamChunk struct {
	Content      string
	Done         bool
	FinishReason *string
}

// Next reads the next chunk from the stream.
// Returns nil, nil once the stream is complete.
// Returns nil, error on stream errors.
func (r *StreamReader) Next() (*StreamChunk, error) {
	if r.done {
		return nil, nil
	}

	for r.scanner.Scan() {
		data, ok := eventData(r.scanner.Text())
		if !ok {
			continue
		}

		if data == "[DONE]" {
			r.done = true
			return &StreamChunk{Done: true}, nil
		}

		var response ChatResponse
		if err := json.Unmarshal([]byte(data), &response); err != nil {
			// Skip malformed chunks
			continue
		}

		if response.Error != nil {
			r.done = true
			return nil, &APIError{Message: response.Error.Message}
		}

		if len(response.Choices) > 0 {
			choice := response.Choices[0]
			return &StreamChunk{
				Content:      choice.Delta.Content,
				FinishReason: choice.FinishReason,
			}, nil
		}
	}

	r.done = true
	if err := r.scanner.Err(); err != nil {
		return nil, &StreamError{Message: "reading stream", Cause: err}
	}

	// Body ended without [DONE]
	return &StreamChunk{Done: true}, nil
}

// eventData extracts the payload of an SSE "data:" line. Comments, blank
// lines and other fields are reported as not ok.
func eventData(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "data:")
	if !ok {
		return "", false
	}
	return strings.TrimPrefix(rest, " "), true
}

// Close closes the underlying stream.
func (r *StreamReader) Close() error {
	r.done = true
	return r.body.Close()
}

// ReadAll reads all remaining content and returns it as a string.
func (r *StreamReader) ReadAll() (string, error) {
	var content strings.Builder

	for {
		chunk, err := r.Next()
		if err != nil {
			return content.String(), err
		}
		if chunk == nil || chunk.Done {
			break
		}
		content.WriteString(chunk.Content)
	}

	return content.String(), nil
}
