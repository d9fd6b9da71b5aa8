package launcher

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vstratful/openrouter-launcher/internal/api"
	"github.com/vstratful/openrouter-launcher/internal/config"
)

// Stream messages carry the stream they came from so that messages from a
// cancelled or replaced stream can be dropped.
type (
	StreamChunkMsg struct {
		Stream *StreamState
		Text   string
	}
	StreamDoneMsg struct {
		Stream *StreamState
	}
	StreamErrMsg struct {
		Stream *StreamState
		Err    error
	}
)

// StreamState manages one in-flight answer. The reading goroutine produces
// chunks; Update consumes them one message at a time.
type StreamState struct {
	ctx     context.Context
	cancel  context.CancelFunc
	chunks  chan string
	errChan chan error

	mu     sync.Mutex
	done   bool
	reader *api.StreamReader
}

// NewStreamState creates a StreamState that is cancelled after timeout.
// timeout <= 0 means no deadline.
func NewStreamState(timeout time.Duration) *StreamState {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	return &StreamState{
		ctx:     ctx,
		cancel:  cancel,
		chunks:  make(chan string, config.StreamChannelBuffer),
		errChan: make(chan error, 1),
	}
}

// Chunks returns the channel for receiving stream chunks.
func (s *StreamState) Chunks() <-chan string {
	return s.chunks
}

// ErrChan returns the channel for receiving stream errors.
func (s *StreamState) ErrChan() <-chan error {
	return s.errChan
}

// SetReader sets the stream reader.
func (s *StreamState) SetReader(reader *api.StreamReader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reader = reader
}

// SendChunk delivers a chunk, giving up if the stream was cancelled.
func (s *StreamState) SendChunk(chunk string) bool {
	select {
	case s.chunks <- chunk:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// SendError records the first error.
func (s *StreamState) SendError(err error) {
	select {
	case s.errChan <- err:
	default:
	}
}

// Close marks the stream as done and closes channels. Only the producing
// goroutine calls Close.
func (s *StreamState) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.done {
		s.done = true
		close(s.chunks)
		close(s.errChan)
		if s.reader != nil {
			s.reader.Close()
		}
		s.cancel()
	}
}

// IsDone returns whether the stream is done.
func (s *StreamState) IsDone() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Cancel aborts the request. The producer notices and closes the stream.
func (s *StreamState) Cancel() {
	s.cancel()
}

// Cancelled reports whether Cancel was called or the context expired.
func (s *StreamState) Cancelled() bool {
	return s.ctx.Err() != nil
}

// produce runs the request and feeds chunks until the answer ends.
func (s *StreamState) produce(client api.Client, req *api.ChatRequest) {
	defer s.Close()

	reader, err := client.ChatStream(s.ctx, req)
	if err != nil {
		s.SendError(err)
		return
	}
	s.SetReader(reader)

	for {
		chunk, err := reader.Next()
		if err != nil {
			s.SendError(err)
			return
		}
		if chunk == nil || chunk.Done {
			return
		}
		if chunk.Content != "" && !s.SendChunk(chunk.Content) {
			return
		}
	}
}

// startStream launches the producer and waits for its first message.
func startStream(client api.Client, req *api.ChatRequest, stream *StreamState) tea.Cmd {
	return func() tea.Msg {
		go stream.produce(client, req)
		return waitForChunk(stream)
	}
}

// waitForChunk blocks until the stream yields a chunk or ends. Buffered
// chunks are delivered before a trailing error.
func waitForChunk(stream *StreamState) tea.Msg {
	if chunk, ok := <-stream.Chunks(); ok {
		return StreamChunkMsg{Stream: stream, Text: chunk}
	}
	if err, ok := <-stream.ErrChan(); ok && err != nil {
		return StreamErrMsg{Stream: stream, Err: err}
	}
	return StreamDoneMsg{Stream: stream}
}

func waitCmd(stream *StreamState) tea.Cmd {
	return func() tea.Msg {
		return waitForChunk(stream)
	}
}
