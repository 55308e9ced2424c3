package chat

import "sync"

// Emitter receives outbound text chunks from a skill handler, in order, as
// soon as they are produced. Implementations must be safe for use from the
// single handler goroutine driving a turn.
type Emitter interface {
	Emit(text string)
}

// ChannelEmitter bridges a handler to a streaming transport. The consumer
// ranges over C until it is closed.
type ChannelEmitter struct {
	C      chan Chunk
	closed bool
	mu     sync.Mutex
}

// NewChannelEmitter creates an emitter buffered enough that a briefly slow
// consumer does not stall the model stream.
func NewChannelEmitter() *ChannelEmitter {
	return &ChannelEmitter{C: make(chan Chunk, 64)}
}

func (e *ChannelEmitter) Emit(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.C <- Chunk{Text: text}
}

// Close signals the consumer that the turn is complete. Safe to call twice.
func (e *ChannelEmitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.C)
	}
}

// BufferEmitter records every chunk; used by the JSON endpoint and by tests
// that assert on chunk ordering.
type BufferEmitter struct {
	Chunks []Chunk
}

func (e *BufferEmitter) Emit(text string) {
	e.Chunks = append(e.Chunks, Chunk{Text: text})
}

// Texts returns the emitted chunk texts in order.
func (e *BufferEmitter) Texts() []string {
	out := make([]string, 0, len(e.Chunks))
	for _, c := range e.Chunks {
		out = append(out, c.Text)
	}
	return out
}

// Joined returns the whole emitted output as one string.
func (e *BufferEmitter) Joined() string {
	var s string
	for _, c := range e.Chunks {
		s += c.Text
	}
	return s
}
