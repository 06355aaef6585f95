package pty

import (
	"sync"
	"time"

	"github.com/pleimann/swipepad/internal/action"
)

// KeySink is where a Writer sends keys
type KeySink interface {
	WriteKey(key action.KeyPress) error
}

// Writer paces key presses for TUIs that drop input sent too quickly.
// Writes from concurrent gestures are not interleaved.
type Writer struct {
	sink KeySink

	mu       sync.Mutex
	keyDelay time.Duration
}

func NewWriter(sink KeySink, keyDelay time.Duration) *Writer {
	return &Writer{
		sink:     sink,
		keyDelay: keyDelay,
	}
}

// SetKeyDelay changes the pause after each key
func (w *Writer) SetKeyDelay(d time.Duration) {
	w.mu.Lock()
	w.keyDelay = d
	w.mu.Unlock()
}

// WriteKey writes a single key press
func (w *Writer) WriteKey(key action.KeyPress) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.sink.WriteKey(key); err != nil {
		return err
	}
	if w.keyDelay > 0 {
		time.Sleep(w.keyDelay)
	}
	return nil
}
