package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"
	"time"
)

// scriptedBackend returns one scripted read per call, then idles until stopped
type scriptedBackend struct {
	mu    sync.Mutex
	reads []scriptedRead
}

type scriptedRead struct {
	data string
	err  error
}

func (b *scriptedBackend) Write(p []byte) (int, error) { return len(p), nil }
func (b *scriptedBackend) Init() error { return nil }
func (b *scriptedBackend) Fini() {}
func (b *scriptedBackend) Size() (int, int) { return 80, 24 }
func (b *scriptedBackend) SetResizeHandler(func(w, h int)) {}

func (b *scriptedBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	b.mu.Lock()
	if len(b.reads) > 0 {
		r := b.reads[0]
		b.reads = b.reads[1:]
		b.mu.Unlock()
		if r.err != nil {
			return nil, r.err
		}
		return []byte(r.data), nil
	}
	b.mu.Unlock()

	select {
	case <-stopCh:
	case <-time.After(5 * time.Millisecond):
	}
	return nil, nil
}

// nextEvent waits for one event from the reader
func nextEvent(t *testing.T, r *inputReader) Event {
	t.Helper()
	select {
	case ev := <-r.events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("Expected an event, got none")
		return Event{}
	}
}

func TestReaderSurvivesTransientError(t *testing.T) {
	b := &scriptedBackend{reads: []scriptedRead{
		{err: errors.New("transient EIO")},
		{data: "a"},
	}}
	r := newInputReader(b)
	r.start()
	defer r.stop()

	if ev := nextEvent(t, r); ev.Type != EventError {
		t.Fatalf("Expected error event first, got %+v", ev)
	}
	ev := nextEvent(t, r)
	if ev.Type != EventKey || ev.Rune != 'a' {
		t.Errorf("Expected key 'a' after the failed read, got %+v", ev)
	}
}

func TestReaderClosedInput(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"eof", io.EOF},
		{"closed", fmt.Errorf("read input: %w", os.ErrClosed)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &scriptedBackend{reads: []scriptedRead{{err: tt.err}}}
			r := newInputReader(b)
			r.start()
			defer r.stop()

			if ev := nextEvent(t, r); ev.Type != EventClosed {
				t.Errorf("Expected closed event, got %+v", ev)
			}
		})
	}
}
