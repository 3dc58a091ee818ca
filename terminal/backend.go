package terminal

import "io"

// Backend abstracts the platform side of the ANSI screen: raw mode, byte I/O and resize notification
type Backend interface {
	// Output stream; the renderer buffers in front of it
	io.Writer

	Init() error
	Fini()

	Size() (width, height int)

	// Read blocks until input is available, the stop channel is closed, or an error occurs
	// A nil slice with nil error means the poll interval elapsed without input
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback invoked off the UI goroutine
	SetResizeHandler(handler func(width, height int))
}
