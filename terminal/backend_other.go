//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

import (
	"fmt"
	"os"
	"runtime"
)

// stubBackend refuses to start; use the tcell screen on these platforms
type stubBackend struct{}

func newBackend(_, _ *os.File) Backend { return stubBackend{} }

func (stubBackend) Init() error {
	return fmt.Errorf("ansi backend on %s: %w", runtime.GOOS, ErrNotTerminal)
}
func (stubBackend) Fini()                                    {}
func (stubBackend) Size() (int, int)                         { return 80, 24 }
func (stubBackend) Write(p []byte) (int, error)              { return len(p), nil }
func (stubBackend) Read(<-chan struct{}) ([]byte, error)     { return nil, os.ErrClosed }
func (stubBackend) SetResizeHandler(func(width, height int)) {}

func resetTerminalMode() {}
