//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollInterval bounds how long Read blocks, which is also the lone-ESC timeout
const pollInterval = 50

type unixBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State

	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}
}

func newBackend(in, out *os.File) Backend {
	return &unixBackend{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
	}
}

func (b *unixBackend) Init() error {
	fd := b.in.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return fmt.Errorf("input %s: %w", b.in.Name(), ErrNotTerminal)
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	b.oldTerm = old
	return nil
}

func (b *unixBackend) Fini() {
	if b.resizeStopCh != nil {
		close(b.resizeStopCh)
		<-b.resizeDoneCh
		b.resizeStopCh = nil
	}
	if b.oldTerm != nil {
		term.Restore(b.inFd, b.oldTerm)
		b.oldTerm = nil
	}
}

func (b *unixBackend) Size() (int, int) {
	return getTerminalSize(b.outFd)
}

func (b *unixBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *unixBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	buf := make([]byte, 256)

	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		fds := []unix.PollFd{{Fd: int32(b.inFd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, pollInterval)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return nil, fmt.Errorf("poll input: %w", err)
		}
		if n == 0 {
			return nil, nil
		}
		if fds[0].Revents&(unix.POLLHUP|unix.POLLERR) != 0 && fds[0].Revents&unix.POLLIN == 0 {
			return nil, fmt.Errorf("poll input: %w", os.ErrClosed)
		}

		rn, err := unix.Read(b.inFd, buf)
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				continue
			}
			return nil, fmt.Errorf("read input: %w", err)
		}
		if rn == 0 {
			return nil, fmt.Errorf("read input: %w", os.ErrClosed)
		}

		ret := make([]byte, rn)
		copy(ret, buf[:rn])
		return ret, nil
	}
}

func (b *unixBackend) SetResizeHandler(handler func(width, height int)) {
	b.resizeStopCh = make(chan struct{})
	b.resizeDoneCh = make(chan struct{})

	go func() {
		defer close(b.resizeDoneCh)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-b.resizeStopCh:
				return
			case <-sigCh:
				w, h := b.Size()
				handler(w, h)
			}
		}
	}()
}

// getTerminalSize returns the terminal size for a given fd, 80x24 when unknown
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// resetTerminalMode attempts to restore cooked mode through /dev/tty
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()
	fd := int(tty.Fd())
	if termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios); err == nil {
		termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
		termios.Iflag |= unix.ICRNL
		unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
	}
}
