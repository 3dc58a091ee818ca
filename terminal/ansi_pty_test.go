//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

// ptyOutput drains the master side so writes to the tty never block
type ptyOutput struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (o *ptyOutput) drain(f *os.File) {
	b := make([]byte, 4096)
	for {
		n, err := f.Read(b)
		if n > 0 {
			o.mu.Lock()
			o.buf.Write(b[:n])
			o.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (o *ptyOutput) waitFor(t *testing.T, s string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		o.mu.Lock()
		found := strings.Contains(o.buf.String(), s)
		o.mu.Unlock()
		if found {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %q in output", s)
}

func TestANSIOverPty(t *testing.T) {
	master, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer master.Close()
	defer tty.Close()

	if err := pty.Setsize(master, &pty.Winsize{Rows: 10, Cols: 20}); err != nil {
		t.Fatalf("Setsize failed: %v", err)
	}

	out := &ptyOutput{}
	go out.drain(master)

	scr := NewANSI(ANSIOptions{In: tty, Out: tty, ColorMode: ColorMode16})
	if err := scr.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer scr.Fini()

	if w, h := scr.Size(); w != 20 || h != 10 {
		t.Errorf("Expected 20x10, got %dx%d", w, h)
	}
	out.waitFor(t, "\x1b[?1049h")

	scr.SetCell(0, 0, Cell{Rune: 'Z', Attr: MakeAttr(White, Red)})
	if err := scr.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	out.waitFor(t, "\x1b[0;97;41mZ")

	master.Write([]byte("q"))
	ev, ok := scr.PollEvent(2 * time.Second)
	if !ok || ev.Type != EventKey || ev.Rune != 'q' {
		t.Errorf("Expected rune q, got %+v (ok=%v)", ev, ok)
	}
}

func TestANSIRejectsNonTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	defer r.Close()
	defer w.Close()

	scr := NewANSI(ANSIOptions{In: r, Out: w})
	err = scr.Init()
	if !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Expected ErrNotTerminal, got %v", err)
	}
}
