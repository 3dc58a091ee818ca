package terminal

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"
)

// ErrNotTerminal is returned by Init when the input is not a terminal
var ErrNotTerminal = errors.New("not a terminal")

// Screen is the boundary between the view runtime and a concrete terminal
// All methods except PostEvent must be called from the UI goroutine
type Screen interface {
	// Init enters raw mode and the alternate screen
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current dimensions; valid after Init and after each EventResize
	Size() (width, height int)

	// PollEvent waits up to timeout for input; false means the timeout elapsed
	// A negative timeout blocks until an event arrives
	PollEvent(timeout time.Duration) (Event, bool)

	// PostEvent injects a synthetic event; safe from any goroutine
	PostEvent(Event)

	// SetCell and Cell access the drawing grid; out-of-range access is ignored
	SetCell(x, y int, c Cell)
	Cell(x, y int) Cell

	ShowCursor(x, y int)
	HideCursor()

	// Flush makes the physical screen match the drawing grid
	Flush() error

	// Sync forces the next Flush to repaint everything
	Sync()

	Bell()
}

// ANSIOptions configures NewANSI
type ANSIOptions struct {
	In        *os.File  // Defaults to os.Stdin
	Out       *os.File  // Defaults to os.Stdout
	ColorMode ColorMode // Used when Detect is false
	Detect    bool      // Detect color mode from the environment
	Mouse     bool      // Enable SGR mouse reporting
}

// ansiScreen implements Screen by writing escape sequences directly
type ansiScreen struct {
	backend  Backend
	renderer *Renderer
	opts     ANSIOptions

	input       *inputReader
	resizeCh    chan Event
	syntheticCh chan Event

	cursorVisible bool
	cursorX       int
	cursorY       int

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewANSI creates a Screen that drives an xterm-compatible terminal without terminfo
func NewANSI(opts ANSIOptions) Screen {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Detect {
		opts.ColorMode = DetectColorMode()
	}
	b := newBackend(opts.In, opts.Out)
	return &ansiScreen{
		backend:     b,
		renderer:    NewRenderer(b, opts.ColorMode),
		opts:        opts,
		resizeCh:    make(chan Event, 1),
		syntheticCh: make(chan Event, 16),
	}
}

func (s *ansiScreen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := s.backend.Init(); err != nil {
		return err
	}

	s.renderer.Resize(s.backend.Size())
	s.input = newInputReader(s.backend)

	s.backend.SetResizeHandler(func(w, h int) {
		ev := Event{Type: EventResize, Width: w, Height: h}
		// Keep only the latest size
		select {
		case s.resizeCh <- ev:
		default:
			select {
			case <-s.resizeCh:
			default:
			}
			select {
			case s.resizeCh <- ev:
			default:
			}
		}
	})

	s.renderer.writeRaw(csiAltScreenEnter)
	s.renderer.writeRaw(csiCursorHide)
	s.renderer.writeRaw(csiAutoWrapOff)
	if s.opts.Mouse {
		s.renderer.writeRaw(csiMouseOn)
	}
	if err := s.renderer.clearScreen(); err != nil {
		s.backend.Fini()
		return err
	}

	s.input.start()
	s.initialized = true
	return nil
}

func (s *ansiScreen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return
	}

	if s.opts.Mouse {
		s.renderer.writeRaw(csiMouseOff)
	}
	if s.input != nil {
		s.input.stop()
	}

	s.renderer.writeRaw(csiCursorShow)
	s.renderer.writeRaw(csiAltScreenExit)
	// Re-enable wrap after leaving the alt screen so the main buffer gets it
	s.renderer.writeRaw(csiAutoWrapOn)
	s.renderer.writeRaw(csiSGR0)

	s.backend.Fini()
	s.finalized = true
}

func (s *ansiScreen) Size() (int, int) {
	return s.renderer.Size()
}

func (s *ansiScreen) PollEvent(timeout time.Duration) (Event, bool) {
	select {
	case ev := <-s.syntheticCh:
		return ev, true
	default:
	}

	var input <-chan Event
	if s.input != nil {
		input = s.input.events()
	}

	var timer <-chan time.Time
	if timeout >= 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case ev := <-s.syntheticCh:
		return ev, true
	case ev := <-input:
		return ev, true
	case ev := <-s.resizeCh:
		if w, h := s.renderer.Size(); w != ev.Width || h != ev.Height {
			s.renderer.Resize(ev.Width, ev.Height)
			s.renderer.clearScreen()
		}
		return ev, true
	case <-timer:
		return Event{}, false
	}
}

func (s *ansiScreen) PostEvent(ev Event) {
	select {
	case s.syntheticCh <- ev:
	default:
	}
}

func (s *ansiScreen) SetCell(x, y int, c Cell) {
	s.renderer.SetCell(x, y, c)
}

func (s *ansiScreen) Cell(x, y int) Cell {
	return s.renderer.Cell(x, y)
}

func (s *ansiScreen) ShowCursor(x, y int) {
	s.cursorX, s.cursorY = x, y
	if !s.cursorVisible {
		s.cursorVisible = true
		s.renderer.writeRaw(csiCursorShow)
	}
}

func (s *ansiScreen) HideCursor() {
	if s.cursorVisible {
		s.cursorVisible = false
		s.renderer.writeRaw(csiCursorHide)
	}
}

func (s *ansiScreen) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return nil
	}
	n, err := s.renderer.Flush()
	if err != nil {
		return err
	}
	if s.cursorVisible && (n > 0 || s.renderer.cursorX != s.cursorX || s.renderer.cursorY != s.cursorY) {
		return s.renderer.moveCursor(s.cursorX, s.cursorY)
	}
	return nil
}

func (s *ansiScreen) Sync() {
	s.renderer.Invalidate()
}

func (s *ansiScreen) Bell() {
	s.renderer.writeRaw(csiBell)
}

// EmergencyReset attempts to restore the terminal to a sane state
// Call this from panic recovery if Fini cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseOff)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone do not restore termios
	resetTerminalMode()
}
