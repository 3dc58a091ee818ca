package terminal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// tcellScreen implements Screen over a tcell screen
// The cell grid is kept locally so Cell reads back exactly what was set
type tcellScreen struct {
	screen    tcell.Screen
	colorMode ColorMode
	mouse     bool

	cells  []Cell
	width  int
	height int

	eventCh chan Event
	styles  map[Attr]tcell.Style

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewTcell creates a Screen backed by tcell's terminfo driver
func NewTcell(mode ColorMode, mouse bool) (Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create tcell screen: %w", err)
	}
	return NewTcellWithScreen(s, mode, mouse), nil
}

// NewTcellWithScreen wraps an existing tcell screen, e.g. a SimulationScreen
func NewTcellWithScreen(s tcell.Screen, mode ColorMode, mouse bool) Screen {
	return &tcellScreen{
		screen:    s,
		colorMode: mode,
		mouse:     mouse,
		eventCh:   make(chan Event, 256),
		styles:    make(map[Attr]tcell.Style),
	}
}

func (s *tcellScreen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("init tcell screen: %w", err)
	}
	if s.mouse {
		s.screen.EnableMouse()
	}
	s.screen.HideCursor()
	s.resize(s.screen.Size())

	go s.readLoop()
	s.initialized = true
	return nil
}

func (s *tcellScreen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return
	}
	if s.mouse {
		s.screen.DisableMouse()
	}
	s.screen.Fini()
	s.finalized = true
}

func (s *tcellScreen) resize(w, h int) {
	s.width, s.height = w, h
	s.cells = make([]Cell, w*h)
	blank := Cell{Rune: ' ', Attr: MakeAttr(LightGray, Black)}
	for i := range s.cells {
		s.cells[i] = blank
	}
}

func (s *tcellScreen) Size() (int, int) {
	return s.width, s.height
}

// readLoop translates tcell events until the screen is finalized
func (s *tcellScreen) readLoop() {
	var held ButtonMask
	for {
		tev := s.screen.PollEvent()
		if tev == nil {
			s.send(Event{Type: EventClosed})
			return
		}
		var ev Event
		switch e := tev.(type) {
		case *tcell.EventKey:
			ev = translateKey(e)
		case *tcell.EventMouse:
			ev, held = translateMouse(e, held)
		case *tcell.EventResize:
			w, h := e.Size()
			ev = Event{Type: EventResize, Width: w, Height: h}
		case *tcell.EventInterrupt:
			posted, ok := e.Data().(Event)
			if !ok {
				continue
			}
			ev = posted
		case *tcell.EventError:
			ev = Event{Type: EventError, Err: e}
		default:
			continue
		}
		if ev.Type == EventKey && ev.Key == KeyNone {
			continue
		}
		s.send(ev)
	}
}

func (s *tcellScreen) send(ev Event) {
	select {
	case s.eventCh <- ev:
	default:
	}
}

func (s *tcellScreen) PollEvent(timeout time.Duration) (Event, bool) {
	var timer <-chan time.Time
	if timeout >= 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case ev := <-s.eventCh:
		if ev.Type == EventResize && (ev.Width != s.width || ev.Height != s.height) {
			s.resize(ev.Width, ev.Height)
			s.screen.Sync()
		}
		return ev, true
	case <-timer:
		return Event{}, false
	}
}

func (s *tcellScreen) PostEvent(ev Event) {
	s.screen.PostEvent(tcell.NewEventInterrupt(ev))
}

func (s *tcellScreen) SetCell(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.cells[y*s.width+x] = c
	if c.Rune == WideTail {
		return
	}
	r := c.Rune
	if r <= 0 {
		r = ' '
	}
	s.screen.SetContent(x, y, r, nil, s.style(c.Attr))
}

func (s *tcellScreen) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return Cell{}
	}
	return s.cells[y*s.width+x]
}

// style converts an Attr, caching per attr value
func (s *tcellScreen) style(a Attr) tcell.Style {
	if st, ok := s.styles[a]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(s.color(a.Fg())).Background(s.color(a.Bg()))
	s.styles[a] = st
	return st
}

func (s *tcellScreen) color(c Color) tcell.Color {
	if s.colorMode == ColorModeTrueColor {
		rgb := c.RGB()
		return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
	}
	return tcell.PaletteColor(int(c.ANSI()))
}

func (s *tcellScreen) ShowCursor(x, y int) {
	s.screen.ShowCursor(x, y)
}

func (s *tcellScreen) HideCursor() {
	s.screen.HideCursor()
}

func (s *tcellScreen) Flush() error {
	s.screen.Show()
	return nil
}

func (s *tcellScreen) Sync() {
	s.screen.Sync()
}

func (s *tcellScreen) Bell() {
	s.screen.Beep()
}

// translateKey maps tcell keys onto the local key set
func translateKey(e *tcell.EventKey) Event {
	ev := Event{Type: EventKey, Modifiers: translateMod(e.Modifiers())}
	k := e.Key()

	switch k {
	case tcell.KeyRune:
		r := e.Rune()
		// Newer terminals report Ctrl+letter as a modified rune
		if ev.Modifiers&ModCtrl != 0 {
			switch {
			case r >= 'a' && r <= 'z':
				ev.Key = KeyCtrlA + Key(r-'a')
				return ev
			case r >= 'A' && r <= 'Z':
				ev.Key = KeyCtrlA + Key(r-'A')
				return ev
			}
		}
		ev.Key = KeyRune
		ev.Rune = r
		return ev
	case tcell.KeyEnter:
		ev.Key = KeyEnter
	case tcell.KeyTab:
		ev.Key = KeyTab
	case tcell.KeyBacktab:
		ev.Key = KeyBacktab
		ev.Modifiers |= ModShift
	case tcell.KeyEscape:
		ev.Key = KeyEscape
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ev.Key = KeyBackspace
	case tcell.KeyDelete:
		ev.Key = KeyDelete
	case tcell.KeyUp:
		ev.Key = KeyUp
	case tcell.KeyDown:
		ev.Key = KeyDown
	case tcell.KeyLeft:
		ev.Key = KeyLeft
	case tcell.KeyRight:
		ev.Key = KeyRight
	case tcell.KeyHome:
		ev.Key = KeyHome
	case tcell.KeyEnd:
		ev.Key = KeyEnd
	case tcell.KeyPgUp:
		ev.Key = KeyPageUp
	case tcell.KeyPgDn:
		ev.Key = KeyPageDown
	case tcell.KeyInsert:
		ev.Key = KeyInsert
	case tcell.KeyCtrlSpace:
		ev.Key = KeyCtrlSpace
	default:
		switch {
		case k >= tcell.KeyF1 && k <= tcell.KeyF12:
			ev.Key = KeyF1 + Key(k-tcell.KeyF1)
		case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
			ev.Key = KeyCtrlA + Key(k-tcell.KeyCtrlA)
			ev.Modifiers |= ModCtrl
		}
	}
	return ev
}

func translateMod(m tcell.ModMask) Modifier {
	var mod Modifier
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	return mod
}

// translateMouse derives press/release/drag from the change in held buttons
// tcell reports button state only
func translateMouse(e *tcell.EventMouse, prev ButtonMask) (Event, ButtonMask) {
	x, y := e.Position()
	tb := e.Buttons()
	ev := Event{Type: EventMouse, MouseX: x, MouseY: y, Modifiers: translateMod(e.Modifiers())}

	switch {
	case tb&tcell.WheelUp != 0:
		ev.MouseBtn = MouseBtnWheelUp
		ev.MouseAction = MouseActionPress
		ev.Buttons = prev
		return ev, prev
	case tb&tcell.WheelDown != 0:
		ev.MouseBtn = MouseBtnWheelDown
		ev.MouseAction = MouseActionPress
		ev.Buttons = prev
		return ev, prev
	}

	var held ButtonMask
	if tb&tcell.ButtonPrimary != 0 {
		held |= ButtonLeft
	}
	if tb&tcell.ButtonSecondary != 0 {
		held |= ButtonRight
	}
	if tb&tcell.ButtonMiddle != 0 {
		held |= ButtonMiddle
	}

	pressed := held &^ prev
	released := prev &^ held
	switch {
	case pressed != 0:
		ev.MouseAction = MouseActionPress
		ev.MouseBtn = maskButton(pressed)
	case released != 0:
		ev.MouseAction = MouseActionRelease
		ev.MouseBtn = maskButton(released)
	case held != 0:
		ev.MouseAction = MouseActionDrag
		ev.MouseBtn = maskButton(held)
	default:
		ev.MouseAction = MouseActionMove
	}
	ev.Buttons = held
	return ev, held
}

// maskButton picks one button from a mask, left first
func maskButton(m ButtonMask) MouseButton {
	switch {
	case m&ButtonLeft != 0:
		return MouseBtnLeft
	case m&ButtonRight != 0:
		return MouseBtnRight
	case m&ButtonMiddle != 0:
		return MouseBtnMiddle
	}
	return MouseBtnNone
}
