// @focus: #app { loop, idle, modal }
package app

import (
	"io"
	"log"
	"time"

	"github.com/lixenwraith/termdesk/command"
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/palette"
	"github.com/lixenwraith/termdesk/terminal"
	"github.com/lixenwraith/termdesk/views"
)

// Program is the root view and the event source for every modal loop
// Layout: desktop above, status line on the last row
type Program struct {
	*views.Group

	Desktop    *views.Desktop
	StatusLine *views.StatusLine

	// OnCommand receives commands no view consumed
	OnCommand func(ev *event.Event)
	// OnIdle runs each time a poll times out
	OnIdle func()

	screen terminal.Screen
	cfg    *Config
	log    *log.Logger

	pending      *event.Event
	interrupting bool
	modal        []views.Executor // ExecView stack, innermost last

	// Double-click tracking
	now       func() time.Time
	lastClick time.Time
	lastBtn   terminal.MouseButton
	lastPos   geom.Point
}

// NewProgram builds the root view over an initialized screen; a nil cfg uses DefaultConfig
func NewProgram(screen terminal.Screen, cfg *Config) *Program {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	w, h := screen.Size()
	p := &Program{
		Group:  views.NewGroup(geom.RectWH(0, 0, w, h)),
		screen: screen,
		cfg:    cfg,
		log:    logger,
		now:    time.Now,
	}

	if app, ok := palette.ByName(cfg.Palette); ok {
		palette.SetApplication(app)
	} else {
		p.log.Printf("warn: unknown palette %q, using color", cfg.Palette)
		palette.ClearApplication()
	}

	p.Desktop = views.NewDesktop(geom.RectWH(0, 0, w, max(h-1, 0)))
	p.Desktop.SetOptions(views.OptSelectable, true)
	p.Desktop.Rejected = func(*event.Event) { p.reject() }
	p.StatusLine = views.NewStatusLine(geom.RectWH(0, max(h-1, 0), w, 1),
		views.StatusItem{Text: "~Ctrl-Q~ Quit", Key: terminal.KeyCtrlQ, Command: command.Quit},
		views.StatusItem{Text: "~F3~ Close", Key: terminal.KeyF3, Command: command.Close},
		views.StatusItem{Key: terminal.KeyF6, Command: command.Next},
		views.StatusItem{Key: terminal.KeyF7, Command: command.Prev},
	)
	p.Insert(p.Desktop)
	p.Insert(p.StatusLine)
	return p
}

// Run executes the top-level loop until Quit
func (p *Program) Run() command.ID {
	return p.Group.Execute(p, p)
}

// HandleEvent dispatches into the tree; Quit ends the top-level loop
func (p *Program) HandleEvent(ev *event.Event) {
	p.Group.HandleEvent(ev)
	if ev.IsCommand(command.Quit) {
		p.EndModal(command.Quit)
		ev.Clear()
	}
}

// ExecView runs v modally on the desktop and returns its end code
// v is removed afterwards and the previous desktop focus restored
func (p *Program) ExecView(v views.Executor) command.ID {
	d := p.Desktop
	saved := d.Current()

	if v.Options()&views.OptCentered != 0 {
		area := geom.RectWH(0, 0, d.Bounds().Width(), d.Bounds().Height())
		v.SetBounds(views.Center(v.Bounds(), area))
	}
	// Modal before insertion so it lands above any earlier modal view
	v.SetState(views.StateModal, true)
	d.Insert(v)
	p.modal = append(p.modal, v)
	p.log.Printf("debug: exec view %d depth %d", v.ID(), len(p.modal))

	result := v.Execute(p)

	p.modal = p.modal[:len(p.modal)-1]
	v.SetState(views.StateModal, false)
	d.Remove(v)
	if saved != nil && d.IndexOf(saved) >= 0 {
		d.Select(saved)
	}
	return result
}

// PutEvent queues one event for the next GetEvent; a second call replaces the first
func (p *Program) PutEvent(ev event.Event) {
	if p.pending != nil {
		p.log.Printf("warn: dropping pending event %v", *p.pending)
	}
	p.pending = &ev
}

// GetEvent reconciles commands, redraws, then returns the next event
// Pending events come first, then interrupt unwinding, then terminal input
func (p *Program) GetEvent(ev *event.Event) {
	for {
		p.reconcile()
		p.redraw()

		if p.pending != nil {
			*ev = *p.pending
			p.pending = nil
			return
		}
		if p.interrupting {
			if len(p.modal) > 0 {
				*ev = event.NewCommand(command.Cancel, nil)
			} else {
				*ev = event.NewCommand(command.Quit, nil)
			}
			return
		}

		tev, ok := p.screen.PollEvent(p.cfg.PollTimeout)
		if !ok {
			if p.OnIdle != nil {
				p.OnIdle()
			}
			continue
		}
		if p.translate(tev, ev) {
			p.preview(ev)
			p.toDesktop(ev)
			return
		}
	}
}

// Unhandled receives whatever the active loop's handler left
func (p *Program) Unhandled(ev *event.Event) {
	switch ev.Kind {
	case event.Command:
		switch {
		case ev.Command == command.Quit:
			// Quit inside a modal view unwinds every loop
			p.interrupting = true
			ev.Clear()
		case ev.Command == command.Cancel && p.interrupting && len(p.modal) > 0:
			p.modal[len(p.modal)-1].EndModal(command.Cancel)
			ev.Clear()
		case p.OnCommand != nil:
			p.OnCommand(ev)
		}
	case event.MouseDown:
		if len(p.modal) > 0 {
			p.reject()
		} else {
			p.bell()
		}
	case event.Keyboard:
		p.bell()
	}
}

// reconcile tells the tree about command-set changes
func (p *Program) reconcile() {
	if !command.Changed() {
		return
	}
	command.ClearChanged()
	bc := event.NewBroadcast(command.CommandSetChanged, nil)
	p.Group.HandleEvent(&bc)
}

func (p *Program) redraw() {
	w, h := p.screen.Size()
	p.Draw(views.NewSurface(p.screen, w, h))
	if err := p.screen.Flush(); err != nil {
		p.log.Printf("error: flush: %v", err)
	}
}

// preview lets the status line turn hotkeys into commands before the modal handler sees them
func (p *Program) preview(ev *event.Event) {
	if ev.Kind == event.Keyboard || ev.Kind == event.MouseDown {
		p.StatusLine.HandleEvent(ev)
	}
}

// toDesktop rebases a positional event for a modal loop, whose host is a desktop child
// The top-level loop dispatches from the Program itself and keeps screen coordinates
func (p *Program) toDesktop(ev *event.Event) {
	if len(p.modal) > 0 && ev.Is(event.Positional) {
		ev.Where = ev.Where.Sub(p.Desktop.Bounds().A)
	}
}

// translate converts a terminal event; false means nothing to dispatch
func (p *Program) translate(tev terminal.Event, ev *event.Event) bool {
	switch tev.Type {
	case terminal.EventKey:
		*ev = event.NewKey(tev.Key, tev.Rune, tev.Modifiers)
		return true

	case terminal.EventMouse:
		where := geom.Point{X: tev.MouseX, Y: tev.MouseY}
		var kind event.Kind
		switch tev.MouseAction {
		case terminal.MouseActionPress:
			switch tev.MouseBtn {
			case terminal.MouseBtnWheelUp:
				kind = event.MouseWheelUp
			case terminal.MouseBtnWheelDown:
				kind = event.MouseWheelDown
			default:
				kind = event.MouseDown
			}
		case terminal.MouseActionRelease:
			kind = event.MouseUp
		default:
			kind = event.MouseMove
		}
		*ev = event.NewMouse(kind, where, tev.Buttons)
		ev.Mod = tev.Modifiers
		if kind == event.MouseDown {
			ev.Double = p.isDoubleClick(tev.MouseBtn, where)
		}
		return true

	case terminal.EventResize:
		p.resize(tev.Width, tev.Height)
		p.screen.Sync()
		return false

	case terminal.EventInterrupt, terminal.EventClosed:
		p.log.Printf("info: input ended (%d), unwinding %d modal views", tev.Type, len(p.modal))
		p.interrupting = true
		return false

	case terminal.EventError:
		p.log.Printf("error: poll: %v", tev.Err)
		return false
	}
	return false
}

// isDoubleClick records a press and reports whether it completes a double click
func (p *Program) isDoubleClick(btn terminal.MouseButton, where geom.Point) bool {
	now := p.now()
	double := !p.lastClick.IsZero() &&
		btn == p.lastBtn && where == p.lastPos &&
		now.Sub(p.lastClick) <= p.cfg.DoubleClick
	if double {
		// A third press starts a new pair
		p.lastClick = time.Time{}
		return true
	}
	p.lastClick, p.lastBtn, p.lastPos = now, btn, where
	return false
}

// resize lays the desktop and status line out over w x h
func (p *Program) resize(w, h int) {
	p.SetBounds(geom.RectWH(0, 0, w, h))
	p.Desktop.SetBounds(geom.RectWH(0, 0, w, max(h-1, 0)))
	p.StatusLine.SetBounds(geom.RectWH(0, max(h-1, 0), w, 1))
}

func (p *Program) bell() {
	switch p.cfg.Bell {
	case BellTerminal:
		p.screen.Bell()
	case BellAudio:
		if p.cfg.Beeper != nil {
			p.cfg.Beeper.Bell()
		} else {
			p.screen.Bell()
		}
	}
}

func (p *Program) reject() {
	if p.cfg.Bell == BellAudio {
		if r, ok := p.cfg.Beeper.(Rejecter); ok {
			r.Reject()
			return
		}
	}
	p.bell()
}
