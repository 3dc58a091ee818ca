// @focus: #ui { window, frame }
package views

import (
	"github.com/lixenwraith/termdesk/command"
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/palette"
	"github.com/lixenwraith/termdesk/terminal"
)

// Window palette slots
const (
	windowFramePassive byte = 1
	windowFrameActive  byte = 2
	windowFrameIcon    byte = 3
	windowInterior     byte = 6
)

// Close icon position on the top frame row
const (
	closeIconX     = 2
	closeIconWidth = 3
)

// Window is a framed, titled container; children live in an interior group inset by the frame
type Window struct {
	Base
	Title string

	interior *Group
	variant  palette.Variant
	host     View // Most-derived view, receives modal loop events
}

// NewWindow creates a top-selectable window with a shadow
func NewWindow(r geom.Rect, title string, v palette.Variant) *Window {
	w := &Window{Title: title}
	w.init(r, v, OwnerWindow)
	w.host = w
	return w
}

func (w *Window) init(r geom.Rect, v palette.Variant, t OwnerType) {
	w.Base = NewBase(r)
	w.variant = v
	w.SetPalette(v.Palette())
	w.SetOptions(OptSelectable|OptTopSelect, true)
	w.SetState(StateShadow, true)
	w.interior = NewGroup(interiorRect(r))
	w.interior.SetHost(w.ID(), t, v)
}

// interiorRect is the frame-inset area in window-local coordinates
func interiorRect(r geom.Rect) geom.Rect {
	return geom.RectWH(1, 1, max(r.Width()-2, 0), max(r.Height()-2, 0))
}

// Variant returns the palette variant children resolve through
func (w *Window) Variant() palette.Variant { return w.variant }

// Interior returns the group holding the window's children
func (w *Window) Interior() *Group { return w.interior }

// Insert adds v to the interior; v's bounds are relative to the interior origin
func (w *Window) Insert(v View) { w.interior.Insert(v) }

func (w *Window) SetBounds(r geom.Rect) {
	w.Base.SetBounds(r)
	w.interior.SetBounds(interiorRect(r))
}

// Execute runs a modal loop over this window
func (w *Window) Execute(src EventSource) command.ID {
	return w.interior.Execute(src, w.host)
}

// EndModal ends the loop started by Execute
func (w *Window) EndModal(c command.ID) { w.interior.EndModal(c) }

func (w *Window) HandleEvent(ev *event.Event) {
	if ev.Is(event.Positional) {
		if !w.bounds.Contains(ev.Where) {
			return
		}
		local := ev.Where.Sub(w.bounds.A)
		if ev.Kind == event.MouseDown && w.onCloseIcon(local) {
			ev.ToCommand(command.Close, w.ID())
		} else {
			saved := ev.Where
			ev.Where = local
			w.interior.HandleEvent(ev)
			if ev.Is(event.Positional) {
				ev.Where = saved
			}
		}
	} else {
		w.interior.HandleEvent(ev)
	}

	switch ev.Kind {
	case event.Keyboard:
		switch ev.Key {
		case terminal.KeyTab:
			w.interior.SelectNext(true)
			ev.Clear()
		case terminal.KeyBacktab:
			w.interior.SelectNext(false)
			ev.Clear()
		}
	case event.Command:
		if ev.Command == command.Close && (ev.Info == nil || ev.Info == w.ID()) {
			if w.State()&StateModal != 0 {
				w.EndModal(command.Cancel)
			} else {
				w.Close()
			}
			ev.Clear()
		}
	}
}

func (w *Window) onCloseIcon(p geom.Point) bool {
	return p.Y == 0 && p.X >= closeIconX && p.X < closeIconX+closeIconWidth && command.Enabled(command.Close)
}

func (w *Window) Draw(s *Surface) {
	size := s.Size()
	frame, style := MapColor(w, windowFramePassive), FrameSingle
	if w.Focused() {
		frame, style = MapColor(w, windowFrameActive), FrameDouble
	}

	s.Fill(s.Bounds(), ' ', MapColor(w, windowInterior))
	s.Box(s.Bounds(), style, frame)

	if w.Focused() && command.Enabled(command.Close) {
		s.Text(closeIconX, 0, "[■]", MapColor(w, windowFrameIcon))
	}
	if w.Title != "" {
		title := " " + w.Title + " "
		tw := HotTextWidth(title)
		x := max((size.X-tw)/2, closeIconX+closeIconWidth+1)
		s.Text(x, 0, title, frame)
	}

	w.interior.Draw(s.Sub(w.interior.Bounds()))
}
