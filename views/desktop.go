// @focus: #ui { desktop }
package views

import (
	"github.com/lixenwraith/termdesk/command"
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/palette"
)

var backgroundPalette = palette.Palette{palette.DesktopIndex}

// Background fills its bounds with a pattern rune
type Background struct {
	Base
	Pattern rune
}

func NewBackground(r geom.Rect, pattern rune) *Background {
	b := &Background{Base: NewBase(r), Pattern: pattern}
	b.SetPalette(backgroundPalette)
	return b
}

func (b *Background) Draw(s *Surface) {
	s.Fill(s.Bounds(), b.Pattern, MapColor(b, 1))
}

// Desktop hosts windows over a background and cycles focus between them
type Desktop struct {
	*Group
	background *Background
}

// NewDesktop creates a desktop whose background covers r
func NewDesktop(r geom.Rect) *Desktop {
	d := &Desktop{Group: NewGroup(r)}
	d.background = NewBackground(geom.RectWH(0, 0, r.Width(), r.Height()), '░')
	d.Insert(d.background)
	return d
}

// Background returns the view painted beneath every window
func (d *Desktop) Background() *Background { return d.background }

func (d *Desktop) SetBounds(r geom.Rect) {
	d.Group.SetBounds(r)
	d.background.SetBounds(geom.RectWH(0, 0, r.Width(), r.Height()))
}

func (d *Desktop) HandleEvent(ev *event.Event) {
	d.Group.HandleEvent(ev)
	if ev.Kind != event.Command {
		return
	}
	switch ev.Command {
	case command.Next:
		d.cycle(true)
		ev.Clear()
	case command.Prev:
		d.cycle(false)
		ev.Clear()
	}
}

// cycle focuses the next window and raises it
func (d *Desktop) cycle(forward bool) {
	if d.modal() >= 0 {
		return
	}
	d.SelectNext(forward)
	if cur := d.Current(); cur != nil {
		d.BringToFront(d.IndexOf(cur))
	}
}
