package views

import (
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/terminal"
)

// grid is an in-memory Target
type grid struct {
	w, h  int
	cells []terminal.Cell
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, cells: make([]terminal.Cell, w*h)}
}

func (g *grid) SetCell(x, y int, c terminal.Cell) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y*g.w+x] = c
}

func (g *grid) Cell(x, y int) terminal.Cell {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return terminal.Cell{}
	}
	return g.cells[y*g.w+x]
}

// row returns the runes of line y as a string
func (g *grid) row(y int) string {
	rs := make([]rune, 0, g.w)
	for x := 0; x < g.w; x++ {
		r := g.Cell(x, y).Rune
		if r == 0 {
			r = ' '
		}
		rs = append(rs, r)
	}
	return string(rs)
}

// probe records every event it sees and optionally reacts
type probe struct {
	Base
	name    string
	log     *[]string
	seen    []event.Event
	consume bool
	react   func(p *probe, ev *event.Event)
}

func newProbe(name string, log *[]string, r geom.Rect, opts Options) *probe {
	p := &probe{Base: NewBase(r), name: name, log: log}
	p.SetOptions(opts, true)
	return p
}

func (p *probe) HandleEvent(ev *event.Event) {
	if p.log != nil {
		*p.log = append(*p.log, p.name)
	}
	p.seen = append(p.seen, *ev)
	if p.react != nil {
		p.react(p, ev)
	}
	if p.consume {
		ev.Clear()
	}
}

// script feeds a fixed event list to a modal loop, then calls done
type script struct {
	events    []event.Event
	unhandled []event.Event
	done      func()
}

func (s *script) GetEvent(ev *event.Event) {
	if len(s.events) == 0 {
		if s.done != nil {
			s.done()
		}
		*ev = event.Event{}
		return
	}
	*ev = s.events[0]
	s.events = s.events[1:]
}

func (s *script) Unhandled(ev *event.Event) {
	s.unhandled = append(s.unhandled, *ev)
}

func key(k terminal.Key) event.Event {
	return event.NewKey(k, 0, terminal.ModNone)
}

func char(r rune) event.Event {
	return event.NewKey(terminal.KeyRune, r, terminal.ModNone)
}

func rect(x, y, w, h int) geom.Rect {
	return geom.RectWH(x, y, w, h)
}
