package views

import (
	"strings"
	"unicode"

	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/terminal"
	"github.com/mattn/go-runewidth"
)

// Target is the cell grid a Surface draws into; terminal.Screen satisfies it
type Target interface {
	SetCell(x, y int, c terminal.Cell)
	Cell(x, y int) terminal.Cell
}

// Surface is a clipped window onto a Target
// All coordinates are relative to the surface origin
type Surface struct {
	target Target
	origin geom.Point // Absolute position of local (0,0)
	size   geom.Point
	clip   geom.Rect // Absolute, never larger than any parent
}

// NewSurface covers the top-left w x h of t
func NewSurface(t Target, w, h int) *Surface {
	return &Surface{
		target: t,
		size:   geom.Point{X: w, Y: h},
		clip:   geom.NewRect(0, 0, max(w, 0), max(h, 0)),
	}
}

// Sub returns a nested surface for r (local coordinates), clipped to s
func (s *Surface) Sub(r geom.Rect) *Surface {
	abs := r.Move(s.origin.X, s.origin.Y)
	return &Surface{
		target: s.target,
		origin: abs.A,
		size:   r.Size(),
		clip:   s.clip.Intersect(abs),
	}
}

// Size returns the local extent
func (s *Surface) Size() geom.Point {
	return s.size
}

// Bounds returns the local extent as a rect at the origin
func (s *Surface) Bounds() geom.Rect {
	return geom.NewRect(0, 0, s.size.X, s.size.Y)
}

// Put sets a single cell; writes outside the clip are dropped
func (s *Surface) Put(x, y int, ch rune, a terminal.Attr) {
	p := geom.Point{X: s.origin.X + x, Y: s.origin.Y + y}
	if !s.clip.Contains(p) {
		return
	}
	s.target.SetCell(p.X, p.Y, terminal.Cell{Rune: ch, Attr: a})
}

// Cell reads back a cell; outside the clip returns the zero cell
func (s *Surface) Cell(x, y int) terminal.Cell {
	p := geom.Point{X: s.origin.X + x, Y: s.origin.Y + y}
	if !s.clip.Contains(p) {
		return terminal.Cell{}
	}
	return s.target.Cell(p.X, p.Y)
}

// Fill paints r (local) with ch
func (s *Surface) Fill(r geom.Rect, ch rune, a terminal.Attr) {
	r = r.Intersect(s.Bounds())
	for y := r.A.Y; y < r.B.Y; y++ {
		for x := r.A.X; x < r.B.X; x++ {
			s.Put(x, y, ch, a)
		}
	}
}

// Text writes str starting at (x, y) on one line, returns columns used
// Double-width runes occupy two cells, the second holding terminal.WideTail
func (s *Surface) Text(x, y int, str string, a terminal.Attr) int {
	col := x
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > s.size.X {
			break
		}
		s.Put(col, y, r, a)
		if w == 2 {
			s.Put(col+1, y, terminal.WideTail, a)
		}
		col += w
	}
	return col - x
}

// HotText writes a string where ~ toggles between normal and hot attributes, as in "~O~K"
func (s *Surface) HotText(x, y int, str string, normal, hot terminal.Attr) int {
	col := x
	a := normal
	for _, part := range strings.Split(str, "~") {
		col += s.Text(col, y, part, a)
		if a == normal {
			a = hot
		} else {
			a = normal
		}
	}
	return col - x
}

// Frame styles
const (
	FrameSingle = iota
	FrameDouble
)

var frameRunes = [2][6]rune{
	// tl, tr, bl, br, horizontal, vertical
	{'┌', '┐', '└', '┘', '─', '│'},
	{'╔', '╗', '╚', '╝', '═', '║'},
}

// Box draws a frame on the edge of r (local)
func (s *Surface) Box(r geom.Rect, style int, a terminal.Attr) {
	if r.Width() < 2 || r.Height() < 2 {
		return
	}
	fr := frameRunes[style&1]
	x0, y0, x1, y1 := r.A.X, r.A.Y, r.B.X-1, r.B.Y-1
	for x := x0 + 1; x < x1; x++ {
		s.Put(x, y0, fr[4], a)
		s.Put(x, y1, fr[4], a)
	}
	for y := y0 + 1; y < y1; y++ {
		s.Put(x0, y, fr[5], a)
		s.Put(x1, y, fr[5], a)
	}
	s.Put(x0, y0, fr[0], a)
	s.Put(x1, y0, fr[1], a)
	s.Put(x0, y1, fr[2], a)
	s.Put(x1, y1, fr[3], a)
}

// Shadow darkens what is already drawn under r (local)
// Must be called after everything beneath the shadow has been drawn
func (s *Surface) Shadow(r geom.Rect) {
	abs := r.Move(s.origin.X, s.origin.Y).Intersect(s.clip)
	for y := abs.A.Y; y < abs.B.Y; y++ {
		for x := abs.A.X; x < abs.B.X; x++ {
			c := s.target.Cell(x, y)
			c.Attr = c.Attr.Shadowed()
			s.target.SetCell(x, y, c)
		}
	}
}

// HotKey returns the rune between the first pair of ~, lower-cased; 0 if none
func HotKey(str string) rune {
	i := strings.IndexByte(str, '~')
	if i < 0 || i+1 >= len(str) {
		return 0
	}
	for _, r := range str[i+1:] {
		if r == '~' {
			return 0
		}
		return unicode.ToLower(r)
	}
	return 0
}

// HotTextWidth returns the display width of str without ~ markers
func HotTextWidth(str string) int {
	return runewidth.StringWidth(strings.ReplaceAll(str, "~", ""))
}
