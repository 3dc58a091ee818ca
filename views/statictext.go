package views

import (
	"strings"

	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/palette"
)

var staticTextPalette = palette.Palette{6}

// StaticText draws fixed text, one line per newline, clipped to its bounds
type StaticText struct {
	Base
	Text string
}

func NewStaticText(r geom.Rect, text string) *StaticText {
	t := &StaticText{Base: NewBase(r), Text: text}
	t.SetPalette(staticTextPalette)
	return t
}

func (t *StaticText) Draw(s *Surface) {
	a := MapColor(t, 1)
	s.Fill(s.Bounds(), ' ', a)
	for y, line := range strings.Split(t.Text, "\n") {
		if y >= s.Size().Y {
			break
		}
		s.Text(0, y, line, a)
	}
}
