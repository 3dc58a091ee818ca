// @focus: #ui { statusline, hotkey }
package views

import (
	"github.com/lixenwraith/termdesk/command"
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/terminal"
)

// Application palette slots used by the status line, which has no container
const (
	statusNormal   byte = 2
	statusDisabled byte = 3
	statusShortcut byte = 4
)

// StatusItem binds a key to a command; Text may be empty for a hidden binding
type StatusItem struct {
	Text    string // "~F10~ Menu"
	Key     terminal.Key
	Command command.ID
}

// StatusLine shows hotkeys on one row and turns them into commands
// The program shows it every event before the modal handler, so hotkeys work inside dialogs
type StatusLine struct {
	Base
	Items []StatusItem
}

func NewStatusLine(r geom.Rect, items ...StatusItem) *StatusLine {
	return &StatusLine{Base: NewBase(r), Items: items}
}

func (sl *StatusLine) HandleEvent(ev *event.Event) {
	switch ev.Kind {
	case event.Keyboard:
		for _, it := range sl.Items {
			if it.Key != terminal.KeyNone && ev.Key == it.Key && command.Enabled(it.Command) {
				ev.ToCommand(it.Command, nil)
				return
			}
		}
	case event.MouseDown:
		if !sl.bounds.Contains(ev.Where) {
			return
		}
		if it, ok := sl.itemAt(ev.Where.X - sl.bounds.A.X); ok && command.Enabled(it.Command) {
			ev.ToCommand(it.Command, nil)
		}
	}
}

// itemAt returns the visible item covering local column x
func (sl *StatusLine) itemAt(x int) (StatusItem, bool) {
	col := 0
	for _, it := range sl.Items {
		if it.Text == "" {
			continue
		}
		w := HotTextWidth(it.Text) + 2
		if x >= col && x < col+w {
			return it, true
		}
		col += w
	}
	return StatusItem{}, false
}

func (sl *StatusLine) Draw(s *Surface) {
	normal := MapColor(sl, statusNormal)
	s.Fill(s.Bounds(), ' ', normal)

	col := 0
	for _, it := range sl.Items {
		if it.Text == "" {
			continue
		}
		a, hot := normal, MapColor(sl, statusShortcut)
		if !command.Enabled(it.Command) {
			a = MapColor(sl, statusDisabled)
			hot = a
		}
		s.Put(col, 0, ' ', a)
		n := s.HotText(col+1, 0, it.Text, a, hot)
		s.Put(col+1+n, 0, ' ', a)
		col += n + 2
	}
}
