// @focus: #ui { widget, command }
package views

import (
	"unicode"

	"github.com/lixenwraith/termdesk/command"
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/palette"
	"github.com/lixenwraith/termdesk/terminal"
)

// ButtonFlags modify button behavior
type ButtonFlags uint8

const (
	ButtonNormal  ButtonFlags = 0
	ButtonDefault ButtonFlags = 1 // Fires on the dialog's Enter
)

// Normal, default, selected, disabled, shortcut x3, shadow
var buttonPalette = palette.Palette{10, 11, 12, 13, 14, 14, 14, 15}

const (
	buttonNormal   byte = 1
	buttonDefault  byte = 2
	buttonSelected byte = 3
	buttonDisabled byte = 4
	buttonShortcut byte = 5
	buttonShadow   byte = 8
)

// Button turns a press into its command
// Two rows tall: the face, then the bottom half of its shadow
type Button struct {
	Base
	Title   string
	Command command.ID
	Flags   ButtonFlags
}

// NewButton creates a button; it starts disabled when cmd is disabled
func NewButton(r geom.Rect, title string, cmd command.ID, flags ButtonFlags) *Button {
	b := &Button{Base: NewBase(r), Title: title, Command: cmd, Flags: flags}
	b.SetPalette(buttonPalette)
	b.SetOptions(OptSelectable|OptPostProcess, true)
	b.SetState(StateDisabled, !command.Enabled(cmd))
	return b
}

// IsDefault reports whether Enter in the owning dialog fires this button
func (b *Button) IsDefault() bool { return b.Flags&ButtonDefault != 0 }

func (b *Button) HandleEvent(ev *event.Event) {
	// Enablement is re-queried before the disabled short-circuit, or a disabled button would never recover
	if ev.Kind == event.Broadcast {
		switch ev.Command {
		case command.CommandSetChanged:
			b.SetState(StateDisabled, !command.Enabled(b.Command))
		case command.Default:
			if b.IsDefault() && !b.Disabled() {
				b.press(ev)
			}
		}
		return
	}
	if b.Disabled() {
		return
	}

	switch ev.Kind {
	case event.MouseDown:
		b.press(ev)
	case event.Keyboard:
		if ev.Key != terminal.KeyRune {
			return
		}
		if ev.Rune == ' ' && b.Focused() {
			b.press(ev)
			return
		}
		if hot := HotKey(b.Title); hot != 0 && ev.Mod&terminal.ModAlt != 0 && unicode.ToLower(ev.Rune) == hot {
			b.press(ev)
		}
	}
}

func (b *Button) press(ev *event.Event) {
	ev.ToCommand(b.Command, b.ID())
}

func (b *Button) Draw(s *Surface) {
	size := s.Size()
	if size.X < 2 || size.Y < 1 {
		return
	}

	face := buttonNormal
	switch {
	case b.Disabled():
		face = buttonDisabled
	case b.Focused():
		face = buttonSelected
	case b.IsDefault():
		face = buttonDefault
	}
	a := MapColor(b, face)
	hot := MapColor(b, buttonShortcut)
	if b.Disabled() {
		hot = a
	}
	shadow := MapColor(b, buttonShadow)

	width := size.X - 1
	s.Fill(geom.RectWH(0, 0, width, 1), ' ', a)
	x := max((width-HotTextWidth(b.Title))/2, 0)
	s.HotText(x, 0, b.Title, a, hot)

	s.Put(width, 0, '▄', shadow)
	if size.Y > 1 {
		for i := 1; i <= width; i++ {
			s.Put(i, 1, '▀', shadow)
		}
	}
}
