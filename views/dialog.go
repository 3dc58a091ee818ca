// @focus: #ui { dialog, modal }
package views

import (
	"github.com/lixenwraith/termdesk/command"
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/palette"
	"github.com/lixenwraith/termdesk/terminal"
)

// Dialog is a window meant to run modally
// Enter fires the default button, Esc cancels, and the standard answers end the loop
type Dialog struct {
	Window

	// EndOnAnyCommand ends the modal loop on every command reaching the dialog
	EndOnAnyCommand bool
}

// NewDialog creates a centered dialog; v should be a dialog variant
func NewDialog(r geom.Rect, title string, v palette.Variant) *Dialog {
	d := &Dialog{}
	d.Title = title
	d.init(r, v, OwnerDialog)
	d.SetOptions(OptCentered, true)
	d.host = d
	return d
}

func (d *Dialog) HandleEvent(ev *event.Event) {
	d.Window.HandleEvent(ev)

	switch ev.Kind {
	case event.Keyboard:
		switch ev.Key {
		case terminal.KeyEnter:
			ev.ToBroadcast(command.Default, nil)
		case terminal.KeyEscape:
			ev.ToCommand(command.Cancel, nil)
		}
	case event.Command:
		if d.State()&StateModal == 0 {
			return
		}
		switch ev.Command {
		case command.OK, command.Cancel, command.Yes, command.No:
		default:
			if !d.EndOnAnyCommand {
				return
			}
		}
		d.EndModal(ev.Command)
		ev.Clear()
	}
}
