package event

import (
	"testing"

	"github.com/lixenwraith/termdesk/command"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/terminal"
)

func TestEventMutation(t *testing.T) {
	ev := NewKey(terminal.KeyEnter, 0, terminal.ModNone)
	if !ev.Is(Focused) || ev.Is(Positional) {
		t.Errorf("Expected keyboard to be focused-class only, got %v", ev.Kind)
	}

	ev.ToBroadcast(command.Default, nil)
	if !ev.IsBroadcast(command.Default) || ev.Key != terminal.KeyNone {
		t.Errorf("Expected clean Broadcast{Default}, got %v", ev)
	}

	ev.ToCommand(command.OK, 7)
	if !ev.IsCommand(command.OK) || ev.Info != 7 {
		t.Errorf("Expected Command{OK} with info, got %v", ev)
	}

	ev.Clear()
	if !ev.Handled() || ev.Info != nil {
		t.Errorf("Expected cleared event, got %v", ev)
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewCommand(command.Cancel, nil), "Command{Cancel}"},
		{NewKey(terminal.KeyRune, 'a', terminal.ModNone), "Keyboard{'a' mod=0}"},
		{NewMouse(MouseDown, geom.Point{X: 1, Y: 2}, terminal.ButtonLeft), "MouseDown{(1,2) buttons=1 double=false}"},
		{Event{}, "Nothing"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ev.String(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
