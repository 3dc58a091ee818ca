// @focus: #event { types }
package event

import (
	"fmt"

	"github.com/lixenwraith/termdesk/command"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/terminal"
)

// Kind is a bit so dispatch can test event classes with one mask
type Kind uint16

const (
	Nothing        Kind = 0
	MouseDown      Kind = 0x0001
	MouseUp        Kind = 0x0002
	MouseMove      Kind = 0x0004
	MouseWheelUp   Kind = 0x0008
	MouseWheelDown Kind = 0x0010
	Keyboard       Kind = 0x0020
	Command        Kind = 0x0100
	Broadcast      Kind = 0x0200
)

// Class masks
const (
	// Positional events route by pointer location
	Positional = MouseDown | MouseUp | MouseMove | MouseWheelUp | MouseWheelDown
	// Focused events route pre-process, focused, post-process
	Focused = Keyboard | Command
	Message = Command | Broadcast
)

var kindNames = map[Kind]string{
	Nothing:        "Nothing",
	MouseDown:      "MouseDown",
	MouseUp:        "MouseUp",
	MouseMove:      "MouseMove",
	MouseWheelUp:   "MouseWheelUp",
	MouseWheelDown: "MouseWheelDown",
	Keyboard:       "Keyboard",
	Command:        "Command",
	Broadcast:      "Broadcast",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%#04x)", uint16(k))
}

// Event is threaded through dispatch by pointer and mutated in place
// A handler consumes it with Clear, transforms it by rewriting Kind and payload,
// or leaves it untouched to let it bubble
type Event struct {
	Kind Kind

	// Keyboard
	Key  terminal.Key
	Rune rune
	Mod  terminal.Modifier

	// Positional; Where is relative to the receiving view's owner
	Where   geom.Point
	Buttons terminal.ButtonMask
	Double  bool

	// Command and Broadcast
	Command command.ID
	Info    any
}

// Clear marks the event handled
func (e *Event) Clear() {
	e.Kind = Nothing
	e.Info = nil
}

// Is reports whether the kind is in mask
func (e *Event) Is(mask Kind) bool {
	return e.Kind&mask != 0
}

// Handled reports whether the event was cleared
func (e *Event) Handled() bool {
	return e.Kind == Nothing
}

// IsKey reports a keyboard event for key k, ignoring modifiers
func (e *Event) IsKey(k terminal.Key) bool {
	return e.Kind == Keyboard && e.Key == k
}

// IsCommand reports a Command event carrying c
func (e *Event) IsCommand(c command.ID) bool {
	return e.Kind == Command && e.Command == c
}

// IsBroadcast reports a Broadcast event carrying c
func (e *Event) IsBroadcast(c command.ID) bool {
	return e.Kind == Broadcast && e.Command == c
}

// ToCommand rewrites the event into a Command, keeping nothing else
func (e *Event) ToCommand(c command.ID, info any) {
	*e = Event{Kind: Command, Command: c, Info: info}
}

// ToBroadcast rewrites the event into a Broadcast
func (e *Event) ToBroadcast(c command.ID, info any) {
	*e = Event{Kind: Broadcast, Command: c, Info: info}
}

func NewKey(k terminal.Key, r rune, mod terminal.Modifier) Event {
	return Event{Kind: Keyboard, Key: k, Rune: r, Mod: mod}
}

func NewCommand(c command.ID, info any) Event {
	return Event{Kind: Command, Command: c, Info: info}
}

func NewBroadcast(c command.ID, info any) Event {
	return Event{Kind: Broadcast, Command: c, Info: info}
}

func NewMouse(k Kind, where geom.Point, buttons terminal.ButtonMask) Event {
	return Event{Kind: k, Where: where, Buttons: buttons}
}

func (e Event) String() string {
	switch {
	case e.Kind == Keyboard:
		if e.Key == terminal.KeyRune {
			return fmt.Sprintf("Keyboard{%q mod=%d}", e.Rune, e.Mod)
		}
		return fmt.Sprintf("Keyboard{%s mod=%d}", e.Key, e.Mod)
	case e.Kind&Positional != 0:
		return fmt.Sprintf("%s{%s buttons=%d double=%v}", e.Kind, e.Where, e.Buttons, e.Double)
	case e.Kind&Message != 0:
		return fmt.Sprintf("%s{%s}", e.Kind, e.Command)
	}
	return e.Kind.String()
}
