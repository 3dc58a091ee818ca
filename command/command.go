// @focus: #event { command }
package command

import "strconv"

// ID identifies a command carried by Command and Broadcast events
// IDs below Disableable can be switched off in a Set; higher IDs are always enabled
type ID uint16

// Disableable is the size of the enablement bitset
const Disableable ID = 256

const (
	// Valid is the zero command, used as "no result" by modal loops
	Valid ID = iota
	// Quit ends the application loop
	// Trigger: StatusLine hotkey, interrupt after modal unwind
	Quit
	// Error is the end code of a modal loop aborted by a fault
	Error
	Menu
	// Close asks the focused window to close itself
	Close
	Zoom
	Resize
	// Next and Prev cycle window focus on the desktop
	Next
	Prev
	Help

	// OK, Cancel, Yes and No end a dialog's modal loop with their own ID
	// Trigger: Button press, Esc in Dialog (Cancel)
	OK
	Cancel
	Yes
	No
	// Default is broadcast when Enter reaches a Dialog
	// Consumer: the Button with the default flag, which rewrites it to its own command
	Default
)

// Broadcast-only notifications
const (
	// ReceivedFocus is sent to a group's children after its focus changes
	// Payload: Info is the focused view ID
	ReceivedFocus ID = 50 + iota
	// ReleasedFocus precedes ReceivedFocus | Payload: Info is the previous view ID
	ReleasedFocus
	// CommandSetChanged tells command-gated views to re-query enablement
	// Trigger: Program idle after any Enable/Disable | Consumer: Button
	CommandSetChanged
	// Selected is sent when a view becomes the current one by mouse
	Selected
)

// User is the first ID free for application commands that are always enabled
const User ID = 1000

var names = map[ID]string{
	Valid: "Valid", Quit: "Quit", Error: "Error", Menu: "Menu", Close: "Close",
	Zoom: "Zoom", Resize: "Resize", Next: "Next", Prev: "Prev", Help: "Help",
	OK: "OK", Cancel: "Cancel", Yes: "Yes", No: "No", Default: "Default",
	ReceivedFocus: "ReceivedFocus", ReleasedFocus: "ReleasedFocus",
	CommandSetChanged: "CommandSetChanged", Selected: "Selected",
}

// String returns the standard name or the numeric value
func (c ID) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "cmd" + strconv.Itoa(int(c))
}

// CanDisable reports whether the command participates in enablement
func (c ID) CanDisable() bool {
	return c < Disableable
}
