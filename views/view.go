// @focus: #ui { view, palette }
package views

import (
	"sync/atomic"

	"github.com/lixenwraith/termdesk/command"
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/palette"
	"github.com/lixenwraith/termdesk/terminal"
)

// State flags
type State uint16

const (
	StateVisible State = 1 << iota
	StateDisabled
	StateFocused
	StateModal
	StateShadow
	StateClosed
)

// Options flags
type Options uint8

const (
	OptSelectable  Options = 1 << iota
	OptPreProcess          // Sees focused-class events before the focused sibling
	OptPostProcess         // Sees focused-class events after the focused sibling
	OptTopSelect           // MouseDown brings the view to the front
	OptCentered            // ExecView centers the view on the desktop
)

// OwnerType selects whether indices up to palette.ContainerRange get a container remap
type OwnerType uint8

const (
	OwnerNone OwnerType = iota
	OwnerWindow
	OwnerDialog
)

func (t OwnerType) String() string {
	switch t {
	case OwnerWindow:
		return "window"
	case OwnerDialog:
		return "dialog"
	}
	return "none"
}

// Owner is the tag a Group stamps on each child at insert
// ID identifies the owning view for diagnostics only and is never resolved
type Owner struct {
	Type    OwnerType
	Variant palette.Variant
	ID      int
}

// View is implemented by every element of the hierarchy
type View interface {
	Draw(s *Surface)
	HandleEvent(ev *event.Event)

	Bounds() geom.Rect
	SetBounds(r geom.Rect)

	// Palette returns the view's own table, nil to skip that step of MapColor
	Palette() palette.Palette
	Owner() Owner
	SetOwner(o Owner)

	Options() Options
	State() State
	SetState(s State, on bool)

	// Close marks the view for removal by its owner after the current dispatch
	Close()
	ID() int
}

// EventSource feeds a modal loop
type EventSource interface {
	// GetEvent blocks until the next event; the source redraws before waiting
	GetEvent(ev *event.Event)
	// Unhandled receives whatever the loop's handler left
	Unhandled(ev *event.Event)
}

// Executor is a view that can run its own modal loop
type Executor interface {
	View
	Execute(src EventSource) command.ID
	EndModal(c command.ID)
}

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// Base carries the data every view needs; embed it and override Draw and HandleEvent
type Base struct {
	id      int
	bounds  geom.Rect
	state   State
	options Options
	owner   Owner
	palette palette.Palette
}

// NewBase returns a visible view with a fresh ID
func NewBase(r geom.Rect) Base {
	return Base{id: nextID(), bounds: r, state: StateVisible}
}

func (b *Base) Draw(*Surface) {}
func (b *Base) HandleEvent(*event.Event) {}
func (b *Base) Bounds() geom.Rect { return b.bounds }
func (b *Base) SetBounds(r geom.Rect) { b.bounds = r }
func (b *Base) Palette() palette.Palette { return b.palette }
func (b *Base) SetPalette(p palette.Palette) { b.palette = p }
func (b *Base) Owner() Owner { return b.owner }
func (b *Base) SetOwner(o Owner) { b.owner = o }
func (b *Base) Options() Options { return b.options }
func (b *Base) State() State { return b.state }
func (b *Base) Close() { b.state |= StateClosed }
func (b *Base) ID() int { return b.id }

// SetOptions sets or clears option flags
func (b *Base) SetOptions(o Options, on bool) {
	if on {
		b.options |= o
	} else {
		b.options &^= o
	}
}

func (b *Base) SetState(s State, on bool) {
	if on {
		b.state |= s
	} else {
		b.state &^= s
	}
}

func (b *Base) Disabled() bool { return b.state&StateDisabled != 0 }
func (b *Base) Focused() bool { return b.state&StateFocused != 0 }
func (b *Base) Visible() bool { return b.state&StateVisible != 0 }

// Size returns the bounds' width and height
func (b *Base) Size() geom.Point { return b.bounds.Size() }

// MapColor resolves a palette index of v to an attribute
// Own palette, then the container table for window and dialog owners, then the application table
func MapColor(v View, index byte) terminal.Attr {
	o := v.Owner()
	var container palette.Palette
	if o.Type == OwnerWindow || o.Type == OwnerDialog {
		container = o.Variant.Palette()
	}
	return palette.Resolve(index, v.Palette(), container)
}

func hasState(v View, s State) bool {
	return v.State()&s != 0
}

func hasOption(v View, o Options) bool {
	return v.Options()&o != 0
}

// Center returns r moved so it is centered within area
func Center(r, area geom.Rect) geom.Rect {
	size := r.Size()
	x := area.A.X + (area.Width()-size.X)/2
	y := area.A.Y + (area.Height()-size.Y)/2
	return geom.RectWH(x, y, size.X, size.Y)
}
