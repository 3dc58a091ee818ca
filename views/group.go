// @focus: #ui { dispatch, modal }
package views

import (
	"fmt"

	"github.com/lixenwraith/termdesk/command"
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/palette"
)

// MaxRedeliver bounds how often one event is fed back to a modal handler after it changes kind
const MaxRedeliver = 8

// Group owns an ordered child list; the last child is topmost
// Children's bounds are relative to the group's interior origin (its bounds.A)
type Group struct {
	Base

	children []View
	current  int // Focused child index, -1 for none

	// Tag stamped on children at insert
	hostID   int
	hostType OwnerType
	variant  palette.Variant

	// Modal loop state, owned per group so nested loops stay independent
	running  bool
	ended    bool
	endState command.ID

	// Rejected is called for a MouseDown dropped by modal scoping
	Rejected func(ev *event.Event)
}

// NewGroup creates an empty group whose children are tagged OwnerNone
func NewGroup(r geom.Rect) *Group {
	g := &Group{Base: NewBase(r), current: -1}
	g.hostID = g.ID()
	return g
}

// SetHost sets the owner tag given to children inserted from now on
// id names the view that embeds the group
func (g *Group) SetHost(id int, t OwnerType, v palette.Variant) {
	g.hostID = id
	g.hostType = t
	g.variant = v
}

// Len returns the number of children
func (g *Group) Len() int { return len(g.children) }

// At returns child i in z-order
func (g *Group) At(i int) View { return g.children[i] }

// IndexOf returns the position of v, -1 if not a child
func (g *Group) IndexOf(v View) int {
	for i, c := range g.children {
		if c == v {
			return i
		}
	}
	return -1
}

// Current returns the focused child or nil
func (g *Group) Current() View {
	if g.current < 0 || g.current >= len(g.children) {
		return nil
	}
	return g.children[g.current]
}

// Insert adds v on top; a selectable child becomes current
// Panics if v already belongs to a group
func (g *Group) Insert(v View) {
	g.InsertBefore(v, nil)
}

// InsertBefore adds v below target; a nil target inserts on top
// While a modal child is present a non-modal view goes below it and is not selected
func (g *Group) InsertBefore(v View, target View) {
	if v.Owner().ID != 0 {
		panic(fmt.Sprintf("views: view %d already owned by %d", v.ID(), v.Owner().ID))
	}
	v.SetOwner(Owner{Type: g.hostType, Variant: g.variant, ID: g.hostID})

	idx := len(g.children)
	if target != nil {
		if t := g.IndexOf(target); t >= 0 {
			idx = t
		}
	}
	blocked := false
	if m := g.modal(); m >= 0 && !hasState(v, StateModal) {
		idx = min(idx, m)
		blocked = true
	}
	g.children = append(g.children, nil)
	copy(g.children[idx+1:], g.children[idx:])
	g.children[idx] = v
	if g.current >= idx {
		g.current++
	}

	if !blocked && hasOption(v, OptSelectable) && hasState(v, StateVisible) && !hasState(v, StateDisabled) {
		g.selectIndex(idx)
	}
}

// Remove detaches v and clears its owner tag; no-op if v is not a child
func (g *Group) Remove(v View) {
	idx := g.IndexOf(v)
	if idx < 0 {
		return
	}
	wasCurrent := idx == g.current

	g.children = append(g.children[:idx], g.children[idx+1:]...)
	v.SetOwner(Owner{})
	v.SetState(StateFocused, false)

	switch {
	case wasCurrent:
		g.current = -1
		g.selectTopmost()
	case g.current > idx:
		g.current--
	}
}

// BringToFront moves child i to the top, keeping the focused child the same view
// Panics on an out-of-range index
func (g *Group) BringToFront(i int) {
	if i < 0 || i >= len(g.children) {
		panic(fmt.Sprintf("views: BringToFront index %d out of range [0,%d)", i, len(g.children)))
	}
	last := len(g.children) - 1
	if i == last {
		return
	}
	v := g.children[i]
	copy(g.children[i:], g.children[i+1:])
	g.children[last] = v

	switch {
	case g.current == i:
		g.current = last
	case g.current > i:
		g.current--
	}
}

// Select makes v the current child
func (g *Group) Select(v View) {
	if i := g.IndexOf(v); i >= 0 {
		g.selectIndex(i)
	}
}

// SelectNext moves focus to the next selectable child, wrapping; forward follows insertion order
func (g *Group) SelectNext(forward bool) {
	n := len(g.children)
	if n == 0 {
		return
	}
	start := g.current
	if start < 0 {
		start = n - 1
		if !forward {
			start = 0
		}
	}
	for step := 1; step <= n; step++ {
		var i int
		if forward {
			i = (start + step) % n
		} else {
			i = (start - step + n) % n
		}
		if selectable(g.children[i]) {
			g.selectIndex(i)
			return
		}
	}
}

// SelectFirst focuses the first selectable child in insertion order
func (g *Group) SelectFirst() {
	for i, c := range g.children {
		if selectable(c) {
			g.selectIndex(i)
			return
		}
	}
}

func selectable(v View) bool {
	return hasOption(v, OptSelectable) && hasState(v, StateVisible) && !hasState(v, StateDisabled)
}

func (g *Group) selectIndex(i int) {
	if i == g.current {
		return
	}
	prev := g.Current()
	if prev != nil {
		prev.SetState(StateFocused, false)
		ev := event.NewBroadcast(command.ReleasedFocus, prev.ID())
		g.Broadcast(&ev, -1)
	}
	g.current = i
	next := g.children[i]
	next.SetState(StateFocused, true)
	ev := event.NewBroadcast(command.ReceivedFocus, next.ID())
	g.Broadcast(&ev, -1)
}

// selectTopmost focuses the highest selectable child, if any
func (g *Group) selectTopmost() {
	for i := len(g.children) - 1; i >= 0; i-- {
		if selectable(g.children[i]) {
			g.selectIndex(i)
			return
		}
	}
}

// modal returns the topmost modal child index, -1 if none
func (g *Group) modal() int {
	for i := len(g.children) - 1; i >= 0; i-- {
		if hasState(g.children[i], StateModal) {
			return i
		}
	}
	return -1
}

// HandleEvent routes ev to children
func (g *Group) HandleEvent(ev *event.Event) {
	if ev.Handled() {
		return
	}
	switch {
	case ev.Kind == event.Broadcast:
		g.Broadcast(ev, -1)
	case ev.Is(event.Focused):
		g.routeFocused(ev)
	case ev.Is(event.Positional):
		g.routePositional(ev)
	}
	g.reap()
}

// Broadcast delivers ev to every child except index skip, in insertion order
// Disabled children still receive it; stops once ev is no longer a Broadcast
func (g *Group) Broadcast(ev *event.Event, skip int) {
	for i, c := range g.snapshot() {
		if ev.Kind != event.Broadcast {
			return
		}
		if i == skip {
			continue
		}
		c.HandleEvent(ev)
	}
}

// routeFocused runs pre-process, focused, post-process on one shared event
func (g *Group) routeFocused(ev *event.Event) {
	if m := g.modal(); m >= 0 {
		deliver(g.children[m], ev)
		return
	}

	focused := g.Current()
	kids := g.snapshot()

	for _, c := range kids {
		if ev.Handled() {
			return
		}
		if c != focused && hasOption(c, OptPreProcess) {
			deliver(c, ev)
		}
	}

	if ev.Handled() {
		return
	}
	if focused != nil {
		deliver(focused, ev)
	}

	for _, c := range kids {
		if ev.Handled() {
			return
		}
		if c != focused && hasOption(c, OptPostProcess) {
			deliver(c, ev)
		}
	}
}

// routePositional hands ev to the topmost visible child under the pointer
// The pointer is translated into interior coordinates for the duration of the call
func (g *Group) routePositional(ev *event.Event) {
	saved := ev.Where
	ev.Where = ev.Where.Sub(g.bounds.A)
	defer func() {
		if ev.Is(event.Positional) {
			ev.Where = saved
		}
	}()

	target := -1
	if m := g.modal(); m >= 0 {
		c := g.children[m]
		if !hasState(c, StateVisible) || !c.Bounds().Contains(ev.Where) {
			if ev.Kind == event.MouseDown && g.Rejected != nil {
				g.Rejected(ev)
			}
			ev.Clear()
			return
		}
		target = m
	} else {
		for i := len(g.children) - 1; i >= 0; i-- {
			c := g.children[i]
			if hasState(c, StateVisible) && c.Bounds().Contains(ev.Where) {
				target = i
				break
			}
		}
	}
	if target < 0 {
		return
	}

	c := g.children[target]
	if hasState(c, StateDisabled) {
		return
	}
	if ev.Kind == event.MouseDown {
		if hasOption(c, OptTopSelect) && !hasState(c, StateModal) {
			g.BringToFront(target)
			target = len(g.children) - 1
		}
		if selectable(c) && target != g.current {
			g.selectIndex(target)
			sel := event.NewBroadcast(command.Selected, c.ID())
			g.Broadcast(&sel, -1)
		}
	}
	c.HandleEvent(ev)
}

// deliver enforces the disabled rule: only Broadcast reaches a disabled view
func deliver(v View, ev *event.Event) {
	if hasState(v, StateDisabled) && ev.Kind != event.Broadcast {
		return
	}
	v.HandleEvent(ev)
}

// snapshot copies the child list so handlers may insert or remove during iteration
func (g *Group) snapshot() []View {
	kids := make([]View, len(g.children))
	copy(kids, g.children)
	return kids
}

// reap removes children that closed themselves
func (g *Group) reap() {
	for i := len(g.children) - 1; i >= 0; i-- {
		if i < len(g.children) && hasState(g.children[i], StateClosed) {
			g.Remove(g.children[i])
		}
	}
}

// Draw paints children back to front; each shadow right after its view
func (g *Group) Draw(s *Surface) {
	for _, c := range g.children {
		if !hasState(c, StateVisible) {
			continue
		}
		r := c.Bounds()
		c.Draw(s.Sub(r))
		if hasState(c, StateShadow) {
			s.Shadow(geom.Rect{A: geom.Point{X: r.B.X, Y: r.A.Y + 1}, B: geom.Point{X: r.B.X + 2, Y: r.B.Y + 1}})
			s.Shadow(geom.Rect{A: geom.Point{X: r.A.X + 2, Y: r.B.Y}, B: geom.Point{X: max(r.B.X, r.A.X+2), Y: r.B.Y + 1}})
		}
	}
}

// Execute runs a modal loop: fetch, deliver to h, redeliver transformed events, pass leftovers on
// h is the view hosting this group (e.g. a Dialog), so its own conversions run first
func (g *Group) Execute(src EventSource, h View) command.ID {
	wasRunning, wasEnded, wasState := g.running, g.ended, g.endState
	g.running, g.ended, g.endState = true, false, command.Valid
	defer func() {
		g.running, g.ended, g.endState = wasRunning, wasEnded, wasState
	}()

	for !g.ended {
		var ev event.Event
		src.GetEvent(&ev)
		for i := 0; i <= MaxRedeliver; i++ {
			kind := ev.Kind
			h.HandleEvent(&ev)
			if ev.Handled() || ev.Kind == kind || g.ended {
				break
			}
		}
		if !ev.Handled() {
			src.Unhandled(&ev)
		}
	}
	return g.endState
}

// EndModal stops the loop running on this group; ignored when none is running
func (g *Group) EndModal(c command.ID) {
	if !g.running {
		return
	}
	g.endState = c
	g.ended = true
}

// Running reports whether a modal loop is active on this group
func (g *Group) Running() bool {
	return g.running
}
