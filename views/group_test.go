package views

import (
	"reflect"
	"testing"

	"github.com/lixenwraith/termdesk/command"
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/terminal"
)

func TestThreePhaseOrder(t *testing.T) {
	tests := []struct {
		name    string
		consume string // Probe that clears the event
		want    []string
	}{
		{"bubbles through all phases", "", []string{"pre", "focused", "post"}},
		{"pre-process consumes", "pre", []string{"pre"}},
		{"focused consumes", "focused", []string{"pre", "focused"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			g := NewGroup(rect(0, 0, 40, 10))
			pre := newProbe("pre", &log, rect(0, 0, 1, 1), OptPreProcess)
			focused := newProbe("focused", &log, rect(1, 0, 1, 1), OptSelectable)
			post := newProbe("post", &log, rect(2, 0, 1, 1), OptPostProcess)
			for _, p := range []*probe{pre, focused, post} {
				p.consume = p.name == tt.consume
				g.Insert(p)
			}
			log = nil // Drop focus broadcasts

			ev := event.NewCommand(command.User+5, nil)
			g.HandleEvent(&ev)

			if !reflect.DeepEqual(log, tt.want) {
				t.Errorf("Expected order %v, got %v", tt.want, log)
			}
			if tt.consume == "" && !ev.IsCommand(command.User+5) {
				t.Errorf("Expected unhandled event to bubble unchanged, got %v", ev)
			}
		})
	}
}

func TestFocusedPhaseSkipsSelfInPrePost(t *testing.T) {
	var log []string
	g := NewGroup(rect(0, 0, 10, 10))
	both := newProbe("both", &log, rect(0, 0, 1, 1), OptSelectable|OptPreProcess|OptPostProcess)
	g.Insert(both)
	log = nil

	ev := key(terminal.KeyF2)
	g.HandleEvent(&ev)

	if len(log) != 1 {
		t.Errorf("Expected focused child to see the event once, got %v", log)
	}
}

func TestFocusedWithoutCurrentIsNoop(t *testing.T) {
	var log []string
	g := NewGroup(rect(0, 0, 10, 10))
	g.Insert(newProbe("plain", &log, rect(0, 0, 1, 1), 0))

	ev := key(terminal.KeyF2)
	g.HandleEvent(&ev)

	if len(log) != 0 {
		t.Errorf("Expected no delivery, got %v", log)
	}
	if !ev.IsKey(terminal.KeyF2) {
		t.Errorf("Expected event to remain, got %v", ev)
	}
}

func TestPositionalZOrder(t *testing.T) {
	var log []string
	g := NewGroup(rect(10, 5, 20, 10))
	below := newProbe("below", &log, rect(0, 0, 5, 5), 0)
	above := newProbe("above", &log, rect(1, 0, 5, 5), 0)
	hidden := newProbe("hidden", &log, rect(0, 0, 10, 10), 0)
	hidden.SetState(StateVisible, false)
	g.Insert(below)
	g.Insert(above)
	g.Insert(hidden)

	ev := event.NewMouse(event.MouseDown, geom.Point{X: 12, Y: 6}, terminal.ButtonLeft)
	g.HandleEvent(&ev)

	if !reflect.DeepEqual(log, []string{"above"}) {
		t.Fatalf("Expected only topmost visible child, got %v", log)
	}
	if got := above.seen[0].Where; got != (geom.Point{X: 2, Y: 1}) {
		t.Errorf("Expected pointer in interior coordinates (2,1), got %v", got)
	}
	if ev.Where != (geom.Point{X: 12, Y: 6}) {
		t.Errorf("Expected pointer restored to (12,6), got %v", ev.Where)
	}

	log = nil
	ev = event.NewMouse(event.MouseDown, geom.Point{X: 10, Y: 5}, terminal.ButtonLeft)
	g.HandleEvent(&ev)
	if !reflect.DeepEqual(log, []string{"below"}) {
		t.Errorf("Expected uncovered cell to reach lower child, got %v", log)
	}
}

func TestPositionalSkipsDisabled(t *testing.T) {
	var log []string
	g := NewGroup(rect(0, 0, 10, 10))
	below := newProbe("below", &log, rect(0, 0, 5, 5), 0)
	top := newProbe("top", &log, rect(0, 0, 5, 5), 0)
	top.SetState(StateDisabled, true)
	g.Insert(below)
	g.Insert(top)

	ev := event.NewMouse(event.MouseDown, geom.Point{X: 1, Y: 1}, terminal.ButtonLeft)
	g.HandleEvent(&ev)

	if len(log) != 0 {
		t.Errorf("Expected no delivery through a disabled top child, got %v", log)
	}
}

func TestMouseDownTopSelect(t *testing.T) {
	g := NewGroup(rect(0, 0, 20, 20))
	a := newProbe("a", nil, rect(0, 0, 5, 5), OptSelectable|OptTopSelect)
	b := newProbe("b", nil, rect(10, 10, 5, 5), OptSelectable|OptTopSelect)
	g.Insert(a)
	g.Insert(b)

	ev := event.NewMouse(event.MouseDown, geom.Point{X: 1, Y: 1}, terminal.ButtonLeft)
	g.HandleEvent(&ev)

	if g.At(g.Len()-1) != View(a) {
		t.Errorf("Expected clicked child on top")
	}
	if g.Current() != View(a) {
		t.Errorf("Expected clicked child focused")
	}
	if !a.Focused() || b.Focused() {
		t.Errorf("Expected focus flags moved, a=%v b=%v", a.Focused(), b.Focused())
	}
}

func TestModalScoping(t *testing.T) {
	var log []string
	g := NewGroup(rect(0, 0, 40, 20))
	other := newProbe("other", &log, rect(20, 10, 5, 5), OptSelectable|OptPreProcess)
	modal := newProbe("modal", &log, rect(0, 0, 10, 5), 0)
	g.Insert(other)
	g.Insert(modal)
	modal.SetState(StateModal, true)

	var rejected int
	g.Rejected = func(*event.Event) { rejected++ }

	t.Run("keyboard goes to modal only", func(t *testing.T) {
		log = nil
		ev := key(terminal.KeyF3)
		g.HandleEvent(&ev)
		if !reflect.DeepEqual(log, []string{"modal"}) {
			t.Errorf("Expected [modal], got %v", log)
		}
	})

	t.Run("click outside is dropped", func(t *testing.T) {
		log = nil
		ev := event.NewMouse(event.MouseDown, geom.Point{X: 21, Y: 11}, terminal.ButtonLeft)
		g.HandleEvent(&ev)
		if len(log) != 0 {
			t.Errorf("Expected no delivery, got %v", log)
		}
		if !ev.Handled() {
			t.Errorf("Expected event cleared, got %v", ev)
		}
		if rejected != 1 {
			t.Errorf("Expected 1 rejection, got %d", rejected)
		}
	})

	t.Run("click inside reaches modal", func(t *testing.T) {
		log = nil
		ev := event.NewMouse(event.MouseDown, geom.Point{X: 1, Y: 1}, terminal.ButtonLeft)
		g.HandleEvent(&ev)
		if !reflect.DeepEqual(log, []string{"modal"}) {
			t.Errorf("Expected [modal], got %v", log)
		}
	})

	t.Run("broadcast reaches everyone", func(t *testing.T) {
		log = nil
		ev := event.NewBroadcast(command.User, nil)
		g.HandleEvent(&ev)
		if !reflect.DeepEqual(log, []string{"other", "modal"}) {
			t.Errorf("Expected [other modal], got %v", log)
		}
	})
}

func TestBroadcastStopsOnTransform(t *testing.T) {
	var log []string
	g := NewGroup(rect(0, 0, 10, 10))
	first := newProbe("first", &log, rect(0, 0, 1, 1), 0)
	first.react = func(_ *probe, ev *event.Event) { ev.ToCommand(command.User, nil) }
	disabled := newProbe("disabled", &log, rect(0, 0, 1, 1), 0)
	disabled.SetState(StateDisabled, true)
	g.Insert(disabled)
	g.Insert(first)
	g.Insert(newProbe("last", &log, rect(0, 0, 1, 1), 0))

	ev := event.NewBroadcast(command.User, nil)
	g.HandleEvent(&ev)

	if !reflect.DeepEqual(log, []string{"disabled", "first"}) {
		t.Errorf("Expected [disabled first], got %v", log)
	}
	if !ev.IsCommand(command.User) {
		t.Errorf("Expected transformed event to bubble, got %v", ev)
	}
}

func TestBringToFrontAdjustsFocus(t *testing.T) {
	tests := []struct {
		name    string
		focus   int
		raise   int
		wantCur int
	}{
		{"raise focused", 0, 0, 2},
		{"raise below focused", 0, 1, 0},
		{"raise with focus above", 2, 0, 1},
		{"raise topmost", 1, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGroup(rect(0, 0, 10, 10))
			kids := make([]*probe, 3)
			for i := range kids {
				kids[i] = newProbe(string(rune('a'+i)), nil, rect(i, 0, 1, 1), OptSelectable)
				g.Insert(kids[i])
			}
			g.Select(kids[tt.focus])
			focused := g.Current()

			g.BringToFront(tt.raise)

			if g.current != tt.wantCur {
				t.Errorf("Expected current index %d, got %d", tt.wantCur, g.current)
			}
			if g.Current() != focused {
				t.Errorf("Expected focused view unchanged")
			}
			if g.At(2) != View(kids[tt.raise]) {
				t.Errorf("Expected raised child on top")
			}
		})
	}
}

func TestBringToFrontOutOfRangePanics(t *testing.T) {
	g := NewGroup(rect(0, 0, 10, 10))
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic")
		}
	}()
	g.BringToFront(0)
}

func TestInsertOwnedViewPanics(t *testing.T) {
	a := NewGroup(rect(0, 0, 10, 10))
	b := NewGroup(rect(0, 0, 10, 10))
	v := newProbe("v", nil, rect(0, 0, 1, 1), 0)
	a.Insert(v)

	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic on double insert")
		}
	}()
	b.Insert(v)
}

func TestRemoveClearsOwnerAndRefocuses(t *testing.T) {
	g := NewGroup(rect(0, 0, 10, 10))
	a := newProbe("a", nil, rect(0, 0, 1, 1), OptSelectable)
	b := newProbe("b", nil, rect(1, 0, 1, 1), OptSelectable)
	g.Insert(a)
	g.Insert(b)

	g.Remove(b)

	if b.Owner() != (Owner{}) {
		t.Errorf("Expected owner cleared, got %+v", b.Owner())
	}
	if b.Focused() {
		t.Errorf("Expected removed view unfocused")
	}
	if g.Current() != View(a) {
		t.Errorf("Expected remaining child focused")
	}
}

func TestClosedChildrenReaped(t *testing.T) {
	g := NewGroup(rect(0, 0, 10, 10))
	keep := newProbe("keep", nil, rect(0, 0, 1, 1), OptSelectable)
	quitter := newProbe("quitter", nil, rect(1, 0, 1, 1), OptSelectable)
	quitter.react = func(p *probe, ev *event.Event) {
		if ev.IsCommand(command.Close) {
			p.Close()
			ev.Clear()
		}
	}
	g.Insert(keep)
	g.Insert(quitter)

	ev := event.NewCommand(command.Close, nil)
	g.HandleEvent(&ev)

	if g.Len() != 1 || g.IndexOf(quitter) != -1 {
		t.Fatalf("Expected closed child reaped, len=%d", g.Len())
	}
	if g.Current() != View(keep) {
		t.Errorf("Expected focus to fall back to remaining child")
	}
}

func TestSelectNextCycles(t *testing.T) {
	g := NewGroup(rect(0, 0, 10, 10))
	a := newProbe("a", nil, rect(0, 0, 1, 1), OptSelectable)
	skip := newProbe("skip", nil, rect(1, 0, 1, 1), 0)
	b := newProbe("b", nil, rect(2, 0, 1, 1), OptSelectable)
	g.Insert(a)
	g.Insert(skip)
	g.Insert(b)

	g.SelectNext(true)
	if g.Current() != View(a) {
		t.Errorf("Expected wrap to a")
	}
	g.SelectNext(true)
	if g.Current() != View(b) {
		t.Errorf("Expected b, skipping unselectable")
	}
	g.SelectNext(false)
	if g.Current() != View(a) {
		t.Errorf("Expected back to a")
	}
}

func TestFocusBroadcasts(t *testing.T) {
	g := NewGroup(rect(0, 0, 10, 10))
	watcher := newProbe("watcher", nil, rect(0, 0, 1, 1), 0)
	a := newProbe("a", nil, rect(1, 0, 1, 1), OptSelectable)
	b := newProbe("b", nil, rect(2, 0, 1, 1), OptSelectable)
	g.Insert(watcher)
	g.Insert(a)
	g.Insert(b)

	var got []command.ID
	for _, ev := range watcher.seen {
		got = append(got, ev.Command)
	}
	want := []command.ID{command.ReceivedFocus, command.ReleasedFocus, command.ReceivedFocus}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if info := watcher.seen[2].Info; info != b.ID() {
		t.Errorf("Expected ReceivedFocus info %d, got %v", b.ID(), info)
	}
}

func TestGroupDrawShadows(t *testing.T) {
	target := newGrid(10, 6)
	g := NewGroup(rect(0, 0, 10, 6))
	bg := NewBackground(rect(0, 0, 10, 6), '.')
	g.Insert(bg)
	box := newProbe("box", nil, rect(1, 1, 4, 2), 0)
	box.SetState(StateShadow, true)
	g.Insert(box)

	g.Draw(NewSurface(target, 10, 6))

	base := MapColor(bg, 1)
	shadowed := base.Shadowed()
	tests := []struct {
		x, y int
		want terminal.Attr
	}{
		{5, 1, base},     // Right strip starts one row down
		{5, 2, shadowed}, // Right strip
		{6, 3, shadowed}, // Right strip, bottom corner
		{3, 3, shadowed}, // Bottom strip
		{2, 3, base},     // Bottom strip starts two columns in
		{0, 0, base},
	}
	for _, tt := range tests {
		if got := target.Cell(tt.x, tt.y).Attr; got != tt.want {
			t.Errorf("Cell (%d,%d): expected attr %#x, got %#x", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestExecuteRedeliveryBounded(t *testing.T) {
	g := NewGroup(rect(0, 0, 10, 10))
	host := newProbe("host", nil, rect(0, 0, 10, 10), 0)
	calls := 0
	host.react = func(_ *probe, ev *event.Event) {
		if ev.Handled() {
			return
		}
		calls++
		if ev.Kind == event.Command {
			ev.ToBroadcast(command.User, nil)
		} else {
			ev.ToCommand(command.User, nil)
		}
	}
	src := &script{
		events: []event.Event{event.NewCommand(command.User, nil)},
		done:   func() { g.EndModal(command.Valid) },
	}

	g.Execute(src, host)

	if calls != MaxRedeliver+1 {
		t.Errorf("Expected %d deliveries, got %d", MaxRedeliver+1, calls)
	}
	if len(src.unhandled) != 1 {
		t.Errorf("Expected the event passed on as unhandled, got %d", len(src.unhandled))
	}
}

func TestEndModalIgnoredWhenIdle(t *testing.T) {
	g := NewGroup(rect(0, 0, 10, 10))
	g.EndModal(command.OK)

	host := newProbe("host", nil, rect(0, 0, 10, 10), 0)
	src := &script{
		events: []event.Event{char('a')},
		done:   func() { g.EndModal(command.Cancel) },
	}
	if got := g.Execute(src, host); got != command.Cancel {
		t.Errorf("Expected stale EndModal ignored and loop ended by Cancel, got %v", got)
	}
	if len(host.seen) == 0 {
		t.Errorf("Expected loop to run")
	}
	if g.Running() {
		t.Errorf("Expected loop stopped")
	}
}

func TestMouseSelectBroadcast(t *testing.T) {
	g := NewGroup(rect(0, 0, 20, 5))
	watcher := newProbe("watcher", nil, rect(0, 4, 1, 1), 0)
	a := newProbe("a", nil, rect(0, 0, 5, 3), OptSelectable)
	b := newProbe("b", nil, rect(10, 0, 5, 3), OptSelectable)
	g.Insert(watcher)
	g.Insert(a)
	g.Insert(b)

	selected := func() []any {
		var out []any
		for _, ev := range watcher.seen {
			if ev.IsBroadcast(command.Selected) {
				out = append(out, ev.Info)
			}
		}
		return out
	}
	if len(selected()) != 0 {
		t.Fatalf("Expected no Selected from Insert, got %v", selected())
	}

	ev := event.NewMouse(event.MouseDown, geom.Point{X: 1, Y: 1}, terminal.ButtonLeft)
	g.HandleEvent(&ev)
	if got := selected(); !reflect.DeepEqual(got, []any{a.ID()}) {
		t.Fatalf("Expected Selected for a, got %v", got)
	}

	// Clicking the current child again is not a new selection
	ev = event.NewMouse(event.MouseDown, geom.Point{X: 2, Y: 1}, terminal.ButtonLeft)
	g.HandleEvent(&ev)
	if got := selected(); len(got) != 1 {
		t.Errorf("Expected one Selected, got %v", got)
	}
}

func TestInsertBelowModal(t *testing.T) {
	g := NewGroup(rect(0, 0, 40, 20))
	back := newProbe("back", nil, rect(0, 0, 5, 5), OptSelectable)
	dlg := newProbe("dialog", nil, rect(10, 5, 10, 5), OptSelectable)
	g.Insert(back)
	dlg.SetState(StateModal, true)
	g.Insert(dlg)

	late := newProbe("late", nil, rect(0, 0, 40, 20), OptSelectable)
	g.Insert(late)

	if g.At(g.Len()-1) != View(dlg) {
		t.Errorf("Expected modal child to stay topmost")
	}
	if g.IndexOf(late) != g.IndexOf(dlg)-1 {
		t.Errorf("Expected late view directly below the modal child, got index %d", g.IndexOf(late))
	}
	if g.Current() != View(dlg) || !dlg.Focused() || late.Focused() {
		t.Errorf("Expected focus to stay on the modal child")
	}

	// A nested modal view still goes on top
	inner := newProbe("inner", nil, rect(12, 6, 4, 2), OptSelectable)
	inner.SetState(StateModal, true)
	g.Insert(inner)
	if g.At(g.Len()-1) != View(inner) || g.Current() != View(inner) {
		t.Errorf("Expected nested modal child on top and focused")
	}
}
