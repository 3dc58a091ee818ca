package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) (tcell.SimulationScreen, Screen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	scr := NewTcellWithScreen(sim, ColorMode16, true)
	if err := scr.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(scr.Fini)
	return sim, scr
}

// nextScreenEvent polls past resize notifications, which tcell may emit on Init
func nextScreenEvent(scr Screen, timeout time.Duration) (Event, bool) {
	for {
		ev, ok := scr.PollEvent(timeout)
		if !ok || ev.Type != EventResize {
			return ev, ok
		}
	}
}

// TestTcellCellRoundTrip verifies cells reach the simulation screen with mapped colors
func TestTcellCellRoundTrip(t *testing.T) {
	sim, scr := newSimScreen(t)

	scr.SetCell(1, 0, Cell{Rune: 'Q', Attr: MakeAttr(Yellow, Blue)})
	if err := scr.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if got := scr.Cell(1, 0); got.Rune != 'Q' || got.Attr != MakeAttr(Yellow, Blue) {
		t.Errorf("Expected Q yellow on blue, got %q %#02x", got.Rune, got.Attr)
	}

	cells, w, _ := sim.GetContents()
	c := cells[1]
	if w < 2 || len(c.Runes) == 0 || c.Runes[0] != 'Q' {
		t.Fatalf("Expected Q on simulation screen, got %v", c.Runes)
	}
	fg, bg, _ := c.Style.Decompose()
	if fg != tcell.PaletteColor(int(Yellow.ANSI())) {
		t.Errorf("Expected fg palette %d, got %v", Yellow.ANSI(), fg)
	}
	if bg != tcell.PaletteColor(int(Blue.ANSI())) {
		t.Errorf("Expected bg palette %d, got %v", Blue.ANSI(), bg)
	}
}

// TestTcellEvents verifies key, mouse and posted events come through PollEvent
func TestTcellEvents(t *testing.T) {
	sim, scr := newSimScreen(t)

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	ev, ok := nextScreenEvent(scr, time.Second)
	if !ok || ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'x' {
		t.Fatalf("Expected rune x, got %+v (ok=%v)", ev, ok)
	}

	sim.InjectKey(tcell.KeyF10, 0, tcell.ModNone)
	ev, ok = nextScreenEvent(scr, time.Second)
	if !ok || ev.Key != KeyF10 {
		t.Fatalf("Expected F10, got %+v (ok=%v)", ev, ok)
	}

	sim.InjectMouse(3, 2, tcell.ButtonPrimary, tcell.ModNone)
	ev, ok = nextScreenEvent(scr, time.Second)
	if !ok || ev.Type != EventMouse || ev.MouseAction != MouseActionPress || ev.MouseBtn != MouseBtnLeft {
		t.Fatalf("Expected left press, got %+v (ok=%v)", ev, ok)
	}
	if ev.MouseX != 3 || ev.MouseY != 2 {
		t.Errorf("Expected position (3,2), got (%d,%d)", ev.MouseX, ev.MouseY)
	}

	sim.InjectMouse(3, 2, tcell.ButtonNone, tcell.ModNone)
	ev, _ = nextScreenEvent(scr, time.Second)
	if ev.MouseAction != MouseActionRelease || ev.Buttons != 0 {
		t.Errorf("Expected release with no buttons, got %+v", ev)
	}

	scr.PostEvent(Event{Type: EventInterrupt})
	ev, ok = nextScreenEvent(scr, time.Second)
	if !ok || ev.Type != EventInterrupt {
		t.Errorf("Expected posted interrupt, got %+v (ok=%v)", ev, ok)
	}
}

// TestTcellPollTimeout verifies an idle poll returns false
func TestTcellPollTimeout(t *testing.T) {
	_, scr := newSimScreen(t)
	if _, ok := nextScreenEvent(scr, 10*time.Millisecond); ok {
		t.Error("Expected timeout with no input")
	}
}
