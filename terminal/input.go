package terminal

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventInterrupt // Posted by signal handlers; app unwinds modal loops and quits
	EventError     // Read error
	EventClosed    // Input closed
)

// Event represents a raw terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Width     int   // For EventResize
	Height    int   // For EventResize
	Err       error // For EventError

	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction
	Buttons     ButtonMask // Buttons held after this event
}

// parser turns a byte stream into events; keeps partial sequences across reads
type parser struct {
	buf  []byte
	held ButtonMask
}

// feed appends data and emits every complete event, keeping the incomplete tail
func (p *parser) feed(data []byte, emit func(Event)) {
	p.buf = append(p.buf, data...)
	consumed := p.parse(p.buf, emit)
	if consumed >= len(p.buf) {
		p.buf = p.buf[:0]
		return
	}
	n := copy(p.buf, p.buf[consumed:])
	p.buf = p.buf[:n]
}

// idle flushes a pending standalone ESC once no more bytes followed it
func (p *parser) idle(emit func(Event)) {
	if len(p.buf) == 1 && p.buf[0] == 0x1b {
		emit(Event{Type: EventKey, Key: KeyEscape})
		p.buf = p.buf[:0]
	}
}

// parse consumes as much as possible and returns bytes consumed (stops on incomplete sequence)
func (p *parser) parse(data []byte, emit func(Event)) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]
		switch {
		case b >= 0x20 && b < 0x7f:
			emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++

		case b == 0x1b:
			if i+1 >= n {
				return i
			}
			consumed, ev := p.parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			if ev.Type != EventKey || ev.Key != KeyNone {
				emit(ev)
			}
			i += consumed

		case b < 0x20:
			emit(parseControl(b))
			i++

		case b == 0x7f:
			emit(Event{Type: EventKey, Key: KeyBackspace})
			i++

		default:
			if !utf8.FullRune(data[i:]) {
				return i
			}
			r, size := utf8.DecodeRune(data[i:])
			emit(Event{Type: EventKey, Key: KeyRune, Rune: r})
			i += size
		}
	}
	return i
}

// parseEscape attempts to parse an escape sequence, returns 0 on incomplete
func (p *parser) parseEscape(data []byte) (int, Event) {
	switch {
	case data[1] == 0x1b:
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}
	case data[1] == '[':
		return p.parseCSI(data)
	case data[1] == 'O':
		if len(data) < 3 {
			return 0, Event{}
		}
		if key, mod, ok := lookupSS3(data[2:3]); ok {
			return 3, Event{Type: EventKey, Key: key, Modifiers: mod}
		}
		return 3, Event{Type: EventKey, Key: KeyNone}
	case data[1] < 0x20:
		ev := parseControl(data[1])
		ev.Modifiers |= ModAlt
		return 2, ev
	case data[1] < 0x7f:
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}
	}
	return 2, Event{Type: EventKey, Key: KeyNone}
}

// parseCSI parses CSI sequence without allocation
func (p *parser) parseCSI(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}
	if data[2] == '<' {
		return p.parseSGRMouse(data)
	}

	maxScan := min(len(data), 16)
	for end := 2; end < maxScan; end++ {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			if key, mod, ok := lookupCSI(data[2 : end+1]); ok {
				return end + 1, Event{Type: EventKey, Key: key, Modifiers: mod}
			}
			return end + 1, Event{Type: EventKey, Key: KeyNone}
		}
		// "[[A".."[[E" are linux console function keys
		if b == '[' && end == 2 {
			continue
		}
		if b < 0x20 || b > 0x7e {
			return end, Event{Type: EventKey, Key: KeyNone}
		}
	}
	if maxScan == 16 {
		// Overlong garbage: drop it
		return maxScan, Event{Type: EventKey, Key: KeyNone}
	}
	return 0, Event{}
}

// parseControl maps control characters to keys
func parseControl(b byte) Event {
	switch b {
	case 0x00:
		return Event{Type: EventKey, Key: KeyCtrlSpace}
	case 0x08:
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d:
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x1b:
		return Event{Type: EventKey, Key: KeyEscape}
	}
	if b >= 0x01 && b <= 0x1a {
		return Event{Type: EventKey, Key: KeyCtrlA + Key(b-0x01), Modifiers: ModCtrl}
	}
	return Event{Type: EventKey, Key: KeyNone}
}

// parseSGRMouse parses "ESC [ < Btn ; X ; Y M/m"
func (p *parser) parseSGRMouse(data []byte) (int, Event) {
	end := 3
	for end < len(data) && end < 32 && data[end] != 'M' && data[end] != 'm' {
		end++
	}
	if end >= len(data) {
		if end >= 32 {
			return end, Event{Type: EventKey, Key: KeyNone}
		}
		return 0, Event{}
	}
	if data[end] != 'M' && data[end] != 'm' {
		return end, Event{Type: EventKey, Key: KeyNone}
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return end + 1, Event{Type: EventKey, Key: KeyNone}
	}

	ev := Event{Type: EventMouse, MouseX: x - 1, MouseY: y - 1}

	// Bits 0-1: button, bit 5: motion, bit 6: wheel
	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	if isScroll {
		if buttonID == 0 {
			ev.MouseBtn = MouseBtnWheelUp
		} else {
			ev.MouseBtn = MouseBtnWheelDown
		}
		ev.MouseAction = MouseActionPress
	} else {
		switch buttonID {
		case 0:
			ev.MouseBtn = MouseBtnLeft
		case 1:
			ev.MouseBtn = MouseBtnMiddle
		case 2:
			ev.MouseBtn = MouseBtnRight
		}

		switch {
		case data[end] == 'm':
			ev.MouseAction = MouseActionRelease
			p.held &^= ev.MouseBtn.Mask()
		case isMotion && ev.MouseBtn != MouseBtnNone && p.held != 0:
			ev.MouseAction = MouseActionDrag
		case isMotion:
			ev.MouseAction = MouseActionMove
		default:
			ev.MouseAction = MouseActionPress
			p.held |= ev.MouseBtn.Mask()
		}
	}
	ev.Buttons = p.held

	if btn&4 != 0 {
		ev.Modifiers |= ModShift
	}
	if btn&8 != 0 {
		ev.Modifiers |= ModAlt
	}
	if btn&16 != 0 {
		ev.Modifiers |= ModCtrl
	}

	return end + 1, ev
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y" format
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0
	val := 0

	for _, b := range data {
		switch {
		case b == ';':
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			if val > 9999 {
				return 0, 0, 0, false
			}
		default:
			return 0, 0, 0, false
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	return btn, x, val, true
}

// inputReader runs the parser over backend reads on its own goroutine
type inputReader struct {
	backend Backend
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
	p       parser
}

// readRetryDelay paces retries after a failed read
const readRetryDelay = 10 * time.Millisecond

func newInputReader(backend Backend) *inputReader {
	return &inputReader{
		backend: backend,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (r *inputReader) start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	go r.readLoop()
}

// stop signals the reader and waits briefly; a read stuck in the kernel is abandoned
func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	select {
	case <-r.doneCh:
	case <-time.After(100 * time.Millisecond):
	}
}

func (r *inputReader) events() <-chan Event {
	return r.eventCh
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			if errors.Is(err, os.ErrClosed) || errors.Is(err, io.EOF) {
				r.send(Event{Type: EventClosed})
				return
			}
			// Reported once per failure; the next read retries
			r.send(Event{Type: EventError, Err: err})
			select {
			case <-r.stopCh:
				r.send(Event{Type: EventClosed})
				return
			case <-time.After(readRetryDelay):
			}
			continue
		}
		if len(data) == 0 {
			r.p.idle(r.send)
			select {
			case <-r.stopCh:
				r.send(Event{Type: EventClosed})
				return
			default:
				continue
			}
		}
		r.p.feed(data, r.send)
	}
}

// send is non-blocking; a full channel drops the event
func (r *inputReader) send(ev Event) {
	select {
	case r.eventCh <- ev:
	default:
	}
}
