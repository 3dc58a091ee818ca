package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi      = []byte("\x1b[")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0  = []byte("\x1b[0m")
	csiBell  = []byte("\a")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// ?7l disables wrapping so a write to the bottom-right corner does not scroll
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	// Mouse reporting: click, drag, any-motion, SGR encoding
	csiMouseOn  = []byte("\x1b[?1000h\x1b[?1002h\x1b[?1003h\x1b[?1006h")
	csiMouseOff = []byte("\x1b[?1003l\x1b[?1002l\x1b[?1000l\x1b[?1006l")
)

// writeInt writes an integer without allocation
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [8]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeCursorForward writes cursor forward N positions
func writeCursorForward(w *bufio.Writer, n int) {
	if n <= 0 {
		return
	}
	w.Write(csi)
	if n > 1 {
		writeInt(w, n)
	}
	w.WriteByte('C')
}

// writeAttr emits one combined SGR sequence selecting fg and bg of a
func writeAttr(w *bufio.Writer, a Attr, mode ColorMode) {
	w.Write(csi)
	w.WriteByte('0')
	writeColor(w, a.Fg(), false, mode)
	writeColor(w, a.Bg(), true, mode)
	w.WriteByte('m')
}

// writeColor writes ";<params>" for one color channel
func writeColor(w *bufio.Writer, c Color, bg bool, mode ColorMode) {
	w.WriteByte(';')
	switch mode {
	case ColorModeTrueColor:
		rgb := c.RGB()
		if bg {
			w.WriteString("48;2;")
		} else {
			w.WriteString("38;2;")
		}
		writeInt(w, int(rgb.R))
		w.WriteByte(';')
		writeInt(w, int(rgb.G))
		w.WriteByte(';')
		writeInt(w, int(rgb.B))
	case ColorMode256:
		if bg {
			w.WriteString("48;5;")
		} else {
			w.WriteString("38;5;")
		}
		writeInt(w, int(c.ANSI()))
	default:
		n := int(c.ANSI())
		base := 30
		if bg {
			base = 40
		}
		if n >= 8 {
			base += 60
			n -= 8
		}
		writeInt(w, base+n)
	}
}
