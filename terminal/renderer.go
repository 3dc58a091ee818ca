package terminal

import (
	"bufio"
	"io"

	"github.com/mattn/go-runewidth"
)

// WideTail marks the cell covered by the right half of a double-width rune
const WideTail rune = -2

// staleRune marks front cells whose physical content is unknown
const staleRune rune = -1

// Renderer manages double-buffered terminal output with cell diffing
// back is what views draw into; front mirrors what was last physically emitted
type Renderer struct {
	back      []Cell
	front     []Cell
	width     int
	height    int
	colorMode ColorMode
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	lastAttr  Attr
	lastValid bool
}

// NewRenderer creates a renderer writing escape sequences to w
func NewRenderer(w io.Writer, colorMode ColorMode) *Renderer {
	return &Renderer{
		writer:    bufio.NewWriterSize(w, 65536),
		colorMode: colorMode,
	}
}

// Resize reallocates both grids and forces a full repaint on the next flush
func (o *Renderer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(o.back) < size {
		o.back = make([]Cell, size)
		o.front = make([]Cell, size)
	} else {
		o.back = o.back[:size]
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height

	blank := Cell{Rune: ' ', Attr: MakeAttr(LightGray, Black)}
	for i := range o.back {
		o.back[i] = blank
	}
	o.Invalidate()
}

// Size returns grid dimensions
func (o *Renderer) Size() (int, int) {
	return o.width, o.height
}

// SetCell writes one back-grid cell; out-of-range writes are dropped
func (o *Renderer) SetCell(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= o.width || y >= o.height {
		return
	}
	o.back[y*o.width+x] = c
}

// Cell reads one back-grid cell
func (o *Renderer) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= o.width || y >= o.height {
		return Cell{}
	}
	return o.back[y*o.width+x]
}

// Invalidate forgets the physical state so the next flush repaints every cell
func (o *Renderer) Invalidate() {
	for i := range o.front {
		o.front[i] = Cell{Rune: staleRune}
	}
	o.lastValid = false
	o.cursorValid = false
}

// Flush diffs back against front and emits only changed runs
// Returns the number of cells written
func (o *Renderer) Flush() (int, error) {
	w := o.writer
	written := 0

	for y := 0; y < o.height; y++ {
		rowStart := y * o.width
		x := 0

		for x < o.width {
			idx := rowStart + x
			if o.back[idx] == o.front[idx] {
				x++
				continue
			}
			if o.back[idx].Rune == WideTail {
				o.front[idx] = o.back[idx]
				x++
				continue
			}

			// Position once per dirty run
			if !o.cursorValid || x != o.cursorX || y != o.cursorY {
				if o.cursorValid && y == o.cursorY && x > o.cursorX {
					writeCursorForward(w, x-o.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				o.cursorX = x
				o.cursorY = y
				o.cursorValid = true
			}

			for x < o.width {
				cidx := rowStart + x
				c := o.back[cidx]
				if c == o.front[cidx] {
					break
				}
				if c.Rune == WideTail {
					o.front[cidx] = c
					x++
					continue
				}

				if !o.lastValid || c.Attr != o.lastAttr {
					writeAttr(w, c.Attr, o.colorMode)
					o.lastAttr = c.Attr
					o.lastValid = true
				}

				r := c.Rune
				if r <= 0 {
					r = ' '
				}
				if r < 0x80 {
					w.WriteByte(byte(r))
				} else {
					w.WriteRune(r)
				}

				o.front[cidx] = c
				written++
				o.cursorX += max(runewidth.RuneWidth(r), 1)
				x++
			}
		}
	}

	if written == 0 {
		return 0, nil
	}
	w.Write(csiSGR0)
	o.lastValid = false
	return written, w.Flush()
}

// writeRaw pushes a control sequence through the same buffered stream
func (o *Renderer) writeRaw(p []byte) error {
	o.writer.Write(p)
	return o.writer.Flush()
}

// moveCursor positions the hardware cursor and records it
func (o *Renderer) moveCursor(x, y int) error {
	writeCursorPos(o.writer, x, y)
	o.cursorX, o.cursorY, o.cursorValid = x, y, true
	return o.writer.Flush()
}

// clearScreen wipes the physical screen; front becomes blank in the cleared attr
func (o *Renderer) clearScreen() error {
	w := o.writer
	w.Write(csiSGR0)
	writeAttr(w, MakeAttr(LightGray, Black), o.colorMode)
	w.Write(csiClear)
	o.lastValid = false
	o.cursorValid = false
	blank := Cell{Rune: ' ', Attr: MakeAttr(LightGray, Black)}
	for i := range o.front {
		o.front[i] = blank
	}
	return w.Flush()
}
