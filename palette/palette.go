// @focus: #render { palette }
package palette

import (
	"github.com/lixenwraith/termdesk/terminal"
)

// Palette is an immutable 1-based index table
// Each byte indexes the next palette up the chain; 0 is the error sentinel
type Palette []byte

// At returns entry i (1-based), 0 when out of range
func (p Palette) At(i int) byte {
	if i < 1 || i > len(p) {
		return 0
	}
	return p[i-1]
}

func (p Palette) Len() int {
	return len(p)
}

// ContainerRange is the highest index remapped through a window or dialog palette
const ContainerRange = 31

// Variant selects the container palette applied to a window's or dialog's children
type Variant uint8

const (
	BlueWindow Variant = iota
	CyanWindow
	GrayWindow
	GrayDialog
	BlueDialog
)

// Application index layout
const (
	DesktopIndex   = 1
	MenuIndex      = 2  // 2..7: normal, disabled, shortcut, selected, selected disabled, selected shortcut
	BlueWindowBase = 8  // 8..15
	CyanWindowBase = 16 // 16..23
	GrayWindowBase = 24 // 24..31
	GrayDialogBase = 32 // 32..62
	BlueDialogBase = 63 // 63..93
	windowEntries  = 8
	dialogEntries  = ContainerRange
	AppSize        = BlueDialogBase + dialogEntries - 1
)

// span builds a palette of n consecutive application indices starting at base
func span(base, n int) Palette {
	p := make(Palette, n)
	for i := range p {
		p[i] = byte(base + i)
	}
	return p
}

var variants = [...]Palette{
	BlueWindow: span(BlueWindowBase, windowEntries),
	CyanWindow: span(CyanWindowBase, windowEntries),
	GrayWindow: span(GrayWindowBase, windowEntries),
	GrayDialog: span(GrayDialogBase, dialogEntries),
	BlueDialog: span(BlueDialogBase, dialogEntries),
}

// Palette returns the container table for the variant; nil for unknown variants
func (v Variant) Palette() Palette {
	if int(v) >= len(variants) {
		return nil
	}
	return variants[v]
}

func (v Variant) String() string {
	switch v {
	case BlueWindow:
		return "blue-window"
	case CyanWindow:
		return "cyan-window"
	case GrayWindow:
		return "gray-window"
	case GrayDialog:
		return "gray-dialog"
	case BlueDialog:
		return "blue-dialog"
	}
	return "unknown"
}

// Resolve walks own palette, container palette and the application table
// own and container may be nil to skip their step
// Any step yielding 0 produces terminal.ErrorAttr
func Resolve(index byte, own, container Palette) terminal.Attr {
	if index == 0 {
		return terminal.ErrorAttr
	}
	if own != nil {
		if index = own.At(int(index)); index == 0 {
			return terminal.ErrorAttr
		}
	}
	if container != nil && index <= ContainerRange {
		if index = container.At(int(index)); index == 0 {
			return terminal.ErrorAttr
		}
	}
	a := current.At(int(index))
	if a == 0 {
		return terminal.ErrorAttr
	}
	return terminal.Attr(a)
}
