package terminal

import (
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is one of the 16 classic text-mode colors, in VGA order
type Color uint8

const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGray
	DarkGray
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	Yellow
	White
)

// colorNames index by Color; used for palette files and diagnostics
var colorNames = [16]string{
	"black", "blue", "green", "cyan", "red", "magenta", "brown", "lightgray",
	"darkgray", "lightblue", "lightgreen", "lightcyan", "lightred", "lightmagenta", "yellow", "white",
}

func (c Color) String() string {
	return colorNames[c&0x0F]
}

// ColorByName resolves a lower-case color name
func ColorByName(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return 0, false
}

// Bright reports whether the color is in the high-intensity half
func (c Color) Bright() bool {
	return c&0x08 != 0
}

// ANSI returns the SGR color number (0-15) for the color
// VGA order swaps the red and blue bits relative to ANSI order
func (c Color) ANSI() uint8 {
	v := uint8(c & 0x0F)
	return v&0x0A | (v&0x01)<<2 | (v&0x04)>>2
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// vgaHex is the reference RGB for each Color
var vgaHex = [16]string{
	"#000000", "#0000aa", "#00aa00", "#00aaaa", "#aa0000", "#aa00aa", "#aa5500", "#aaaaaa",
	"#555555", "#5555ff", "#55ff55", "#55ffff", "#ff5555", "#ff55ff", "#ffff55", "#ffffff",
}

var (
	vgaColorful [16]colorful.Color
	vgaRGB      [16]RGB
)

func init() {
	for i, h := range vgaHex {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("terminal: bad vga table entry " + h)
		}
		vgaColorful[i] = c
		r, g, b := c.RGB255()
		vgaRGB[i] = RGB{r, g, b}
	}
}

// RGB returns the reference 24-bit value of the color
func (c Color) RGB() RGB {
	return vgaRGB[c&0x0F]
}

// NearestColor maps an arbitrary color to the closest of the 16 by CIE Lab distance
func NearestColor(c colorful.Color) Color {
	best := Black
	bestDist := c.DistanceLab(vgaColorful[0])
	for i := 1; i < 16; i++ {
		if d := c.DistanceLab(vgaColorful[i]); d < bestDist {
			bestDist = d
			best = Color(i)
		}
	}
	return best
}

// ParseColor accepts a color name or a #rrggbb value snapped to the nearest color
func ParseColor(s string) (Color, bool) {
	if c, ok := ColorByName(s); ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		if cf, err := colorful.Hex(s); err == nil {
			return NearestColor(cf), true
		}
	}
	return 0, false
}

// Attr is a foreground/background color pair packed as fg | bg<<4
type Attr uint8

// ErrorAttr is the fixed fallback for unresolvable palette lookups
const ErrorAttr Attr = Attr(White) | Attr(Black)<<4

// MakeAttr packs a color pair
func MakeAttr(fg, bg Color) Attr {
	return Attr(fg&0x0F) | Attr(bg&0x0F)<<4
}

// Fg returns the low nibble
func (a Attr) Fg() Color {
	return Color(a & 0x0F)
}

// Bg returns the high nibble
func (a Attr) Bg() Color {
	return Color(a >> 4)
}

// Shadowed returns the darkened derivative used for drop shadows
// Bright foregrounds lose intensity, others become dark gray; background turns black
func (a Attr) Shadowed() Attr {
	fg := a.Fg()
	switch {
	case fg.Bright():
		fg &^= 0x08
	case fg != Black:
		fg = DarkGray
	}
	return MakeAttr(fg, Black)
}

// Cell represents a single terminal cell
type Cell struct {
	Rune rune
	Attr Attr
}

// ColorMode indicates how colors are emitted
type ColorMode uint8

const (
	ColorMode16        ColorMode = iota // SGR 30-37/90-97
	ColorMode256                        // xterm-256 palette, indices 0-15
	ColorModeTrueColor                  // 24-bit RGB from the VGA table
)

// ParseColorMode accepts "16", "256" or "truecolor"
func ParseColorMode(s string) (ColorMode, bool) {
	switch strings.ToLower(s) {
	case "16":
		return ColorMode16, true
	case "256":
		return ColorMode256, true
	case "truecolor", "24bit":
		return ColorModeTrueColor, true
	}
	return ColorMode16, false
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") || strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}
	if strings.Contains(term, "256color") {
		return ColorMode256
	}
	return ColorMode16
}
