package palette

import "strings"

// App is a full application table: one attribute byte (fg | bg<<4) per index
type App [AppSize]byte

// At returns entry i (1-based), 0 when out of range
func (a *App) At(i int) byte {
	if i < 1 || i > AppSize {
		return 0
	}
	return a[i-1]
}

// Color is the default table for color terminals
var Color = App{
	// Desktop
	0x71,
	// Menu and status line
	0x70, 0x78, 0x74, 0x20, 0x28, 0x24,
	// Blue window
	0x17, 0x1F, 0x1A, 0x31, 0x31, 0x1E, 0x71, 0x1F,
	// Cyan window
	0x37, 0x3F, 0x3A, 0x13, 0x13, 0x3E, 0x21, 0x3F,
	// Gray window
	0x70, 0x7F, 0x7A, 0x13, 0x13, 0x70, 0x7F, 0x7E,
	// Gray dialog
	0x70, 0x7F, 0x7A, 0x13, 0x13, 0x70, 0x70, 0x7F, 0x7E, 0x20, 0x2B, 0x2F, 0x78, 0x2E, 0x70, 0x30,
	0x3F, 0x3E, 0x1F, 0x2F, 0x1A, 0x20, 0x72, 0x31, 0x31, 0x30, 0x2F, 0x3E, 0x31, 0x13, 0x38,
	// Blue dialog
	0x17, 0x1F, 0x1A, 0x71, 0x71, 0x1E, 0x17, 0x1F, 0x1E, 0x20, 0x2B, 0x2F, 0x78, 0x2E, 0x10, 0x30,
	0x3F, 0x3E, 0x70, 0x2F, 0x7A, 0x20, 0x12, 0x31, 0x31, 0x30, 0x2F, 0x3E, 0x31, 0x13, 0x38,
}

// BlackWhite uses gray levels only
var BlackWhite = App{
	0x70,
	0x70, 0x78, 0x7F, 0x07, 0x07, 0x0F,
	0x07, 0x0F, 0x07, 0x70, 0x70, 0x07, 0x70, 0x0F,
	0x07, 0x0F, 0x07, 0x70, 0x70, 0x07, 0x70, 0x0F,
	0x70, 0x7F, 0x7F, 0x70, 0x07, 0x70, 0x07, 0x0F,
	0x70, 0x7F, 0x7F, 0x70, 0x07, 0x70, 0x70, 0x7F, 0x7F, 0x07, 0x0F, 0x0F, 0x78, 0x0F, 0x78, 0x07,
	0x0F, 0x0F, 0x0F, 0x70, 0x0F, 0x07, 0x70, 0x70, 0x70, 0x07, 0x70, 0x0F, 0x07, 0x07, 0x08,
	0x07, 0x0F, 0x0F, 0x07, 0x70, 0x07, 0x07, 0x0F, 0x0F, 0x70, 0x78, 0x7F, 0x08, 0x7F, 0x08, 0x70,
	0x7F, 0x7F, 0x7F, 0x0F, 0x70, 0x70, 0x07, 0x70, 0x70, 0x70, 0x07, 0x7F, 0x70, 0x07, 0x78,
}

// Monochrome uses normal, bright and reverse only
var Monochrome = App{
	0x70,
	0x07, 0x07, 0x0F, 0x70, 0x70, 0x70,
	0x07, 0x0F, 0x07, 0x70, 0x70, 0x07, 0x70, 0x07,
	0x07, 0x0F, 0x07, 0x70, 0x70, 0x07, 0x70, 0x07,
	0x70, 0x70, 0x70, 0x07, 0x07, 0x70, 0x07, 0x07,
	0x70, 0x70, 0x70, 0x07, 0x07, 0x70, 0x70, 0x70, 0x0F, 0x07, 0x07, 0x0F, 0x70, 0x0F, 0x70, 0x07,
	0x0F, 0x0F, 0x07, 0x70, 0x07, 0x07, 0x70, 0x07, 0x07, 0x07, 0x70, 0x0F, 0x07, 0x07, 0x70,
	0x07, 0x0F, 0x0F, 0x07, 0x70, 0x07, 0x07, 0x0F, 0x0F, 0x70, 0x70, 0x0F, 0x07, 0x0F, 0x07, 0x70,
	0x0F, 0x0F, 0x0F, 0x07, 0x70, 0x70, 0x07, 0x70, 0x70, 0x70, 0x07, 0x0F, 0x70, 0x07, 0x70,
}

// current is the live application table; no view caches lookups through it
var current = Color

// SetApplication replaces the live application table
func SetApplication(p App) {
	current = p
}

// ClearApplication restores the built-in color table
func ClearApplication() {
	current = Color
}

// Application returns a copy of the live table
func Application() App {
	return current
}

// ByName resolves "color", "bw"/"blackwhite" or "mono"/"monochrome"
func ByName(name string) (App, bool) {
	switch strings.ToLower(name) {
	case "color", "":
		return Color, true
	case "bw", "blackwhite":
		return BlackWhite, true
	case "mono", "monochrome":
		return Monochrome, true
	}
	return App{}, false
}
