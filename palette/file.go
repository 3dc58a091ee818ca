package palette

import (
	"errors"
	"fmt"
	"os"

	"github.com/lixenwraith/termdesk/terminal"
	"gopkg.in/yaml.v3"
)

// ErrUnknownColor is returned for palette entries that are neither a color name nor #rrggbb
var ErrUnknownColor = errors.New("unknown color")

// fileEntry is one override; colors are names or #rrggbb
type fileEntry struct {
	Fg string `yaml:"fg"`
	Bg string `yaml:"bg"`
}

// fileFormat is the on-disk palette:
//
//	base: color
//	entries:
//	  1: {fg: blue, bg: "#aaaaaa"}
type fileFormat struct {
	Base    string            `yaml:"base"`
	Entries map[int]fileEntry `yaml:"entries"`
}

// LoadFile reads a YAML palette file
func LoadFile(path string) (App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return App{}, fmt.Errorf("read palette: %w", err)
	}
	app, err := Parse(data)
	if err != nil {
		return App{}, fmt.Errorf("palette %s: %w", path, err)
	}
	return app, nil
}

// Parse decodes a YAML palette; entries override the base table
// An entry naming only fg or only bg keeps the other half of the base attribute
func Parse(data []byte) (App, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return App{}, fmt.Errorf("decode: %w", err)
	}

	app, ok := ByName(f.Base)
	if !ok {
		return App{}, fmt.Errorf("unknown base %q", f.Base)
	}

	for idx, e := range f.Entries {
		if idx < 1 || idx > AppSize {
			return App{}, fmt.Errorf("entry %d: index out of range 1..%d", idx, AppSize)
		}
		a := terminal.Attr(app[idx-1])
		fg, bg := a.Fg(), a.Bg()
		if e.Fg != "" {
			c, ok := terminal.ParseColor(e.Fg)
			if !ok {
				return App{}, fmt.Errorf("entry %d fg %q: %w", idx, e.Fg, ErrUnknownColor)
			}
			fg = c
		}
		if e.Bg != "" {
			c, ok := terminal.ParseColor(e.Bg)
			if !ok {
				return App{}, fmt.Errorf("entry %d bg %q: %w", idx, e.Bg, ErrUnknownColor)
			}
			bg = c
		}
		attr := terminal.MakeAttr(fg, bg)
		if attr == 0 {
			// Black on black would read as the error sentinel
			return App{}, fmt.Errorf("entry %d: black on black is reserved", idx)
		}
		app[idx-1] = byte(attr)
	}
	return app, nil
}
