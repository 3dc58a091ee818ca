package terminal

import "strings"

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter, contiguous so KeyCtrlA+n is Ctrl+('A'+n)
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	KeyCtrlSpace
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

var keyNames = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "page_up",
	KeyPageDown:  "page_down",
	KeyInsert:    "insert",
	KeyCtrlSpace: "ctrl_space",
}

var nameToKey map[string]Key

func init() {
	for i := 0; i < 12; i++ {
		keyNames[KeyF1+Key(i)] = "f" + itoa(i+1)
	}
	for i := 0; i < 26; i++ {
		keyNames[KeyCtrlA+Key(i)] = "ctrl_" + string(rune('a'+i))
	}
	nameToKey = make(map[string]Key, len(keyNames)+1)
	for k, v := range keyNames {
		nameToKey[v] = k
	}
	nameToKey["shift_tab"] = KeyBacktab
}

// String returns the canonical config name, empty for KeyNone and KeyRune
func (k Key) String() string {
	return keyNames[k]
}

// KeyByName resolves a canonical name such as "f10" or "ctrl_q"
func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[strings.ToLower(name)]
	return k, ok
}

// escapeSequence maps the bytes after the CSI/SS3 introducer to a key
type escapeSequence struct {
	key Key
	mod Modifier
}

// Unmodified CSI sequences (ESC [ ...)
var csiBase = map[string]Key{
	"A": KeyUp, "B": KeyDown, "C": KeyRight, "D": KeyLeft,
	"H": KeyHome, "F": KeyEnd,
	"1~": KeyHome, "4~": KeyEnd, "7~": KeyHome, "8~": KeyEnd,
	"2~": KeyInsert, "3~": KeyDelete, "5~": KeyPageUp, "6~": KeyPageDown,
	"11~": KeyF1, "12~": KeyF2, "13~": KeyF3, "14~": KeyF4,
	"15~": KeyF5, "17~": KeyF6, "18~": KeyF7, "19~": KeyF8,
	"20~": KeyF9, "21~": KeyF10, "23~": KeyF11, "24~": KeyF12,
	"[A": KeyF1, "[B": KeyF2, "[C": KeyF3, "[D": KeyF4, "[E": KeyF5,
}

// Letter-final sequences take modifiers as "1;<mod><final>"
var csiLetterFinal = map[string]Key{
	"A": KeyUp, "B": KeyDown, "C": KeyRight, "D": KeyLeft,
	"H": KeyHome, "F": KeyEnd,
	"P": KeyF1, "Q": KeyF2, "R": KeyF3, "S": KeyF4,
}

// Tilde sequences take modifiers as "<n>;<mod>~"
var csiTildeFinal = map[string]Key{
	"2": KeyInsert, "3": KeyDelete, "5": KeyPageUp, "6": KeyPageDown,
	"15": KeyF5, "17": KeyF6, "18": KeyF7, "19": KeyF8,
	"20": KeyF9, "21": KeyF10, "23": KeyF11, "24": KeyF12,
}

// SS3 sequences (ESC O ...)
var ss3Base = map[string]Key{
	"A": KeyUp, "B": KeyDown, "C": KeyRight, "D": KeyLeft,
	"H": KeyHome, "F": KeyEnd,
	"P": KeyF1, "Q": KeyF2, "R": KeyF3, "S": KeyF4,
	"M": KeyEnter,
}

var (
	csiMap = buildCSIMap()
	ss3Map = buildSS3Map()
)

// buildCSIMap expands the base tables with xterm modifier params 2..8
func buildCSIMap() map[string]escapeSequence {
	m := make(map[string]escapeSequence, 256)
	for seq, k := range csiBase {
		m[seq] = escapeSequence{k, ModNone}
	}
	m["Z"] = escapeSequence{KeyBacktab, ModShift}

	for p := 2; p <= 8; p++ {
		mod := Modifier(p - 1)
		for final, k := range csiLetterFinal {
			m["1;"+itoa(p)+final] = escapeSequence{k, mod}
		}
		for n, k := range csiTildeFinal {
			m[n+";"+itoa(p)+"~"] = escapeSequence{k, mod}
		}
	}
	return m
}

func buildSS3Map() map[string]escapeSequence {
	m := make(map[string]escapeSequence, len(ss3Base))
	for seq, k := range ss3Base {
		m[seq] = escapeSequence{k, ModNone}
	}
	return m
}

// lookupCSI performs zero-alloc map lookup via compiler optimization
func lookupCSI(seq []byte) (Key, Modifier, bool) {
	if s, ok := csiMap[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}

// lookupSS3 performs zero-alloc map lookup
func lookupSS3(seq []byte) (Key, Modifier, bool) {
	if s, ok := ss3Map[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}

func itoa(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return itoa(n/10) + string(rune('0'+n%10))
}
