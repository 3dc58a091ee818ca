package command

// Set records which disableable commands are enabled
// Not safe for concurrent use; owned by the UI goroutine
type Set struct {
	bits    [Disableable / 64]uint64 // Set bit = disabled
	changed bool
}

// NewSet returns a set with every command enabled
func NewSet() *Set {
	return &Set{}
}

// Enabled reports whether c is enabled; IDs outside the bitset always are
func (s *Set) Enabled(c ID) bool {
	if !c.CanDisable() {
		return true
	}
	return s.bits[c/64]&(1<<(c%64)) == 0
}

// Enable clears the disabled bit of each command
func (s *Set) Enable(cmds ...ID) {
	for _, c := range cmds {
		if !c.CanDisable() {
			continue
		}
		mask := uint64(1) << (c % 64)
		if s.bits[c/64]&mask != 0 {
			s.bits[c/64] &^= mask
			s.changed = true
		}
	}
}

// Disable sets the disabled bit of each command
func (s *Set) Disable(cmds ...ID) {
	for _, c := range cmds {
		if !c.CanDisable() {
			continue
		}
		mask := uint64(1) << (c % 64)
		if s.bits[c/64]&mask == 0 {
			s.bits[c/64] |= mask
			s.changed = true
		}
	}
}

// EnableAll enables every command
func (s *Set) EnableAll() {
	for i := range s.bits {
		if s.bits[i] != 0 {
			s.bits[i] = 0
			s.changed = true
		}
	}
}

// DisableAll disables every disableable command
func (s *Set) DisableAll() {
	for i := range s.bits {
		if s.bits[i] != ^uint64(0) {
			s.bits[i] = ^uint64(0)
			s.changed = true
		}
	}
}

// Changed reports whether any bit flipped since the last ClearChanged
func (s *Set) Changed() bool {
	return s.changed
}

func (s *Set) ClearChanged() {
	s.changed = false
}

// std is the process-scoped set used by widgets and the Program
var std = NewSet()

func Enabled(c ID) bool { return std.Enabled(c) }
func Enable(cmds ...ID) { std.Enable(cmds...) }
func Disable(cmds ...ID) { std.Disable(cmds...) }
func EnableAll() { std.EnableAll() }
func DisableAll() { std.DisableAll() }
func Changed() bool { return std.Changed() }
func ClearChanged() { std.ClearChanged() }
