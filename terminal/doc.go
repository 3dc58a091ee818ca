// Package terminal provides the screen boundary used by the view runtime.
//
// Two Screen implementations are available:
//   - NewANSI drives xterm-compatible terminals directly: raw stdin parsing,
//     SGR mouse, SIGWINCH resize and a double-buffered Renderer that emits only
//     changed cell runs
//   - NewTcell wraps a tcell screen, which also accepts tcell's SimulationScreen
//
// Colors are the 16 classic text-mode colors in VGA order. An Attr packs a
// foreground and background pair into one byte.
package terminal
