// Package terminal implements the VT102 screen backend: a character/
// attribute grid, cursor, scroll margins, and dirty tracking driven by a
// vt102.Parser through the vt102.Handler interface.
package terminal

// Cell attribute byte: low nibble is the foreground color index (0-7),
// high nibble is the background color index (0-7). Index -> name: 0 black,
// 1 red, 2 green, 3 yellow, 4 blue, 5 magenta, 6 cyan, 7 white.
const (
	Black = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// DefaultFg and DefaultBg are the colors new cells and a reset SGR inherit.
const (
	DefaultFg = White
	DefaultBg = Black
)

// blankChar is the character erasure writes: space.
const blankChar byte = 0x20

// makeAttr packs a foreground/background color pair into one attribute byte.
func makeAttr(fg, bg int) byte {
	return byte(fg&0x07) | byte(bg&0x07)<<4
}

// splitAttr unpacks an attribute byte into (fg, bg), per the bit-exact
// external contract: fg = byte & 0x07, bg = (byte >> 4) & 0x07.
func splitAttr(attr byte) (fg, bg int) {
	return int(attr & 0x07), int((attr >> 4) & 0x07)
}
