package terminal

// Cursor is a zero-based (X, Y) position. Clamping to the grid and scroll
// region is a Screen-level concern (§4.1); Cursor itself holds no bounds.
type Cursor struct {
	X, Y int
}
