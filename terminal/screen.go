package terminal

import (
	"errors"
	"fmt"

	"github.com/deskvt/vt102"
)

// ErrDimensionsTooLarge is returned by Resize when width*height would
// overflow an int, before any buffer is touched (§7: "Allocation failure
// in resize surfaced to the caller as a recoverable error; the core
// retains its previous state intact").
var ErrDimensionsTooLarge = errors.New("terminal: requested dimensions too large")

// minWidth and minHeight are the floor resize() clamps requested
// dimensions to (§4.1 step 1).
const (
	minWidth  = 10
	minHeight = 2
)

// Screen is the VT102 screen backend: the character/attribute grid,
// cursor, scroll margins, and dirty flags. It implements vt102.Handler.
type Screen struct {
	width, height int

	chars []byte
	attrs []byte

	dirtyLine   []bool
	screenDirty bool

	cursor Cursor

	marginTop, marginBottom int

	curFg, curBg int

	diag vt102.Logger
}

// NewScreen creates a Screen of the given dimensions with default margins,
// default colors (fg white, bg black), and the cursor homed at (0, 0).
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.allocate(width, height)
	s.curFg = DefaultFg
	s.curBg = DefaultBg
	return s
}

// allocate (re)allocates the grid buffers at the given size, filled blank,
// resets margins to (0, height-1), and marks everything dirty. Caller is
// responsible for validating w/h first.
func (s *Screen) allocate(w, h int) {
	s.width, s.height = w, h
	n := w * h
	s.chars = make([]byte, n)
	s.attrs = make([]byte, n)
	for i := range s.chars {
		s.chars[i] = blankChar
	}
	s.dirtyLine = make([]bool, h)
	s.markAllDirty()
	s.marginTop, s.marginBottom = 0, h-1
}

// SetDiagnostics installs an optional sink for unrecognized SGR
// parameters. A nil logger silences them.
func (s *Screen) SetDiagnostics(l vt102.Logger) {
	s.diag = l
}

// Destroy releases the grid buffers. The Screen must not be used again
// afterward.
func (s *Screen) Destroy() {
	s.chars = nil
	s.attrs = nil
	s.dirtyLine = nil
	s.width, s.height = 0, 0
}

// --- render interface (§6) ---

// Width returns the current grid width.
func (s *Screen) Width() int { return s.width }

// Height returns the current grid height.
func (s *Screen) Height() int { return s.height }

// Chars returns the read-only character buffer (row-major, y*width+x).
func (s *Screen) Chars() []byte { return s.chars }

// Attrs returns the read-only attribute buffer (row-major, y*width+x).
// fg = byte & 0x07, bg = (byte >> 4) & 0x07.
func (s *Screen) Attrs() []byte { return s.attrs }

// CursorX returns the cursor's zero-based column.
func (s *Screen) CursorX() int { return s.cursor.X }

// CursorY returns the cursor's zero-based row.
func (s *Screen) CursorY() int { return s.cursor.Y }

// DirtyLine reports whether row r has changed since the last ClearDirty.
func (s *Screen) DirtyLine(r int) bool {
	if r < 0 || r >= len(s.dirtyLine) {
		return false
	}
	return s.dirtyLine[r]
}

// ScreenDirty reports whether any operation has mutated state since the
// last ClearDirty.
func (s *Screen) ScreenDirty() bool { return s.screenDirty }

// ClearDirty is called by the renderer after painting: it resets all dirty
// flags. The core never clears these itself.
func (s *Screen) ClearDirty() {
	for i := range s.dirtyLine {
		s.dirtyLine[i] = false
	}
	s.screenDirty = false
}

// AttrRune decodes the attribute byte at (x, y) into (fg, bg) color
// indices, sparing callers from unpacking the nibble by hand.
func (s *Screen) AttrRune(x, y int) (fg, bg int) {
	return splitAttr(s.attrs[s.index(x, y)])
}

// Snapshot returns the visible grid as one string per row, with trailing
// spaces trimmed from each line.
func (s *Screen) Snapshot() []string {
	lines := make([]string, s.height)
	for y := 0; y < s.height; y++ {
		end := s.width
		for end > 0 && s.chars[s.index(end-1, y)] == blankChar {
			end--
		}
		lines[y] = string(s.chars[s.index(0, y):s.index(0, y)+end])
	}
	return lines
}

func (s *Screen) index(x, y int) int {
	return y*s.width + x
}

func (s *Screen) markDirty(row int) {
	if row >= 0 && row < len(s.dirtyLine) {
		s.dirtyLine[row] = true
	}
	s.screenDirty = true
}

func (s *Screen) markAllDirty() {
	for i := range s.dirtyLine {
		s.dirtyLine[i] = true
	}
	s.screenDirty = true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *Screen) clampCursor() {
	s.cursor.X = clamp(s.cursor.X, 0, s.width-1)
	s.cursor.Y = clamp(s.cursor.Y, s.marginTop, s.marginBottom)
}

// --- cursor movement ---

func (s *Screen) MoveRelative(dx, dy int) {
	s.cursor.X += dx
	s.cursor.Y += dy
	s.clampCursor()
	s.screenDirty = true
}

func (s *Screen) MoveAbsolute(x, y int) {
	s.cursor.X = x
	s.cursor.Y = y
	s.clampCursor()
	s.screenDirty = true
}

func (s *Screen) MoveColumnAbsolute(x int) {
	s.MoveAbsolute(x, s.cursor.Y)
}

func (s *Screen) ReverseIndex() {
	if s.cursor.Y == s.marginTop {
		s.scrollRegionDown()
	} else {
		s.cursor.Y--
		s.screenDirty = true
	}
}

// --- erasure ---

func (s *Screen) blankCell(x, y int) {
	i := s.index(x, y)
	s.chars[i] = blankChar
	s.attrs[i] = 0
}

func (s *Screen) EraseLine() {
	for x := 0; x < s.width; x++ {
		s.blankCell(x, s.cursor.Y)
	}
	s.markDirty(s.cursor.Y)
}

func (s *Screen) EraseLineToCursor() {
	for x := 0; x <= s.cursor.X; x++ {
		s.blankCell(x, s.cursor.Y)
	}
	s.markDirty(s.cursor.Y)
}

func (s *Screen) EraseLineFromCursor() {
	for x := s.cursor.X; x < s.width; x++ {
		s.blankCell(x, s.cursor.Y)
	}
	s.markDirty(s.cursor.Y)
}

func (s *Screen) EraseDisplay() {
	for i := range s.chars {
		s.chars[i] = blankChar
		s.attrs[i] = 0
	}
	s.markAllDirty()
}

func (s *Screen) EraseDisplayToCursor() {
	for y := 0; y < s.cursor.Y; y++ {
		for x := 0; x < s.width; x++ {
			s.blankCell(x, y)
		}
		s.markDirty(y)
	}
	s.EraseLineToCursor()
}

func (s *Screen) EraseDisplayFromCursor() {
	s.EraseLineFromCursor()
	for y := s.cursor.Y + 1; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.blankCell(x, y)
		}
		s.markDirty(y)
	}
}

// --- scrolling (internal; region-bounded) ---

// scrollRegionUp shifts rows marginTop+1..=marginBottom up into
// marginTop..=marginBottom-1 and blanks marginBottom.
func (s *Screen) scrollRegionUp() {
	for y := s.marginTop; y < s.marginBottom; y++ {
		s.copyRow(y+1, y)
	}
	s.blankRow(s.marginBottom)
	for y := s.marginTop; y <= s.marginBottom; y++ {
		s.markDirty(y)
	}
}

// scrollRegionDown shifts rows marginTop..=marginBottom-1 down into
// marginTop+1..=marginBottom and blanks marginTop.
func (s *Screen) scrollRegionDown() {
	for y := s.marginBottom; y > s.marginTop; y-- {
		s.copyRow(y-1, y)
	}
	s.blankRow(s.marginTop)
	for y := s.marginTop; y <= s.marginBottom; y++ {
		s.markDirty(y)
	}
}

func (s *Screen) copyRow(src, dst int) {
	copy(s.chars[s.index(0, dst):s.index(0, dst)+s.width], s.chars[s.index(0, src):s.index(0, src)+s.width])
	copy(s.attrs[s.index(0, dst):s.index(0, dst)+s.width], s.attrs[s.index(0, src):s.index(0, src)+s.width])
}

func (s *Screen) blankRow(y int) {
	for x := 0; x < s.width; x++ {
		s.blankCell(x, y)
	}
}

// --- character output ---

func (s *Screen) DisplayChar(ch byte) {
	i := s.index(s.cursor.X, s.cursor.Y)
	s.chars[i] = ch
	s.attrs[i] = makeAttr(s.curFg, s.curBg)
	s.markDirty(s.cursor.Y)

	s.cursor.X++
	if s.cursor.X == s.width {
		s.cursor.X = 0
		s.cursor.Y++
		if s.cursor.Y == s.height {
			// Went off the bottom: fall back to the last row and let
			// Linefeed's scroll-or-advance logic take over.
			s.cursor.Y = s.height - 1
			s.Linefeed()
		}
	}
}

// --- C0 controls ---

func (s *Screen) Backspace() {
	s.MoveRelative(-1, 0)
}

func (s *Screen) HorizontalTab() {
	newX := (s.cursor.X + 8) &^ 7
	for s.cursor.X < newX && s.cursor.X < s.width-1 {
		s.DisplayChar(' ')
	}
}

func (s *Screen) Linefeed() {
	if s.cursor.Y == s.marginBottom {
		s.scrollRegionUp()
	} else {
		s.cursor.Y++
		s.screenDirty = true
	}
}

func (s *Screen) CarriageReturn() {
	s.cursor.X = 0
	s.screenDirty = true
}

// --- insert/delete ---

func (s *Screen) InsertLines(n int) {
	if s.cursor.Y < s.marginTop || s.cursor.Y > s.marginBottom {
		return
	}
	n = clamp(n, 0, s.marginBottom-s.cursor.Y+1)
	if n == 0 {
		return
	}
	for y := s.marginBottom; y >= s.cursor.Y+n; y-- {
		s.copyRow(y-n, y)
	}
	for y := s.cursor.Y; y < s.cursor.Y+n; y++ {
		s.blankRow(y)
	}
	for y := s.cursor.Y; y <= s.marginBottom; y++ {
		s.markDirty(y)
	}
}

func (s *Screen) DeleteLines(n int) {
	if s.cursor.Y < s.marginTop || s.cursor.Y > s.marginBottom {
		return
	}
	n = clamp(n, 0, s.marginBottom-s.cursor.Y+1)
	if n == 0 {
		return
	}
	for y := s.cursor.Y; y <= s.marginBottom-n; y++ {
		s.copyRow(y+n, y)
	}
	for y := s.marginBottom - n + 1; y <= s.marginBottom; y++ {
		s.blankRow(y)
	}
	for y := s.cursor.Y; y <= s.marginBottom; y++ {
		s.markDirty(y)
	}
}

func (s *Screen) DeleteCharacters(n int) {
	if s.cursor.Y < s.marginTop || s.cursor.Y > s.marginBottom {
		return
	}
	n = clamp(n, 0, s.width-s.cursor.X)
	if n == 0 {
		return
	}
	row := s.cursor.Y
	for x := s.cursor.X; x < s.width-n; x++ {
		si, di := s.index(x+n, row), s.index(x, row)
		s.chars[di] = s.chars[si]
		s.attrs[di] = s.attrs[si]
	}
	for x := s.width - n; x < s.width; x++ {
		s.blankCell(x, row)
	}
	s.markDirty(row)
}

// --- margins ---

func (s *Screen) SetMargins(top, bottom int) {
	if bottom < 0 {
		bottom = s.height - 1 // parser's "p2 defaulted" sentinel
	}
	top = clamp(top, 0, s.height-2)
	if bottom <= top {
		bottom = top + 1
	}
	bottom = clamp(bottom, top+1, s.height-1)
	s.marginTop, s.marginBottom = top, bottom
	s.screenDirty = true
	// Cursor is deliberately not reset here; see §9.
}

// --- SGR ---

func (s *Screen) SelectGraphicRendition(params []int) {
	for _, p := range params {
		switch {
		case p == 0:
			s.curFg, s.curBg = DefaultFg, DefaultBg
		case p == 7:
			s.curFg, s.curBg = s.curBg, s.curFg // one-shot swap, not sticky (§9)
		case p >= 30 && p <= 37:
			s.curFg = p - 30
		case p == 39:
			s.curFg = DefaultFg
		case p >= 40 && p <= 47:
			s.curBg = p - 40
		case p == 49:
			s.curBg = DefaultBg
		default:
			if s.diag != nil {
				s.diag.Printf("vt102: unrecognized SGR parameter %d", p)
			}
		}
	}
	s.screenDirty = true
}

// --- reset ---

func (s *Screen) FullReset() {
	s.EraseDisplay()
	s.cursor = Cursor{}
	s.marginTop, s.marginBottom = 0, s.height-1
	s.curFg, s.curBg = DefaultFg, DefaultBg
}

// --- resize ---

// Resize reallocates the grid per §4.1: clamps to the (minWidth, minHeight)
// floor, copies the top-left min(w,w')xmin(h,h') region of the old grid
// into the new one, marks everything dirty, clamps the cursor, and resets
// margins to (0, h'-1). It returns ErrDimensionsTooLarge (and leaves the
// screen untouched) if w*h would overflow an int.
func (s *Screen) Resize(w, h int) error {
	w = max(w, minWidth)
	h = max(h, minHeight)

	if w != 0 && h > (1<<62)/w {
		return fmt.Errorf("resize %dx%d: %w", w, h, ErrDimensionsTooLarge)
	}

	oldChars, oldAttrs := s.chars, s.attrs
	oldW, oldH := s.width, s.height

	s.allocate(w, h)

	copyW := min(oldW, w)
	copyH := min(oldH, h)
	for y := 0; y < copyH; y++ {
		srcStart := y * oldW
		dstStart := y * w
		copy(s.chars[dstStart:dstStart+copyW], oldChars[srcStart:srcStart+copyW])
		copy(s.attrs[dstStart:dstStart+copyW], oldAttrs[srcStart:srcStart+copyW])
	}

	s.cursor.X = min(s.cursor.X, w-1)
	s.cursor.Y = min(s.cursor.Y, h-1)

	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

var _ vt102.Handler = (*Screen)(nil)
