package vt102

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockHandler records every call it receives, mirroring the teacher's
// MockPerformer pattern for asserting on dispatch without a real Screen.
type mockHandler struct {
	NoopHandler

	moves       []struct{ dx, dy int }
	absMoves    []struct{ x, y int }
	colMoves    []int
	reverseIdx  int
	displayed   []byte
	backspaces  int
	tabs        int
	linefeeds   int
	crs         int
	insertLines []int
	deleteLines []int
	deleteChars []int
	margins     []struct{ top, bottom int }
	sgr         [][]int
	resets      int
	erase       []string
}

func newMockHandler() *mockHandler { return &mockHandler{} }

func (m *mockHandler) MoveRelative(dx, dy int) {
	m.moves = append(m.moves, struct{ dx, dy int }{dx, dy})
}
func (m *mockHandler) MoveAbsolute(x, y int) {
	m.absMoves = append(m.absMoves, struct{ x, y int }{x, y})
}
func (m *mockHandler) MoveColumnAbsolute(x int) { m.colMoves = append(m.colMoves, x) }
func (m *mockHandler) ReverseIndex()            { m.reverseIdx++ }
func (m *mockHandler) EraseLine()               { m.erase = append(m.erase, "line") }
func (m *mockHandler) EraseLineToCursor()       { m.erase = append(m.erase, "line-to-cursor") }
func (m *mockHandler) EraseLineFromCursor()     { m.erase = append(m.erase, "line-from-cursor") }
func (m *mockHandler) EraseDisplay()            { m.erase = append(m.erase, "display") }
func (m *mockHandler) EraseDisplayToCursor()    { m.erase = append(m.erase, "display-to-cursor") }
func (m *mockHandler) EraseDisplayFromCursor()  { m.erase = append(m.erase, "display-from-cursor") }
func (m *mockHandler) DisplayChar(ch byte)      { m.displayed = append(m.displayed, ch) }
func (m *mockHandler) Backspace()               { m.backspaces++ }
func (m *mockHandler) HorizontalTab()           { m.tabs++ }
func (m *mockHandler) Linefeed()                { m.linefeeds++ }
func (m *mockHandler) CarriageReturn()          { m.crs++ }
func (m *mockHandler) InsertLines(n int)        { m.insertLines = append(m.insertLines, n) }
func (m *mockHandler) DeleteLines(n int)        { m.deleteLines = append(m.deleteLines, n) }
func (m *mockHandler) DeleteCharacters(n int)   { m.deleteChars = append(m.deleteChars, n) }
func (m *mockHandler) SetMargins(top, bottom int) {
	m.margins = append(m.margins, struct{ top, bottom int }{top, bottom})
}
func (m *mockHandler) SelectGraphicRendition(params []int) {
	cp := make([]int, len(params))
	copy(cp, params)
	m.sgr = append(m.sgr, cp)
}
func (m *mockHandler) FullReset() { m.resets++ }

func TestNoopHandlerSatisfiesInterface(t *testing.T) {
	var _ Handler = NoopHandler{}
	h := NoopHandler{}

	// All of these must be safe no-ops.
	h.MoveRelative(1, 1)
	h.MoveAbsolute(0, 0)
	h.MoveColumnAbsolute(0)
	h.ReverseIndex()
	h.EraseLine()
	h.EraseLineToCursor()
	h.EraseLineFromCursor()
	h.EraseDisplay()
	h.EraseDisplayToCursor()
	h.EraseDisplayFromCursor()
	h.DisplayChar('x')
	h.Backspace()
	h.HorizontalTab()
	h.Linefeed()
	h.CarriageReturn()
	h.InsertLines(1)
	h.DeleteLines(1)
	h.DeleteCharacters(1)
	h.SetMargins(0, 10)
	h.SelectGraphicRendition([]int{0})
	h.FullReset()

	assert.True(t, true)
}

func TestNoopHostWriterDiscardsReplies(t *testing.T) {
	var _ HostWriter = NoopHostWriter{}
	NoopHostWriter{}.WriteToHost([]byte{0x1B, '[', 'c'})
}

func TestMockHandlerSatisfiesInterface(t *testing.T) {
	var _ Handler = newMockHandler()
}
