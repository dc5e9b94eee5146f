package vt102

// Handler is the capability set the parser dispatches into: one method per
// screen-backend operation from §4.1. A single implementation (terminal.
// Screen) satisfies the whole interface; there is no per-operation function
// table to override, per the design note in §9.
type Handler interface {
	// MoveRelative adds (dx, dy) to the cursor, then clamps to the grid and
	// scroll region.
	MoveRelative(dx, dy int)

	// MoveAbsolute assigns the cursor to (x, y), then clamps.
	MoveAbsolute(x, y int)

	// MoveColumnAbsolute assigns the cursor column, keeping the row.
	MoveColumnAbsolute(x int)

	// ReverseIndex moves the cursor up one line, scrolling the region down
	// if the cursor was already on the top margin.
	ReverseIndex()

	// EraseLine clears the full current row.
	EraseLine()

	// EraseLineToCursor clears columns 0..=cursorX of the current row.
	EraseLineToCursor()

	// EraseLineFromCursor clears columns cursorX..=width-1 of the current row.
	EraseLineFromCursor()

	// EraseDisplay clears the entire grid.
	EraseDisplay()

	// EraseDisplayToCursor clears all rows above the cursor and the current
	// row up to and including the cursor column.
	EraseDisplayToCursor()

	// EraseDisplayFromCursor clears the current row from the cursor column
	// onward and all rows below it.
	EraseDisplayFromCursor()

	// DisplayChar writes ch at the cursor with the current colors, advances
	// the cursor, and wraps/scrolls as needed.
	DisplayChar(ch byte)

	// Backspace moves the cursor back one column.
	Backspace()

	// HorizontalTab advances the cursor to the next column that is a
	// multiple of 8, writing a space into each column it crosses; it stops
	// at the last column (width-1).
	HorizontalTab()

	// Linefeed moves the cursor down one line, scrolling if on the bottom
	// margin.
	Linefeed()

	// CarriageReturn moves the cursor to column 0.
	CarriageReturn()

	// InsertLines inserts n blank lines at the cursor row within the scroll
	// region.
	InsertLines(n int)

	// DeleteLines deletes n lines at the cursor row within the scroll
	// region.
	DeleteLines(n int)

	// DeleteCharacters deletes n characters starting at the cursor column.
	DeleteCharacters(n int)

	// SetMargins sets the scroll region (zero-based, inclusive).
	SetMargins(top, bottom int)

	// SelectGraphicRendition applies SGR parameters in order.
	SelectGraphicRendition(params []int)

	// FullReset clears the display, homes the cursor, and restores default
	// margins and colors (ESC c / RIS).
	FullReset()
}

// HostWriter is invoked by the parser to send reply bytes back to the host
// program (currently only the DA device-attributes reply). The core never
// performs I/O itself; this is the caller-supplied sink for the one case
// where it must write something.
type HostWriter interface {
	WriteToHost(p []byte)
}

// Logger is an optional diagnostic sink, satisfied directly by *log.Logger
// from the standard library. A nil Logger means silence.
type Logger interface {
	Printf(format string, v ...any)
}

// NoopHandler implements Handler with no-ops. Embed it in test doubles that
// only care about a subset of the interface.
type NoopHandler struct{}

func (NoopHandler) MoveRelative(dx, dy int)             {}
func (NoopHandler) MoveAbsolute(x, y int)               {}
func (NoopHandler) MoveColumnAbsolute(x int)            {}
func (NoopHandler) ReverseIndex()                       {}
func (NoopHandler) EraseLine()                          {}
func (NoopHandler) EraseLineToCursor()                  {}
func (NoopHandler) EraseLineFromCursor()                {}
func (NoopHandler) EraseDisplay()                       {}
func (NoopHandler) EraseDisplayToCursor()               {}
func (NoopHandler) EraseDisplayFromCursor()             {}
func (NoopHandler) DisplayChar(ch byte)                 {}
func (NoopHandler) Backspace()                          {}
func (NoopHandler) HorizontalTab()                      {}
func (NoopHandler) Linefeed()                           {}
func (NoopHandler) CarriageReturn()                     {}
func (NoopHandler) InsertLines(n int)                   {}
func (NoopHandler) DeleteLines(n int)                   {}
func (NoopHandler) DeleteCharacters(n int)              {}
func (NoopHandler) SetMargins(top, bottom int)          {}
func (NoopHandler) SelectGraphicRendition(params []int) {}
func (NoopHandler) FullReset()                          {}

var _ Handler = NoopHandler{}

// NoopHostWriter discards DA replies.
type NoopHostWriter struct{}

func (NoopHostWriter) WriteToHost(p []byte) {}

var _ HostWriter = NoopHostWriter{}
