package terminal

import (
	"github.com/deskvt/vt102"
)

// Core wires a vt102.Parser to a Screen and an optional HostWriter,
// mirroring the teacher's package-level DefaultTerminal/ParseBytes
// convenience but as a reusable value instead of globals.
type Core struct {
	parser *vt102.Parser
	screen *Screen
	writer vt102.HostWriter
}

// replyWriter adapts a func([]byte) into a vt102.HostWriter.
type replyWriter func([]byte)

func (f replyWriter) WriteToHost(p []byte) { f(p) }

// NewCore creates a Core with a width x height Screen. onReply, if non-nil,
// is invoked with any bytes the parser wants sent back to the host (DA
// replies); pass nil to discard them.
func NewCore(width, height int, onReply func([]byte)) *Core {
	screen := NewScreen(width, height)

	var hw vt102.HostWriter = vt102.NoopHostWriter{}
	if onReply != nil {
		hw = replyWriter(onReply)
	}

	return &Core{
		parser: vt102.NewParser(screen, hw),
		screen: screen,
		writer: hw,
	}
}

// SetDiagnostics installs a sink for the screen's unrecognized-SGR-
// parameter diagnostic, the only diagnostic this core ever emits (the
// parser never logs on its own initiative; see §7).
func (c *Core) SetDiagnostics(l vt102.Logger) {
	c.screen.SetDiagnostics(l)
}

// Feed advances the parser by one byte.
func (c *Core) Feed(b byte) { c.parser.Feed(b) }

// Advance feeds a run of bytes through the parser, in order.
func (c *Core) Advance(bytes []byte) { c.parser.Advance(bytes) }

// Resize reallocates the underlying screen; see Screen.Resize.
func (c *Core) Resize(width, height int) error {
	return c.screen.Resize(width, height)
}

// Screen exposes the underlying backend for rendering.
func (c *Core) Screen() *Screen { return c.screen }

// Destroy releases the underlying grid buffers. The Core must not be fed
// or rendered from again afterward.
func (c *Core) Destroy() {
	c.screen.Destroy()
}

// State returns the parser's current state, mostly useful for tests and
// diagnostics.
func (c *Core) State() vt102.State { return c.parser.State() }
