package vt102

// daReply is the bit-exact Device Attributes reply: ESC [ ? 6 c.
var daReply = []byte{0x1B, 0x5B, 0x3F, 0x36, 0x63}

// Parser is the VT102 control-sequence state machine. It consumes bytes one
// at a time via Feed and dispatches to a Handler and, for device-attribute
// queries, a HostWriter. It performs no I/O and never fails.
type Parser struct {
	state      State
	params     Params
	curParam   int
	hasParam   bool
	privMarker byte

	handler    Handler
	hostWriter HostWriter
}

// NewParser creates a parser bound to handler (backend operations) and
// hostWriter (DA replies). hostWriter may be nil if the caller has no
// interest in device-attribute queries.
func NewParser(handler Handler, hostWriter HostWriter) *Parser {
	return &Parser{
		state:      StateGround,
		handler:    handler,
		hostWriter: hostWriter,
	}
}

// State returns the parser's current state.
func (p *Parser) State() State {
	return p.state
}

// Advance feeds a run of bytes through the parser, in order.
func (p *Parser) Advance(bytes []byte) {
	for _, b := range bytes {
		p.Feed(b)
	}
}

// Feed advances the parser by exactly one byte. A single call is atomic
// with respect to the handler: either no handler call occurs (still
// accumulating a CSI sequence), or one or more complete handler calls occur
// before Feed returns.
func (p *Parser) Feed(b byte) {
	switch p.state {
	case StateGround:
		p.feedGround(b)
	case StateEscape:
		p.feedEscape(b)
	case StateCSI:
		p.feedCSI(b)
	}
}

func (p *Parser) feedGround(b byte) {
	switch {
	case b == 0x1B: // ESC
		p.resetSequence()
		p.state = StateEscape
	case b == 0x08:
		p.handler.Backspace()
	case b == 0x09:
		p.handler.HorizontalTab()
	case b == 0x0A, b == 0x0B, b == 0x0C:
		p.handler.Linefeed()
	case b == 0x0D:
		p.handler.CarriageReturn()
	case b < 0x20:
		// Other C0 controls (NUL, BEL, ...) are ignored.
	default: // 0x20..0xFF: printable / 8-bit character
		p.handler.DisplayChar(b)
	}
}

func (p *Parser) feedEscape(b byte) {
	switch b {
	case '[':
		p.state = StateCSI
	case 'D':
		p.handler.Linefeed()
		p.state = StateGround
	case 'E':
		p.handler.CarriageReturn()
		p.handler.Linefeed()
		p.state = StateGround
	case 'M':
		p.handler.ReverseIndex()
		p.state = StateGround
	case 'c':
		p.handler.FullReset()
		p.state = StateGround
	default:
		// Unsupported single-character escape: silently return to ground.
		p.state = StateGround
	}
}

func (p *Parser) feedCSI(b byte) {
	switch {
	case b == '?' && p.privMarker == 0 && p.params.IsEmpty() && !p.hasParam:
		p.privMarker = '?'
	case b >= '0' && b <= '9':
		digit := int(b - '0')
		if !p.hasParam {
			p.curParam = digit
			p.hasParam = true
		} else {
			p.curParam = p.curParam*10 + digit
		}
	case b == ';':
		p.finalizeParam()
	case b >= 0x40 && b <= 0x7E: // final byte
		p.finalizeParam()
		p.dispatchCSI(b)
		p.resetSequence()
		p.state = StateGround
	default:
		// Unrecognized byte inside a CSI sequence: abort it.
		p.resetSequence()
		p.state = StateGround
	}
}

func (p *Parser) finalizeParam() {
	if p.hasParam {
		if !p.params.IsFull() {
			p.params.Push(p.curParam)
		}
	}
	p.curParam = 0
	p.hasParam = false
}

func (p *Parser) resetSequence() {
	p.params.Clear()
	p.curParam = 0
	p.hasParam = false
	p.privMarker = 0
}

func (p *Parser) dispatchCSI(final byte) {
	priv := p.privMarker
	params := p.params

	// Private-marker sequences are ignored. A private 'c' reaches its case
	// below, which sends no reply when the marker is present.
	if priv != 0 && final != 'c' {
		return
	}

	p1 := params.GetOr(0, 0)
	switch final {
	case 'A':
		p.handler.MoveRelative(0, -max(1, p1))
	case 'B':
		p.handler.MoveRelative(0, max(1, p1))
	case 'C':
		p.handler.MoveRelative(max(1, p1), 0)
	case 'D':
		p.handler.MoveRelative(-max(1, p1), 0)
	case 'G':
		p.handler.MoveColumnAbsolute(max(1, p1) - 1)
	case 'H', 'f':
		p2 := params.GetOr(1, 0)
		p.handler.MoveAbsolute(max(1, p2)-1, max(1, p1)-1)
	case 'J':
		switch p1 {
		case 1:
			p.handler.EraseDisplayToCursor()
		case 2:
			p.handler.EraseDisplay()
		default:
			p.handler.EraseDisplayFromCursor()
		}
	case 'K':
		switch p1 {
		case 1:
			p.handler.EraseLineToCursor()
		case 2:
			p.handler.EraseLine()
		default:
			p.handler.EraseLineFromCursor()
		}
	case 'L':
		p.handler.InsertLines(max(1, p1))
	case 'M':
		p.handler.DeleteLines(max(1, p1))
	case 'P':
		p.handler.DeleteCharacters(max(1, p1))
	case 'c':
		if priv == 0 && p.hostWriter != nil {
			p.hostWriter.WriteToHost(daReply)
		}
	case 'm':
		if params.IsEmpty() {
			p.handler.SelectGraphicRendition([]int{0})
		} else {
			p.handler.SelectGraphicRendition(params.Slice())
		}
	case 'r':
		top := max(1, p1) - 1
		bottom := -1 // sentinel: Screen defaults this to height-1
		// An explicit 0 is treated the same as an absent parameter, not as a
		// literal value-1: every other parameter in this table already folds
		// 0 into its default via max(1, p), and p2's own default is spelled
		// out the same way ("p2 defaulted ⇒ height-1"), so an explicit 0
		// reads as "defaulted" rather than as the literal bottom=-1 a strict
		// textual reading would otherwise produce.
		if v, ok := params.Get(1); ok && v != 0 {
			bottom = v - 1
		}
		p.handler.SetMargins(top, bottom)
	default:
		// Unknown CSI final byte: no error is surfaced (§7).
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
