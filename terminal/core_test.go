package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoreFeedsPrintableText(t *testing.T) {
	c := NewCore(10, 5, nil)
	c.Advance([]byte("Hi"))
	assert.Equal(t, "Hi", string(c.Screen().Chars()[0:2]))
	assert.Equal(t, 2, c.Screen().CursorX())
}

func TestCoreColoredText(t *testing.T) {
	c := NewCore(10, 5, nil)
	c.Advance([]byte("A\x1b[31mB"))
	fg, _ := c.Screen().AttrRune(0, 0)
	assert.Equal(t, DefaultFg, fg)
	fg, _ = c.Screen().AttrRune(1, 0)
	assert.Equal(t, Red, fg)
}

func TestCoreCursorPositioning(t *testing.T) {
	c := NewCore(20, 10, nil)
	c.Advance([]byte("\x1b[2;5H"))
	assert.Equal(t, 4, c.Screen().CursorX())
	assert.Equal(t, 1, c.Screen().CursorY())
}

func TestCoreScrollingRegionAndLinefeed(t *testing.T) {
	c := NewCore(20, 10, nil)
	c.Advance([]byte("\x1b[5;10r")) // rows 5..10 (1-based) -> 4..9 zero-based
	c.Advance([]byte("\x1b[10;1H")) // move to row 10 (1-based) -> row 9
	before := c.Screen().CursorY()
	c.Feed('\n')
	assert.Equal(t, before, c.Screen().CursorY(), "linefeed at the bottom margin scrolls instead of moving the cursor off-region")
}

func TestCoreDeleteCharacters(t *testing.T) {
	c := NewCore(10, 2, nil)
	c.Advance([]byte("abcde"))
	c.Advance([]byte("\x1b[5G")) // column 5 (1-based) -> index 4
	c.Advance([]byte("\x1b[2P"))
	assert.Equal(t, "abcd      ", string(c.Screen().Chars()[0:10]))
}

func TestCoreDeviceAttributesReply(t *testing.T) {
	var replies [][]byte
	c := NewCore(10, 2, func(p []byte) {
		cp := make([]byte, len(p))
		copy(cp, p)
		replies = append(replies, cp)
	})
	c.Advance([]byte("\x1b[c"))
	assert.Equal(t, [][]byte{{0x1B, '[', '?', '6', 'c'}}, replies)
}

func TestCoreResize(t *testing.T) {
	c := NewCore(5, 5, nil)
	c.Advance([]byte("abc"))
	err := c.Resize(10, 10)
	assert.NoError(t, err)
	assert.Equal(t, 10, c.Screen().Width())
	assert.Equal(t, "abc", string(c.Screen().Chars()[0:3]))
}

func TestCoreDiagnostics(t *testing.T) {
	c := NewCore(5, 5, nil)
	var logged []string
	c.SetDiagnostics(loggerFunc(func(format string, v ...any) {
		logged = append(logged, format)
	}))
	c.Advance([]byte("\x1b[99m")) // unrecognized SGR parameter
	assert.Len(t, logged, 1)
}

func TestCoreDestroyReleasesBuffers(t *testing.T) {
	c := NewCore(5, 5, nil)
	c.Destroy()
	assert.Nil(t, c.Screen().Chars())
	assert.Nil(t, c.Screen().Attrs())
}

type loggerFunc func(format string, v ...any)

func (f loggerFunc) Printf(format string, v ...any) { f(format, v...) }
