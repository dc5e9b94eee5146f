package vt102

import (
	"fmt"
	"strings"
)

// MaxParams is the maximum number of CSI parameters the parser accumulates.
// Excess parameters are dropped; the sequence still dispatches with the
// first MaxParams values (§7, "CSI parameter overflow").
const MaxParams = 16

// Params holds the non-negative integer parameters accumulated during a
// CSI sequence.
type Params struct {
	values [MaxParams]int
	len    int
}

// NewParams creates an empty Params.
func NewParams() *Params {
	return &Params{}
}

// Len returns the number of parameters currently held.
func (p *Params) Len() int {
	return p.len
}

// IsEmpty reports whether no parameters have been accumulated.
func (p *Params) IsEmpty() bool {
	return p.len == 0
}

// IsFull reports whether the parameter buffer has reached MaxParams.
func (p *Params) IsFull() bool {
	return p.len >= MaxParams
}

// Clear removes all accumulated parameters.
func (p *Params) Clear() {
	p.len = 0
}

// Push appends a parameter value. Calls past MaxParams are dropped silently.
func (p *Params) Push(value int) {
	if p.IsFull() {
		return
	}
	p.values[p.len] = value
	p.len++
}

// Get returns the parameter at index i, or (0, false) if absent.
func (p *Params) Get(i int) (int, bool) {
	if i < 0 || i >= p.len {
		return 0, false
	}
	return p.values[i], true
}

// GetOr returns the parameter at index i, or def if absent or explicitly 0
// (the common "treat 0 as default" rule for CUU/CUD/CUF/... parameters).
func (p *Params) GetOr(i, def int) int {
	v, ok := p.Get(i)
	if !ok || v == 0 {
		return def
	}
	return v
}

// Slice returns a copy of the accumulated parameters as a plain slice, for
// callers (e.g. SelectGraphicRendition) that want to range over all of them.
func (p *Params) Slice() []int {
	out := make([]int, p.len)
	copy(out, p.values[:p.len])
	return out
}

// String renders the parameters for debugging/logging.
func (p *Params) String() string {
	if p.len == 0 {
		return "Params{}"
	}
	parts := make([]string, p.len)
	for i := 0; i < p.len; i++ {
		parts[i] = fmt.Sprintf("%d", p.values[i])
	}
	return fmt.Sprintf("Params{%s}", strings.Join(parts, ";"))
}
