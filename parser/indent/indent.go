// Copyright © 2025 The pycheck authors

// Package indent tracks the indentation of logical lines with a stack of
// widths and classifies each line's transition relative to the stack top.
package indent

// Event classifies one logical line's indentation against the current stack.
type Event int

const (
	// Same indicates the line matches the current block depth exactly.
	Same Event = iota
	// Indent indicates the line opened a deeper block (width pushed).
	Indent
	// Dedent indicates the line closed one or more blocks and landed on a
	// width present in the stack.
	Dedent
	// Inconsistent indicates the line dedented to a width that matches no
	// open block.
	Inconsistent
)

func (e Event) String() string {
	switch e {
	case Same:
		return "same"
	case Indent:
		return "indent"
	case Dedent:
		return "dedent"
	case Inconsistent:
		return "inconsistent"
	default:
		return "unknown"
	}
}

// Tracker maintains the stack of open block widths.  The stack is strictly
// increasing from bottom to top and always starts at [0].  A non-empty stack
// at end of input is not an error; trailing blocks close implicitly.
type Tracker struct {
	stack []int
}

// NewTracker returns a tracker with the initial stack [0].
func NewTracker() *Tracker {
	return &Tracker{stack: []int{0}}
}

// Advance consumes the leading-whitespace width of the next logical line and
// returns the resulting event.  On Inconsistent the offending width is
// pushed so subsequent lines at that width read as Same rather than
// cascading.
func (t *Tracker) Advance(width int) Event {
	top := t.stack[len(t.stack)-1]
	switch {
	case width == top:
		return Same
	case width > top:
		t.stack = append(t.stack, width)
		return Indent
	}
	for len(t.stack) > 1 && t.stack[len(t.stack)-1] > width {
		t.stack = t.stack[:len(t.stack)-1]
	}
	if t.stack[len(t.stack)-1] == width {
		return Dedent
	}
	t.stack = append(t.stack, width)
	return Inconsistent
}

// Top returns the width of the innermost open block.
func (t *Tracker) Top() int {
	return t.stack[len(t.stack)-1]
}

// Depth returns the number of open blocks, counting the implicit outermost
// block at width 0.
func (t *Tracker) Depth() int {
	return len(t.stack)
}
