package interp

import "github.com/LetsZero/zero-compiler/internal/ir"

// frame is one call's execution state: which function it's running,
// where it is in that function's blocks, and its own value table.
//
// The original interpreter kept a single flat values_ map shared across
// every active call, keyed only by SSA id — since ids restart at 1 in
// every function, a recursive or re-entrant call stomps its caller's
// values the moment it allocates the same ids. Per-frame value tables
// fix that; see Interpreter.callFunction for the matching argument-
// binding fix this enables.
type frame struct {
	fn       *ir.Function
	blockIdx int
	instrIdx int
	values   map[uint32]Value
}

func newFrame(fn *ir.Function) *frame {
	return &frame{fn: fn, values: make(map[uint32]Value)}
}

func (f *frame) get(v ir.Value) Value {
	if !v.Valid() {
		return Void
	}
	if val, ok := f.values[v.ID]; ok {
		return val
	}
	return Void
}

func (f *frame) set(v ir.Value, val Value) {
	if !v.Valid() {
		return
	}
	f.values[v.ID] = val
}
