package ir

import "github.com/LetsZero/zero-compiler/internal/types"

// Builder emits instructions into a Function at a movable insertion
// point, mirroring the original IRBuilder's block-cursor API.
type Builder struct {
	fn      *Function
	current *BasicBlock
}

// NewBuilder returns a Builder inserting into fn's entry block.
func NewBuilder(fn *Function) *Builder {
	return &Builder{fn: fn, current: fn.Entry()}
}

// SetInsertPoint moves the insertion cursor to bb.
func (b *Builder) SetInsertPoint(bb *BasicBlock) { b.current = bb }

// CurrentBlock returns the block instructions are currently appended to.
func (b *Builder) CurrentBlock() *BasicBlock { return b.current }

// CreateBlock allocates a new block in the function without moving the
// insertion cursor to it.
func (b *Builder) CreateBlock(label string) *BasicBlock {
	return b.fn.NewBlock(label)
}

func (b *Builder) emit(instr Instruction) {
	b.current.Add(instr)
}

// ConstInt emits a CONST_INT instruction and returns its result value.
func (b *Builder) ConstInt(v int64) Value {
	instr := Instruction{Op: ConstInt, Result: b.fn.NewValue(types.TInt), ImmInt: v}
	b.emit(instr)
	return instr.Result
}

// ConstFloat emits a CONST_FLOAT instruction and returns its result value.
func (b *Builder) ConstFloat(v float64) Value {
	instr := Instruction{Op: ConstFloat, Result: b.fn.NewValue(types.TFloat), ImmFloat: v}
	b.emit(instr)
	return instr.Result
}

// ConstStr emits a CONST_STR instruction and returns its result value.
func (b *Builder) ConstStr(v string) Value {
	instr := Instruction{Op: ConstStr, Result: b.fn.NewValue(types.TUnknown), ImmStr: v}
	b.emit(instr)
	return instr.Result
}

func (b *Builder) binaryOp(op Opcode, lhs, rhs Value) Value {
	instr := Instruction{Op: op, Result: b.fn.NewValue(types.Promote(lhs.Type, rhs.Type)), Operands: []Value{lhs, rhs}}
	b.emit(instr)
	return instr.Result
}

func (b *Builder) Add(lhs, rhs Value) Value { return b.binaryOp(Add, lhs, rhs) }
func (b *Builder) Sub(lhs, rhs Value) Value { return b.binaryOp(Sub, lhs, rhs) }
func (b *Builder) Mul(lhs, rhs Value) Value { return b.binaryOp(Mul, lhs, rhs) }
func (b *Builder) Div(lhs, rhs Value) Value { return b.binaryOp(Div, lhs, rhs) }

// Neg emits a NEG instruction over operand, preserving its type.
func (b *Builder) Neg(operand Value) Value {
	instr := Instruction{Op: Neg, Result: b.fn.NewValue(operand.Type), Operands: []Value{operand}}
	b.emit(instr)
	return instr.Result
}

func (b *Builder) cmp(op Opcode, lhs, rhs Value) Value {
	instr := Instruction{Op: op, Result: b.fn.NewValue(types.TInt), Operands: []Value{lhs, rhs}}
	b.emit(instr)
	return instr.Result
}

func (b *Builder) CmpEq(lhs, rhs Value) Value { return b.cmp(CmpEq, lhs, rhs) }
func (b *Builder) CmpNe(lhs, rhs Value) Value { return b.cmp(CmpNe, lhs, rhs) }
func (b *Builder) CmpLt(lhs, rhs Value) Value { return b.cmp(CmpLt, lhs, rhs) }
func (b *Builder) CmpLe(lhs, rhs Value) Value { return b.cmp(CmpLe, lhs, rhs) }
func (b *Builder) CmpGt(lhs, rhs Value) Value { return b.cmp(CmpGt, lhs, rhs) }
func (b *Builder) CmpGe(lhs, rhs Value) Value { return b.cmp(CmpGe, lhs, rhs) }

// Ret emits a bare void return.
func (b *Builder) Ret() {
	b.emit(Instruction{Op: Ret})
}

// RetValue emits a return carrying value.
func (b *Builder) RetValue(value Value) {
	b.emit(Instruction{Op: Ret, Operands: []Value{value}})
}

// Br emits an unconditional branch to target.
func (b *Builder) Br(target *BasicBlock) {
	b.emit(Instruction{Op: Br, TargetBlock: target.ID})
}

// CondBr emits a conditional branch: to then when cond is nonzero, to
// els otherwise.
func (b *Builder) CondBr(cond Value, then, els *BasicBlock) {
	b.emit(Instruction{Op: CondBr, Operands: []Value{cond}, TargetBlock: then.ID, ElseBlock: els.ID})
}

// TensorAlloc emits a TENSOR_ALLOC instruction and returns its result
// value, typed tensor.
func (b *Builder) TensorAlloc() Value {
	instr := Instruction{Op: TensorAlloc, Result: b.fn.NewValue(types.TTensor)}
	b.emit(instr)
	return instr.Result
}

func (b *Builder) tensorBinary(op Opcode, lhs, rhs Value) Value {
	instr := Instruction{Op: op, Result: b.fn.NewValue(types.TTensor), Operands: []Value{lhs, rhs}}
	b.emit(instr)
	return instr.Result
}

func (b *Builder) TensorAdd(lhs, rhs Value) Value    { return b.tensorBinary(TensorAdd, lhs, rhs) }
func (b *Builder) TensorSub(lhs, rhs Value) Value    { return b.tensorBinary(TensorSub, lhs, rhs) }
func (b *Builder) TensorMul(lhs, rhs Value) Value    { return b.tensorBinary(TensorMul, lhs, rhs) }
func (b *Builder) TensorMatmul(lhs, rhs Value) Value { return b.tensorBinary(TensorMatmul, lhs, rhs) }

// TensorRelu emits a TENSOR_RELU instruction over operand.
func (b *Builder) TensorRelu(operand Value) Value {
	instr := Instruction{Op: TensorRelu, Result: b.fn.NewValue(types.TTensor), Operands: []Value{operand}}
	b.emit(instr)
	return instr.Result
}

// Call emits a call to callee with args, allocating a result value
// unless retType is void.
func (b *Builder) Call(callee string, args []Value, retType types.Type) Value {
	instr := Instruction{Op: Call, Callee: callee, Operands: args}
	if retType.Kind != types.Void {
		instr.Result = b.fn.NewValue(retType)
	}
	b.emit(instr)
	return instr.Result
}
