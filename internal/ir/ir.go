// Package ir defines Zero's intermediate representation: an SSA-style
// value/instruction/block/function/module hierarchy with no phi nodes —
// a variable's current value is whatever SSA id the lowering pass last
// bound it to, so a name that is rebound inside a branch keeps the
// binding lowered last after the join, whether or not that branch ran
// (an if's else body is lowered before its then body). Grounded on the
// original C++ IR (ir.hpp/ir.cpp): this simplification is preserved
// deliberately, not an oversight.
package ir

import (
	"fmt"
	"strings"

	"github.com/LetsZero/zero-compiler/internal/types"
)

// Value is an SSA value, unique within its owning Function. The zero
// Value is invalid; ids start at 1.
type Value struct {
	ID   uint32
	Type types.Type
}

// Valid reports whether v names a real SSA value.
func (v Value) Valid() bool { return v.ID != 0 }

func (v Value) String() string {
	if !v.Valid() {
		return "void"
	}
	return fmt.Sprintf("%%%d", v.ID)
}

// Opcode names one IR instruction kind.
type Opcode int

const (
	Nop Opcode = iota
	ConstInt
	ConstFloat
	ConstStr
	Add
	Sub
	Mul
	Div
	Neg
	CmpEq
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
	Call
	Ret
	Br
	CondBr
	Alloca
	Load
	Store
	TensorAlloc
	TensorAdd
	TensorSub
	TensorMul
	TensorMatmul
	TensorRelu
)

func (op Opcode) String() string {
	switch op {
	case Nop:
		return "nop"
	case ConstInt:
		return "const.i64"
	case ConstFloat:
		return "const.f32"
	case ConstStr:
		return "const.str"
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	case Neg:
		return "neg"
	case CmpEq:
		return "eq"
	case CmpNe:
		return "ne"
	case CmpLt:
		return "lt"
	case CmpLe:
		return "le"
	case CmpGt:
		return "gt"
	case CmpGe:
		return "ge"
	case Call:
		return "call"
	case Ret:
		return "ret"
	case Br:
		return "br"
	case CondBr:
		return "cond_br"
	case Alloca:
		return "alloca"
	case Load:
		return "load"
	case Store:
		return "store"
	case TensorAlloc:
		return "tensor.alloc"
	case TensorAdd:
		return "tensor.add"
	case TensorSub:
		return "tensor.sub"
	case TensorMul:
		return "tensor.mul"
	case TensorMatmul:
		return "tensor.matmul"
	case TensorRelu:
		return "tensor.relu"
	default:
		return "unknown"
	}
}

// Instruction is one IR operation. Not every field is meaningful for
// every Opcode: ImmInt/ImmFloat/ImmStr are read by the matching const
// opcodes, Callee by Call, and TargetBlock/ElseBlock by Br and CondBr.
type Instruction struct {
	Op       Opcode
	Result   Value
	Operands []Value

	ImmInt   int64
	ImmFloat float64
	ImmStr   string

	Callee string

	TargetBlock uint32 // Br target; CondBr "then" target
	ElseBlock   uint32 // CondBr "else" target
}

// BasicBlock is a straight-line sequence of instructions ending in a
// terminator (Ret, Br, or CondBr).
type BasicBlock struct {
	ID     uint32
	Label  string
	Instrs []Instruction
}

// Add appends instr to the block.
func (b *BasicBlock) Add(instr Instruction) {
	b.Instrs = append(b.Instrs, instr)
}

// Terminator returns the block's last instruction, or nil if the block
// is empty or its last instruction is not one of Ret/Br/CondBr.
func (b *BasicBlock) Terminator() *Instruction {
	if len(b.Instrs) == 0 {
		return nil
	}
	last := &b.Instrs[len(b.Instrs)-1]
	switch last.Op {
	case Ret, Br, CondBr:
		return last
	default:
		return nil
	}
}

// Function is one IR function: its signature and its basic blocks.
type Function struct {
	Name       string
	ParamTypes []types.Type
	ReturnType types.Type
	Blocks     []*BasicBlock

	nextValueID uint32
	nextBlockID uint32
}

// NewFunction returns an empty function ready to receive blocks and
// instructions via a Builder.
func NewFunction(name string, paramTypes []types.Type, ret types.Type) *Function {
	return &Function{Name: name, ParamTypes: paramTypes, ReturnType: ret, nextValueID: 1}
}

// NewValue allocates a fresh SSA id of the given type.
func (f *Function) NewValue(t types.Type) Value {
	v := Value{ID: f.nextValueID, Type: t}
	f.nextValueID++
	return v
}

// NewBlock appends a new basic block, defaulting its label to "bbN" when
// label is empty.
func (f *Function) NewBlock(label string) *BasicBlock {
	bb := &BasicBlock{ID: f.nextBlockID}
	if label == "" {
		bb.Label = fmt.Sprintf("bb%d", bb.ID)
	} else {
		bb.Label = label
	}
	f.nextBlockID++
	f.Blocks = append(f.Blocks, bb)
	return bb
}

// Entry returns the function's first block, creating one named "entry"
// if none exists yet.
func (f *Function) Entry() *BasicBlock {
	if len(f.Blocks) == 0 {
		return f.NewBlock("entry")
	}
	return f.Blocks[0]
}

// Block returns the block with the given id, or nil if none matches.
func (f *Function) Block(id uint32) *BasicBlock {
	for _, bb := range f.Blocks {
		if bb.ID == id {
			return bb
		}
	}
	return nil
}

// Module is a compiled program: an ordered set of functions.
type Module struct {
	Functions []*Function
}

// AddFunction creates and appends a new function.
func (m *Module) AddFunction(name string, paramTypes []types.Type, ret types.Type) *Function {
	fn := NewFunction(name, paramTypes, ret)
	m.Functions = append(m.Functions, fn)
	return fn
}

// GetFunction returns the function named name, or nil if none matches.
func (m *Module) GetFunction(name string) *Function {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// ---------------------------------------------------------------------
// Textual dump
// ---------------------------------------------------------------------

func printValue(v Value) string { return v.String() }

func printInstruction(instr Instruction) string {
	var b strings.Builder
	if instr.Result.Valid() {
		b.WriteString(printValue(instr.Result))
		b.WriteString(" = ")
	}
	b.WriteString(instr.Op.String())

	switch instr.Op {
	case ConstInt:
		fmt.Fprintf(&b, " %d", instr.ImmInt)
	case ConstFloat:
		fmt.Fprintf(&b, " %v", instr.ImmFloat)
	case ConstStr:
		fmt.Fprintf(&b, " %q", instr.ImmStr)
	case Call:
		fmt.Fprintf(&b, " @%s(", instr.Callee)
		for i, op := range instr.Operands {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(printValue(op))
		}
		b.WriteString(")")
	case Br:
		fmt.Fprintf(&b, " bb%d", instr.TargetBlock)
	case CondBr:
		fmt.Fprintf(&b, " %s, bb%d, bb%d", printValue(instr.Operands[0]), instr.TargetBlock, instr.ElseBlock)
	default:
		for i, op := range instr.Operands {
			b.WriteString(" ")
			b.WriteString(printValue(op))
			if i+1 < len(instr.Operands) {
				b.WriteString(",")
			}
		}
	}
	return b.String()
}

func printBlock(bb *BasicBlock) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", bb.Label)
	for _, instr := range bb.Instrs {
		fmt.Fprintf(&b, "  %s\n", printInstruction(instr))
	}
	return b.String()
}

func printFunction(fn *Function) string {
	var b strings.Builder
	fmt.Fprintf(&b, "fn @%s(", fn.Name)
	for i, pt := range fn.ParamTypes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pt.String())
	}
	fmt.Fprintf(&b, ") -> %s {\n", fn.ReturnType.String())
	for _, bb := range fn.Blocks {
		b.WriteString(printBlock(bb))
	}
	b.WriteString("}\n")
	return b.String()
}

// PrintModule renders mod in the textual IR dump format `--dump-ir`
// prints: one `fn @name(...) -> type { ... }` block per function, each
// containing labeled basic blocks of `%id = op operands...` lines.
func PrintModule(mod *Module) string {
	var b strings.Builder
	for _, fn := range mod.Functions {
		b.WriteString(printFunction(fn))
		b.WriteString("\n")
	}
	return b.String()
}
