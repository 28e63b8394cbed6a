package interp

import (
	"fmt"

	"github.com/LetsZero/zero-compiler/internal/ir"
	"github.com/LetsZero/zero-compiler/internal/tensorrt"
)

// ExternalFn is a host-provided function reachable from Zero source by
// name, such as print or log. It receives already-evaluated arguments
// and returns a single Value.
type ExternalFn func(args []Value) (Value, error)

// Interpreter tree-walks an ir.Module, executing one basic block at a
// time and following its terminator to decide where to go next.
type Interpreter struct {
	mod       *ir.Module
	externals map[string]ExternalFn
	tensors   tensorrt.Runtime

	contained []ContainedError
	exitCode  int
}

// New returns an Interpreter with no externals registered and no tensor
// runtime attached, so tensor opcodes fall back to the null-pointer
// placeholder contract.
func New() *Interpreter {
	return &Interpreter{externals: make(map[string]ExternalFn)}
}

// RegisterExternal binds name to fn so Zero calls to that name invoke
// fn instead of looking for a module function.
func (in *Interpreter) RegisterExternal(name string, fn ExternalFn) {
	in.externals[name] = fn
}

// RegisterTensorRuntime attaches rt as the backend tensor.* opcodes
// dispatch to. Without one, those opcodes produce a null pointer value
// rather than erroring, matching the reserved-opcode contract.
func (in *Interpreter) RegisterTensorRuntime(rt tensorrt.Runtime) {
	in.tensors = rt
}

// ContainedErrors returns every division-by-zero or unresolved-call
// condition recovered from during the most recent Execute.
func (in *Interpreter) ContainedErrors() []ContainedError { return in.contained }

// ExitCode returns the integer-valued result of the most recent Execute,
// or 0 if the entry function didn't return an int.
func (in *Interpreter) ExitCode() int { return in.exitCode }

// Execute runs entry (default "main" is the caller's choice to pass) to
// completion and returns its result. A FatalError from a panicking
// external aborts the run and is returned as err; contained conditions
// do not stop execution and are available afterward via ContainedErrors.
func (in *Interpreter) Execute(mod *ir.Module, entry string) (result Value, err error) {
	in.mod = mod
	in.contained = nil
	in.exitCode = 0

	entryFn := mod.GetFunction(entry)
	if entryFn == nil {
		return Void, fmt.Errorf("entry function not found: %s", entry)
	}

	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(FatalError); ok {
				err = fe
				return
			}
			panic(r)
		}
	}()

	result, err = in.callFunction(entryFn, nil)
	if err != nil {
		return Void, err
	}
	if result.IsInt() {
		in.exitCode = int(result.I)
	}
	return result, nil
}

// callFunction binds args positionally into a fresh frame and walks the
// function's blocks from its entry.
//
// The original interpreter left argument binding as a TODO: its
// call_function pushed a frame and started executing without ever
// writing the caller's argument values anywhere a parameter reference
// could read them, so every parameter evaluated to void. Lowering
// allocates a callee's first len(ParamTypes) SSA ids, in order, to its
// parameters before lowering any statement — so binding args[i] to
// value id i+1 here reproduces exactly what a caller meant to pass.
func (in *Interpreter) callFunction(fn *ir.Function, args []Value) (Value, error) {
	if ext, ok := in.externals[fn.Name]; ok {
		return in.callExternal(fn.Name, ext, args)
	}

	fr := newFrame(fn)
	for i, arg := range args {
		if i >= len(fn.ParamTypes) {
			break
		}
		fr.values[uint32(i+1)] = arg
	}

	if len(fn.Blocks) == 0 {
		return Void, nil
	}

	for fr.blockIdx < len(fn.Blocks) {
		bb := fn.Blocks[fr.blockIdx]
		branched := false

		for fr.instrIdx < len(bb.Instrs) {
			instr := bb.Instrs[fr.instrIdx]

			switch instr.Op {
			case ir.Ret:
				if len(instr.Operands) > 0 {
					return fr.get(instr.Operands[0]), nil
				}
				return Void, nil

			case ir.Br:
				fr.blockIdx = in.blockIndex(fn, instr.TargetBlock)
				fr.instrIdx = 0
				branched = true

			case ir.CondBr:
				cond := fr.get(instr.Operands[0])
				if cond.ToInt() != 0 {
					fr.blockIdx = in.blockIndex(fn, instr.TargetBlock)
				} else {
					fr.blockIdx = in.blockIndex(fn, instr.ElseBlock)
				}
				fr.instrIdx = 0
				branched = true

			default:
				val, err := in.execInstruction(fr, instr)
				if err != nil {
					return Void, err
				}
				fr.set(instr.Result, val)
				fr.instrIdx++
			}

			if branched {
				break
			}
		}

		if !branched {
			fr.blockIdx++
			fr.instrIdx = 0
		}
	}

	return Void, nil
}

func (in *Interpreter) blockIndex(fn *ir.Function, id uint32) int {
	for i, bb := range fn.Blocks {
		if bb.ID == id {
			return i
		}
	}
	return len(fn.Blocks)
}

func (in *Interpreter) callExternal(name string, ext ExternalFn, args []Value) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			panic(FatalError{Callee: name, Cause: r})
		}
	}()
	return ext(args)
}

func (in *Interpreter) execInstruction(fr *frame, instr ir.Instruction) (Value, error) {
	switch instr.Op {
	case ir.Nop:
		return Void, nil

	case ir.ConstInt:
		return IntValue(instr.ImmInt), nil

	case ir.ConstFloat:
		return FloatValue(instr.ImmFloat), nil

	case ir.ConstStr:
		return StrValue(instr.ImmStr), nil

	case ir.Add:
		return in.arith(fr, instr, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }), nil

	case ir.Sub:
		return in.arith(fr, instr, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b }), nil

	case ir.Mul:
		return in.arith(fr, instr, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }), nil

	case ir.Div:
		return in.div(fr, instr)

	case ir.Neg:
		operand := fr.get(instr.Operands[0])
		if operand.IsFloat() {
			return FloatValue(-operand.F), nil
		}
		return IntValue(-operand.ToInt()), nil

	case ir.CmpEq:
		return in.cmp(fr, instr, func(a, b int64) bool { return a == b }), nil
	case ir.CmpNe:
		return in.cmp(fr, instr, func(a, b int64) bool { return a != b }), nil
	case ir.CmpLt:
		return in.cmp(fr, instr, func(a, b int64) bool { return a < b }), nil
	case ir.CmpLe:
		return in.cmp(fr, instr, func(a, b int64) bool { return a <= b }), nil
	case ir.CmpGt:
		return in.cmp(fr, instr, func(a, b int64) bool { return a > b }), nil
	case ir.CmpGe:
		return in.cmp(fr, instr, func(a, b int64) bool { return a >= b }), nil

	case ir.Call:
		return in.call(fr, instr)

	case ir.Alloca:
		return IntValue(0), nil

	case ir.Load:
		return fr.get(instr.Operands[0]), nil

	case ir.Store:
		return Void, nil

	case ir.TensorAlloc:
		if in.tensors == nil {
			return PtrValue(nil), nil
		}
		t, err := in.tensors.Alloc(nil)
		if err != nil {
			in.contained = append(in.contained, ContainedError{Message: err.Error()})
			return PtrValue(nil), nil
		}
		return PtrValue(t), nil

	case ir.TensorAdd:
		return in.tensorBinary(fr, instr, func(rt tensorrt.Runtime, a, b *tensorrt.Tensor) (*tensorrt.Tensor, error) { return rt.Add(a, b) })
	case ir.TensorSub:
		return in.tensorBinary(fr, instr, func(rt tensorrt.Runtime, a, b *tensorrt.Tensor) (*tensorrt.Tensor, error) { return rt.Sub(a, b) })
	case ir.TensorMul:
		return in.tensorBinary(fr, instr, func(rt tensorrt.Runtime, a, b *tensorrt.Tensor) (*tensorrt.Tensor, error) { return rt.Mul(a, b) })
	case ir.TensorMatmul:
		return in.tensorBinary(fr, instr, func(rt tensorrt.Runtime, a, b *tensorrt.Tensor) (*tensorrt.Tensor, error) { return rt.Matmul(a, b) })

	case ir.TensorRelu:
		if in.tensors == nil {
			return PtrValue(nil), nil
		}
		operand, ok := fr.get(instr.Operands[0]).P.(*tensorrt.Tensor)
		if !ok {
			return PtrValue(nil), nil
		}
		t, err := in.tensors.Relu(operand)
		if err != nil {
			in.contained = append(in.contained, ContainedError{Message: err.Error()})
			return PtrValue(nil), nil
		}
		return PtrValue(t), nil

	default:
		return Void, nil
	}
}

// tensorBinary dispatches a tensor.{add,sub,mul,matmul} instruction to
// the registered tensor runtime, if any. Operands that are not tensors
// (the runtime is absent, or an operand never resolved past the
// null-pointer placeholder) degrade to a null pointer rather than a
// crash, matching how Load/Store read through missing values elsewhere
// in this interpreter.
func (in *Interpreter) tensorBinary(fr *frame, instr ir.Instruction, op func(tensorrt.Runtime, *tensorrt.Tensor, *tensorrt.Tensor) (*tensorrt.Tensor, error)) (Value, error) {
	if in.tensors == nil {
		return PtrValue(nil), nil
	}
	a, ok1 := fr.get(instr.Operands[0]).P.(*tensorrt.Tensor)
	b, ok2 := fr.get(instr.Operands[1]).P.(*tensorrt.Tensor)
	if !ok1 || !ok2 {
		return PtrValue(nil), nil
	}
	t, err := op(in.tensors, a, b)
	if err != nil {
		in.contained = append(in.contained, ContainedError{Message: err.Error()})
		return PtrValue(nil), nil
	}
	return PtrValue(t), nil
}

func (in *Interpreter) arith(fr *frame, instr ir.Instruction, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) Value {
	lhs := fr.get(instr.Operands[0])
	rhs := fr.get(instr.Operands[1])
	if lhs.IsFloat() || rhs.IsFloat() {
		return FloatValue(floatOp(lhs.ToFloat(), rhs.ToFloat()))
	}
	return IntValue(intOp(lhs.ToInt(), rhs.ToInt()))
}

func (in *Interpreter) div(fr *frame, instr ir.Instruction) (Value, error) {
	lhs := fr.get(instr.Operands[0])
	rhs := fr.get(instr.Operands[1])
	if lhs.IsFloat() || rhs.IsFloat() {
		return FloatValue(lhs.ToFloat() / rhs.ToFloat()), nil
	}
	divisor := rhs.ToInt()
	if divisor == 0 {
		in.contained = append(in.contained, divisionByZero())
		return IntValue(0), nil
	}
	return IntValue(lhs.ToInt() / divisor), nil
}

func (in *Interpreter) cmp(fr *frame, instr ir.Instruction, pred func(a, b int64) bool) Value {
	lhs := fr.get(instr.Operands[0])
	rhs := fr.get(instr.Operands[1])
	if pred(lhs.ToInt(), rhs.ToInt()) {
		return IntValue(1)
	}
	return IntValue(0)
}

func (in *Interpreter) call(fr *frame, instr ir.Instruction) (Value, error) {
	args := make([]Value, len(instr.Operands))
	for i, op := range instr.Operands {
		args[i] = fr.get(op)
	}

	if ext, ok := in.externals[instr.Callee]; ok {
		return in.callExternal(instr.Callee, ext, args)
	}

	callee := in.mod.GetFunction(instr.Callee)
	if callee == nil {
		in.contained = append(in.contained, unresolvedCall(instr.Callee))
		return Void, nil
	}
	return in.callFunction(callee, args)
}
