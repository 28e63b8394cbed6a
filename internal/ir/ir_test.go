package ir

import (
	"strings"
	"testing"

	"github.com/LetsZero/zero-compiler/internal/types"
)

func TestFunctionNewValueIsMonotonicAndUnique(t *testing.T) {
	fn := NewFunction("f", nil, types.TInt)
	seen := map[uint32]bool{}
	var prev uint32
	for i := 0; i < 5; i++ {
		v := fn.NewValue(types.TInt)
		if seen[v.ID] {
			t.Fatalf("duplicate SSA id %d", v.ID)
		}
		seen[v.ID] = true
		if v.ID <= prev {
			t.Fatalf("expected monotonically increasing ids, got %d after %d", v.ID, prev)
		}
		prev = v.ID
	}
}

func TestFunctionEntryCreatesBlockOnDemand(t *testing.T) {
	fn := NewFunction("f", nil, types.TVoid)
	entry := fn.Entry()
	if entry.Label != "entry" {
		t.Fatalf("expected entry block labeled 'entry', got %q", entry.Label)
	}
	if fn.Entry() != entry {
		t.Fatalf("Entry should not create a second block once one exists")
	}
}

func TestBasicBlockTerminatorRecognizesControlFlowOps(t *testing.T) {
	bb := &BasicBlock{}
	if bb.Terminator() != nil {
		t.Fatalf("empty block should have no terminator")
	}
	bb.Add(Instruction{Op: ConstInt, ImmInt: 1})
	if bb.Terminator() != nil {
		t.Fatalf("a non-terminal last instruction should not count as a terminator")
	}
	bb.Add(Instruction{Op: Ret})
	if bb.Terminator() == nil {
		t.Fatalf("expected Ret to be recognized as a terminator")
	}
}

func TestPrintModuleFormatsConstAndCall(t *testing.T) {
	mod := &Module{}
	fn := mod.AddFunction("main", nil, types.TInt)
	b := NewBuilder(fn)
	v := b.ConstInt(42)
	b.Call("print", []Value{v}, types.TVoid)
	b.RetValue(v)

	out := PrintModule(mod)
	if !strings.Contains(out, "fn @main(") {
		t.Fatalf("expected function header, got %q", out)
	}
	if !strings.Contains(out, "= const.i64 42") {
		t.Fatalf("expected const.i64 instruction, got %q", out)
	}
	if !strings.Contains(out, "call @print(%1)") {
		t.Fatalf("expected call instruction naming its argument, got %q", out)
	}
	if !strings.Contains(out, "ret %1") {
		t.Fatalf("expected ret instruction, got %q", out)
	}
}

func TestPrintCondBrFormat(t *testing.T) {
	mod := &Module{}
	fn := mod.AddFunction("f", nil, types.TVoid)
	b := NewBuilder(fn)
	cond := b.ConstInt(1)
	then := b.CreateBlock("then")
	els := b.CreateBlock("else")
	b.CondBr(cond, then, els)

	out := PrintModule(mod)
	if !strings.Contains(out, "cond_br %1, bb1, bb2") {
		t.Fatalf("expected formatted cond_br, got %q", out)
	}
}
