// Package types defines Zero's closed set of value types and the
// compatibility/promotion rules the analyzer and IR lowering share.
package types

// Kind is the closed set of type kinds in Zero.
type Kind int

const (
	Unknown Kind = iota
	Int
	Float
	Void
	Tensor
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Void:
		return "void"
	case Tensor:
		return "tensor"
	default:
		return "unknown"
	}
}

// Type is a Zero value type. Equality is kind equality; Kind carries all
// the information Zero's type system needs, so Type is just a thin
// wrapper for readability at call sites.
type Type struct {
	Kind Kind
}

var (
	TInt     = Type{Kind: Int}
	TFloat   = Type{Kind: Float}
	TVoid    = Type{Kind: Void}
	TTensor  = Type{Kind: Tensor}
	TUnknown = Type{Kind: Unknown}
)

func (t Type) String() string {
	return t.Kind.String()
}

// Equal reports kind equality.
func (t Type) Equal(other Type) bool {
	return t.Kind == other.Kind
}

// FromName maps a parsed type annotation spelling to its Type, defaulting
// to Unknown for anything unrecognized (recovery paths feed this).
func FromName(name string) Type {
	switch name {
	case "int":
		return TInt
	case "float":
		return TFloat
	case "void":
		return TVoid
	case "tensor":
		return TTensor
	default:
		return TUnknown
	}
}

// Compatible reports whether a value of type from may be used where to is
// expected: equal kinds, or either side Unknown (Unknown is bivariantly
// compatible with everything).
func Compatible(from, to Type) bool {
	return from.Kind == Unknown || to.Kind == Unknown || from.Kind == to.Kind
}

// Promote returns the result type of a binary arithmetic operation over
// a and b: int with float yields float; equal kinds yield that kind; any
// other mix yields Unknown.
func Promote(a, b Type) Type {
	if a.Kind == b.Kind {
		return a
	}
	if (a.Kind == Int && b.Kind == Float) || (a.Kind == Float && b.Kind == Int) {
		return TFloat
	}
	return TUnknown
}
