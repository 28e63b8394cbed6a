package source

// Span is a half-open byte range [Start, End) within a single source file.
type Span struct {
	SourceID ID
	Start    int
	End      int
}

// InvalidSpan is the sentinel span used for synthetic or recovered nodes
// that have no real source location.
var InvalidSpan = Span{SourceID: invalidID, Start: 0, End: 0}

// Valid reports whether s refers to real source text.
func (s Span) Valid() bool {
	return s.SourceID != invalidID
}

// Merge returns the convex union of s and other: the smallest span that
// contains both. Merging across different source files, or with either
// span invalid, yields InvalidSpan.
func (s Span) Merge(other Span) Span {
	if !s.Valid() || !other.Valid() || s.SourceID != other.SourceID {
		return InvalidSpan
	}
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{SourceID: s.SourceID, Start: start, End: end}
}

// Contains reports whether offset falls within [Start, End).
func (s Span) Contains(offset int) bool {
	return s.Valid() && offset >= s.Start && offset < s.End
}
