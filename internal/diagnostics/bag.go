package diagnostics

import "go.uber.org/multierr"

// Bag accumulates diagnostics across a compilation stage so it can keep
// going after the first error instead of aborting immediately — the
// semantic analyzer reports into one of these. The parser keeps its own
// error list, which the pipeline renders through this package.
type Bag struct {
	diags []Diagnostic
}

// NewBag returns an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d Diagnostic) {
	b.diags = append(b.diags, d)
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// All returns every diagnostic recorded so far, in report order.
func (b *Bag) All() []Diagnostic {
	return b.diags
}

// Merge folds another bag's diagnostics into this one, preserving order.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.diags = append(b.diags, other.diags...)
}

// Err combines every Error-severity diagnostic into a single multierr-aggregated error,
// or nil if the bag holds no errors. Callers that need per-diagnostic
// span/kind detail should use All instead; Err exists for call sites
// that just want a conventional Go error to propagate or log.
func (b *Bag) Err() error {
	var combined error
	for _, d := range b.diags {
		if d.Severity != Error {
			continue
		}
		combined = multierr.Append(combined, diagError{d})
	}
	return combined
}

type diagError struct {
	d Diagnostic
}

func (e diagError) Error() string {
	return e.d.Kind.String() + ": " + e.d.Message
}
