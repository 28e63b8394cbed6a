package interp

import "fmt"

// ContainedError is a runtime condition the interpreter recovers from on
// its own — integer division by zero, or a call to a name that resolves
// to neither a module function nor a registered external. Execution
// keeps going with a substitute value (0 / void); the bag of
// ContainedErrors lets a caller surface them as warnings afterward.
type ContainedError struct {
	Message string
}

func (e ContainedError) Error() string { return e.Message }

func divisionByZero() ContainedError {
	return ContainedError{Message: "integer division by zero"}
}

func unresolvedCall(callee string) ContainedError {
	return ContainedError{Message: fmt.Sprintf("unresolved external call: %s", callee)}
}

// FatalError wraps a panic raised by a host-provided external function.
// Unlike a ContainedError, this aborts the whole Execute call — an
// external function is code the embedder controls, and a panic out of
// it means the host side is in a state the interpreter has no business
// guessing about.
type FatalError struct {
	Callee string
	Cause  any
}

func (e FatalError) Error() string {
	return fmt.Sprintf("uncaught host exception in external call %s: %v", e.Callee, e.Cause)
}
