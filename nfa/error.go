package nfa

import (
	"errors"
	"fmt"
)

// Sentinel errors describing NFA construction failures. Builder.Validate
// and Builder.Connect report failures as *BuildError values and do not
// return or wrap these sentinels.
var (
	// ErrInvalidState indicates an invalid StateID was used.
	ErrInvalidState = errors.New("invalid NFA state")

	// ErrUnpatched indicates a transition target was never connected to a
	// real state before Build was called.
	ErrUnpatched = errors.New("unpatched transition target")
)

// BuildError represents a failure in the low-level Builder API: an
// out-of-bounds StateID, a start state that was never set, or an
// UNPATCHED target surviving to Build.
type BuildError struct {
	Message string
	StateID StateID
}

func (e *BuildError) Error() string {
	if e.StateID != Unpatched {
		return fmt.Sprintf("nfa build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("nfa build error: %s", e.Message)
}

// CompileErrorKind is the taxonomy of failures the compiler package surfaces
// from Compile. See §7 of the design: TooComplex, UnsupportedFeature, and
// Internal are the only three kinds.
type CompileErrorKind uint8

const (
	// TooComplex marks an HIR tree that exceeds a configured compile-time
	// bound, such as maximum recursion depth.
	TooComplex CompileErrorKind = iota
	// UnsupportedFeature marks an HIR construct or combination this
	// compiler deliberately declines to lower (see Reason for why).
	UnsupportedFeature
	// Internal marks a broken invariant inside the compiler itself.
	Internal
)

func (k CompileErrorKind) String() string {
	switch k {
	case TooComplex:
		return "TooComplex"
	case UnsupportedFeature:
		return "UnsupportedFeature"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// CompileError wraps a compilation failure with its taxonomy kind and a
// human-readable reason.
type CompileError struct {
	Kind   CompileErrorKind
	Reason string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error (%s): %s", e.Kind, e.Reason)
}

// NewUnsupportedFeature builds a CompileError of kind UnsupportedFeature.
func NewUnsupportedFeature(reason string) *CompileError {
	return &CompileError{Kind: UnsupportedFeature, Reason: reason}
}

// NewInternal builds a CompileError of kind Internal.
func NewInternal(reason string) *CompileError {
	return &CompileError{Kind: Internal, Reason: reason}
}

// NewTooComplex builds a CompileError of kind TooComplex.
func NewTooComplex(reason string) *CompileError {
	return &CompileError{Kind: TooComplex, Reason: reason}
}
