// Package status - structured error values for the moriarty error space.
//
// This file declares the Kind enumeration, the Error payload type, one
// constructor per kind, and the predicates consumers use to branch.
package status

import (
	"errors"
	"fmt"
)

// Kind enumerates the moriarty error kinds.
type Kind int

const (
	// KindMisconfigured marks a missing collaborator in a Universe.
	KindMisconfigured Kind = iota

	// KindUnsatisfiedConstraint marks a value that violates its variable's constraints.
	KindUnsatisfiedConstraint

	// KindValueNotFound marks a known variable whose value is absent.
	KindValueNotFound

	// KindVariableNotFound marks a name that refers to no variable.
	KindVariableNotFound

	// KindRetryableGeneration marks a generation failure worth retrying.
	KindRetryableGeneration

	// KindNonRetryableGeneration marks a generation failure retrying cannot fix.
	KindNonRetryableGeneration
)

// Sentinel errors for errors.Is branching. Each Error value reports Is(...)
// true for exactly the sentinel matching its Kind.
var (
	// ErrMisconfigured indicates a required collaborator is missing in the Universe.
	ErrMisconfigured = errors.New("status: misconfigured universe")

	// ErrUnsatisfiedConstraint indicates a value failed a variable's constraint check.
	ErrUnsatisfiedConstraint = errors.New("status: unsatisfied constraint")

	// ErrValueNotFound indicates the variable exists but has no stored value.
	ErrValueNotFound = errors.New("status: value not found")

	// ErrVariableNotFound indicates the name refers to no variable.
	ErrVariableNotFound = errors.New("status: variable not found")

	// ErrRetryableGeneration indicates a transient generation failure.
	ErrRetryableGeneration = errors.New("status: retryable generation failure")

	// ErrNonRetryableGeneration indicates a permanent generation failure.
	ErrNonRetryableGeneration = errors.New("status: non-retryable generation failure")
)

// tag returns the stable payload tag for k. Tags are part of the rendered
// message format "<Tag> <suffix>" and never change between releases.
func (k Kind) tag() string {
	switch k {
	case KindMisconfigured:
		return "Misconfigured"
	case KindUnsatisfiedConstraint:
		return "UnsatisfiedConstraint"
	case KindValueNotFound:
		return "ValueNotFound"
	case KindVariableNotFound:
		return "VariableNotFound"
	case KindRetryableGeneration:
		return "RetryableGeneration"
	case KindNonRetryableGeneration:
		return "NonRetryableGeneration"
	default:
		return "Unknown"
	}
}

// sentinel maps a Kind to its errors.Is target.
func (k Kind) sentinel() error {
	switch k {
	case KindMisconfigured:
		return ErrMisconfigured
	case KindUnsatisfiedConstraint:
		return ErrUnsatisfiedConstraint
	case KindValueNotFound:
		return ErrValueNotFound
	case KindVariableNotFound:
		return ErrVariableNotFound
	case KindRetryableGeneration:
		return ErrRetryableGeneration
	case KindNonRetryableGeneration:
		return ErrNonRetryableGeneration
	default:
		return nil
	}
}

// Error is the structured payload carried by every moriarty error.
// Zero value is not usable; construct through the per-kind constructors.
type Error struct {
	kind     Kind
	variable string // ValueNotFound / VariableNotFound: the offending name
	missing  string // Misconfigured: the absent collaborator
	class    string // Misconfigured: type whose method needed it
	function string // Misconfigured: method that needed it
	message  string // free-form explanation (constraint/generation kinds)
}

// Misconfigured reports that class.function required the named collaborator
// and the Universe did not carry it.
func Misconfigured(class, function, missing string) *Error {
	return &Error{kind: KindMisconfigured, class: class, function: function, missing: missing}
}

// UnsatisfiedConstraint reports a value that violates its variable's
// constraints, with a human explanation of which constraint failed.
func UnsatisfiedConstraint(explanation string) *Error {
	return &Error{kind: KindUnsatisfiedConstraint, message: explanation}
}

// ValueNotFound reports that variable `name` is known but unvalued.
func ValueNotFound(name string) *Error {
	return &Error{kind: KindValueNotFound, variable: name}
}

// VariableNotFound reports that `name` refers to no variable.
func VariableNotFound(name string) *Error {
	return &Error{kind: KindVariableNotFound, variable: name}
}

// RetryableGeneration reports a stochastic generation failure that may
// succeed on a retry with fresh random draws.
func RetryableGeneration(explanation string) *Error {
	return &Error{kind: KindRetryableGeneration, message: explanation}
}

// NonRetryableGeneration reports a generation failure retrying cannot fix
// (for example an empty effective range).
func NonRetryableGeneration(explanation string) *Error {
	return &Error{kind: KindNonRetryableGeneration, message: explanation}
}

// Error renders "<Tag> <suffix>". Consumers must not parse this string;
// use the predicates below instead.
func (e *Error) Error() string {
	switch e.kind {
	case KindMisconfigured:
		return fmt.Sprintf("%s missing %s in %s.%s", e.kind.tag(), e.missing, e.class, e.function)
	case KindValueNotFound, KindVariableNotFound:
		return fmt.Sprintf("%s %s", e.kind.tag(), e.variable)
	default:
		return fmt.Sprintf("%s %s", e.kind.tag(), e.message)
	}
}

// Kind returns the error kind.
func (e *Error) Kind() Kind { return e.kind }

// Variable returns the offending variable name for the *NotFound kinds,
// empty otherwise.
func (e *Error) Variable() string { return e.variable }

// Is lets errors.Is match an Error against the kind sentinels.
func (e *Error) Is(target error) bool {
	return target == e.kind.sentinel()
}

// IsMoriartyError reports whether err (or anything it wraps) belongs to the
// moriarty error space. Generic errors from collaborators report false.
func IsMoriartyError(err error) bool {
	var me *Error
	return errors.As(err, &me)
}

// KindOf extracts the Kind from err. ok is false when err is not a
// moriarty error.
func KindOf(err error) (Kind, bool) {
	var me *Error
	if !errors.As(err, &me) {
		return 0, false
	}
	return me.kind, true
}

// UnknownVariableName extracts the variable name from a ValueNotFound or
// VariableNotFound error. ok is false for every other error.
func UnknownVariableName(err error) (string, bool) {
	var me *Error
	if !errors.As(err, &me) {
		return "", false
	}
	if me.kind != KindValueNotFound && me.kind != KindVariableNotFound {
		return "", false
	}
	return me.variable, true
}

// IsRetryable reports whether err is a retryable generation failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRetryableGeneration)
}

// IsNonRetryable reports whether err is a permanent generation failure.
func IsNonRetryable(err error) bool {
	return errors.Is(err, ErrNonRetryableGeneration)
}
