package ground

import "github.com/pkg/errors"

// programErrorKind distinguishes the program-error family (SPEC_FULL.md
// §7): any of these halts the whole Ground call, unlike an ordinary
// resolution failure.
type programErrorKind int

const (
	errUnknownClause programErrorKind = iota
	errVariableUnification
	errNonGroundQuery
	errUnboundProgram
	errUnsupportedOperation
)

// programError tags an underlying error with one of the program-error kinds.
// The underlying error is usually a pkg/errors value that recorded the call
// site's stack; %+v on Unwrap(err) prints that stack, while the programError
// itself formats as its message only (it has no Format method).
type programError struct {
	kind programErrorKind
	err  error
}

func (e *programError) Error() string { return e.err.Error() }
func (e *programError) Cause() error  { return e.err }
func (e *programError) Unwrap() error { return e.err }

func (e *programError) Is(target error) bool {
	t, ok := target.(*programError)
	return ok && t.kind == e.kind
}

// Sentinel program errors for errors.Is comparisons. Each carries no
// message of its own; returned errors wrap the kind with call-site detail
// via programError above.
var (
	// ErrUnknownClause reports a query or call against a predicate the
	// database has no node for.
	ErrUnknownClause = &programError{kind: errUnknownClause, err: errors.New("unknown clause")}

	// ErrVariableUnification reports a variable-variable unification this
	// engine does not perform: a variable repeated in a clause head that
	// the body leaves unbound or bound to a non-ground value (SPEC_FULL.md
	// §4.7), or =/2 over two unbound operands.
	ErrVariableUnification = &programError{kind: errVariableUnification, err: errors.New("variable unification")}

	// ErrNonGroundQuery reports a query term that is not fully ground.
	ErrNonGroundQuery = &programError{kind: errNonGroundQuery, err: errors.New("non-ground query")}

	// ErrUnboundProgram reports evaluation recursion exceeding
	// Config.MaxDepth.
	ErrUnboundProgram = &programError{kind: errUnboundProgram, err: errors.New("unbound program (maximum depth exceeded)")}

	// ErrUnsupportedOperation reports a builtin asked to decide something
	// it deliberately does not implement (SPEC_FULL.md §9: == / \== over
	// two still-unbound operands).
	ErrUnsupportedOperation = &programError{kind: errUnsupportedOperation, err: errors.New("operation not supported")}
)

// UserAbort is the error type for a query aborted by its host. The engine
// never raises it: BuiltinFunc has no error result, and Ground does not
// recover a panic carrying a *UserAbort (it is re-panicked like any other
// value that is not a program error).
type UserAbort struct{ Reason string }

func (e *UserAbort) Error() string { return "ground: user abort: " + e.Reason }

// UserFail is the error type for a deliberate "no proof" outcome. The
// engine neither raises nor recovers it; a builtin fails by returning
// without calling Result.
type UserFail struct{ Reason string }

func (e *UserFail) Error() string { return "ground: user fail: " + e.Reason }
