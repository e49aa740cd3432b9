package egraph

import "errors"

// ErrorKind classifies engine failures.
type ErrorKind uint8

const (
	KindSetup   ErrorKind = iota + 1 // malformed rules, sets or primitives; aborts the call
	KindSort                         // a primitive got values of the wrong sort; the rule does not fire
	KindLimit                        // a configured bound was hit
	KindExtract                      // no finite-cost term for a class
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrSetup        = errors.New("engine setup failed")
	ErrSortMismatch = errors.New("sort mismatch")
	ErrNodeLimit    = errors.New("node limit reached")
	ErrNoTerm       = errors.New("no extractable term")
)

// ErrUnknownRuleSet is wrapped by the KindSetup error for a missing rule set.
var ErrUnknownRuleSet = errors.New("unknown rule set")

var kindSentinel = map[ErrorKind]error{
	KindSetup:   ErrSetup,
	KindSort:    ErrSortMismatch,
	KindLimit:   ErrNodeLimit,
	KindExtract: ErrNoTerm,
}

// Error is a failure of an engine operation.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return "egraph: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	return kindSentinel[e.Kind] == target
}

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
