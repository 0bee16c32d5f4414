package lineage

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports programmer misuse: a bad class name, a
	// receiver that is not a class, or a mixin that is not a mapping.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUndefinedMember is returned when a message resolves to nothing.
	ErrUndefinedMember = errors.New("undefined member")
	// ErrNotCallable is returned when a message resolves to a non-function value.
	ErrNotCallable = errors.New("not callable")
	// ErrUnsupportedOperator is returned by Apply when the receiver's class has
	// no binding at all for an operator.
	ErrUnsupportedOperator = errors.New("unsupported operator")
	// ErrMissingMetamethod is the cause behind every AssertionError.
	ErrMissingMetamethod = errors.New("missing metamethod")
)

// AssertionError is raised when a forwarded operator is invoked and no
// ancestor of Class defines it. It is fatal for the call that raised it;
// nothing in this package retries or recovers from it.
type AssertionError struct {
	Class      string
	Metamethod string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("class %s doesn't implement metamethod '%s'", e.Class, e.Metamethod)
}

func (e *AssertionError) Unwrap() error {
	return ErrMissingMetamethod
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
