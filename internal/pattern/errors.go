package pattern

import "errors"

var (
	// ErrUnknownPattern indicates a pattern id with no registered descriptor.
	ErrUnknownPattern = errors.New("pattern: unknown pattern")

	// ErrUnknownControl indicates a value keyed by an id the pattern does not declare.
	ErrUnknownControl = errors.New("pattern: unknown control")

	// ErrInvalidValue indicates a value that cannot be coerced to its control's type.
	ErrInvalidValue = errors.New("pattern: invalid control value")

	// ErrNotAValue is returned when a button is given a value.
	ErrNotAValue = errors.New("pattern: buttons carry no value")

	// ErrUnknownAction indicates a dispatched action the generator does not handle.
	ErrUnknownAction = errors.New("pattern: unknown action")
)
