package diag

import (
	"errors"
	"fmt"
)

// ErrInvalidEnumValue is matched by every InvalidEnumValueError.
var ErrInvalidEnumValue = errors.New("invalid enum value")

// InvalidEnumValueError reports a value outside one of the closed
// enumerations (kind, type, group). It is a data-contract violation and
// retrying with the same input fails identically.
type InvalidEnumValueError struct {
	Enum  string // "kind", "type", "group"
	Value string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Enum, e.Value)
}

// Is lets errors.Is(err, ErrInvalidEnumValue) match.
func (e *InvalidEnumValueError) Is(target error) bool {
	return target == ErrInvalidEnumValue
}

func invalidEnum(enum string, value any) error {
	return &InvalidEnumValueError{Enum: enum, Value: fmt.Sprint(value)}
}
