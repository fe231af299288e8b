package filter

import (
	"errors"
	"fmt"
)

// ErrNilDescriptor is returned when a filter is built without a descriptor.
var ErrNilDescriptor = errors.New("nil descriptor")

// ComparatorError reports a comparator used with a filter type it does not
// belong to.
type ComparatorError struct {
	Cmp  Comparator
	Type FilterType
}

func (e *ComparatorError) Error() string {
	return fmt.Sprintf("comparator %q not valid for %q filters", e.Cmp, e.Type)
}

// TargetError reports a filter target that does not fit the filter type.
type TargetError struct {
	Type   FilterType
	Cmp    Comparator
	Reason string
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("bad target for %q %q: %s", e.Type, e.Cmp, e.Reason)
}

// ShapeError reports an extraction whose kind cannot be evaluated under the
// filter's type. It is an evaluation error, distinguishable from an ordinary
// non-match; the boolean surface still treats it as a rejection.
type ShapeError struct {
	Descriptor string
	Type       FilterType
	Got        Kind
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("descriptor %q produced a %s value, not evaluable as %q", e.Descriptor, e.Got, e.Type)
}
