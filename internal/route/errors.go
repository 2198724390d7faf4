package route

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSegment is matched by every *InvalidSegmentError.
	ErrInvalidSegment = errors.New("invalid route segment")

	// ErrEmptyRoute is returned when a route has no segments to sample.
	ErrEmptyRoute = errors.New("route has no segments")
)

// InvalidSegmentError reports a segment (or, with Index -1, the route itself)
// carrying a negative duration.
type InvalidSegmentError struct {
	Index           int
	DurationSeconds int
}

func (e *InvalidSegmentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: route duration %ds is negative", ErrInvalidSegment, e.DurationSeconds)
	}
	return fmt.Sprintf("%v: segment %d has negative duration %ds", ErrInvalidSegment, e.Index, e.DurationSeconds)
}

func (e *InvalidSegmentError) Is(target error) bool {
	return target == ErrInvalidSegment
}
