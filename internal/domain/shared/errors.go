package shared

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is matched by every TimeoutError
var ErrTimeout = errors.New("operation timed out")

// TimeoutError is returned by Timeout when the deadline elapses first
type TimeoutError struct {
	Duration time.Duration
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Timed out in %d ms.", e.Duration.Milliseconds())
}

// Is reports ErrTimeout as the matching sentinel
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}
