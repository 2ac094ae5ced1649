package shared

import (
	"context"
	"time"
)

type outcome[T any] struct {
	value T
	err   error
}

// Timeout races op against a deadline of d. Whichever settles first decides
// the result; if the deadline wins a *TimeoutError is returned.
//
// op is abandoned, not cancelled: it keeps the ctx it was given and may run
// to completion after Timeout returns, in which case its result is dropped.
// Cancelling ctx ends the wait early with ctx.Err().
func Timeout[T any](ctx context.Context, d time.Duration, op func(context.Context) (T, error)) (T, error) {
	done := make(chan outcome[T], 1)
	go func() {
		v, err := op(ctx)
		done <- outcome[T]{value: v, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	var zero T
	select {
	case res := <-done:
		return res.value, res.err
	case <-timer.C:
		return zero, &TimeoutError{Duration: d}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
