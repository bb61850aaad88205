// Package retry provides a bounded retry combinator for check-then-act
// sequences that may need a fixed number of attempts before giving up.
package retry

import (
	"context"
	"errors"
)

// ErrExhausted is returned by Do when every attempt reported a retryable
// outcome without succeeding.
var ErrExhausted = errors.New("retry attempts exhausted")

// Retryable marks an error as a normal per-attempt outcome (e.g. a collision)
// rather than a hard failure. Do retries on Retryable errors and propagates
// everything else immediately.
type Retryable struct {
	Err error
}

func (r *Retryable) Error() string { return r.Err.Error() }

func (r *Retryable) Unwrap() error { return r.Err }

// Retry wraps err so Do treats it as a retryable outcome.
func Retry(err error) error { return &Retryable{Err: err} }

// Do runs fn up to attempts times. fn returning nil stops with success; a
// Retryable error consumes an attempt; any other error propagates at once.
// Context cancellation is checked between attempts.
func Do(ctx context.Context, attempts int, fn func(attempt int) error) error {
	var retryable *Retryable
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn(i)
		if err == nil {
			return nil
		}
		if !errors.As(err, &retryable) {
			return err
		}
	}
	return ErrExhausted
}
