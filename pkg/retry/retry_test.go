package retry

import (
	"context"
	"errors"
	"testing"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 10, func(attempt int) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_RetriesOnRetryable(t *testing.T) {
	collision := errors.New("collision")
	calls := 0
	err := Do(context.Background(), 10, func(attempt int) error {
		calls++
		if attempt < 3 {
			return Retry(collision)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
}

func TestDo_Exhaustion(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 10, func(attempt int) error {
		calls++
		return Retry(errors.New("collision"))
	})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if calls != 10 {
		t.Errorf("expected 10 calls, got %d", calls)
	}
}

func TestDo_PropagatesHardError(t *testing.T) {
	hard := errors.New("lookup failed")
	calls := 0
	err := Do(context.Background(), 10, func(attempt int) error {
		calls++
		return hard
	})
	if !errors.Is(err, hard) {
		t.Fatalf("expected hard error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("hard error must stop retries, got %d calls", calls)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, 10, func(attempt int) error {
		t.Fatal("fn must not run after cancellation")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
