package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int, timeout time.Duration, inFlight int) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      timeout,
		HalfOpenMaxReq:   inFlight,
	})
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now := newTestBreaker(2, 5*time.Second, 1)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}
	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open trial request to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second trial request to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful trial request, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteSkipsUncountedErrors(t *testing.T) {
	b, _ := newTestBreaker(1, time.Minute, 1)
	rejected := errors.New("token rejected")
	upstream := errors.New("upstream 502")
	countUpstreamOnly := func(err error) bool { return errors.Is(err, upstream) }

	if err := b.Execute(func() error { return rejected }, countUpstreamOnly); !errors.Is(err, rejected) {
		t.Fatalf("expected rejected error passthrough, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected uncounted error to keep breaker closed, got %s", state)
	}

	if err := b.Execute(func() error { return upstream }, countUpstreamOnly); !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if err := b.Execute(func() error { return nil }, countUpstreamOnly); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open breaker to short circuit, got %v", err)
	}
}

func TestCircuitBreaker_DisabledIsNil(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false})
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	if err := b.Execute(func() error { return nil }, nil); err != nil {
		t.Fatalf("expected nil breaker to allow calls, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected nil breaker to report closed, got %s", state)
	}
}

func TestCircuitBreakerConfig_Normalize(t *testing.T) {
	got := CircuitBreakerConfig{Enabled: false, FailureThreshold: -1, HalfOpenMaxReq: 3}.Normalize()

	if got.Enabled {
		t.Fatalf("expected Enabled to be preserved")
	}
	if got.FailureThreshold != defaultFailureThreshold {
		t.Fatalf("FailureThreshold=%d want=%d", got.FailureThreshold, defaultFailureThreshold)
	}
	if got.OpenTimeout != defaultOpenTimeout {
		t.Fatalf("OpenTimeout=%s want=%s", got.OpenTimeout, defaultOpenTimeout)
	}
	if got.HalfOpenMaxReq != 3 {
		t.Fatalf("HalfOpenMaxReq=%d want=3", got.HalfOpenMaxReq)
	}
}
