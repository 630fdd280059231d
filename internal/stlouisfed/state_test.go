package stlouisfed

import (
	"sync"
	"testing"
	"time"
)

func TestMarkFirstRequest_SetOnce(t *testing.T) {
	s := NewRequestState()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.MarkFirstRequest(t0)
	s.MarkFirstRequest(t0.Add(time.Hour))

	first, _ := s.Snapshot()
	if !first.Equal(t0) {
		t.Errorf("first request timestamp changed: got %v, want %v", first, t0)
	}
}

func TestRecordAttempt_Counts(t *testing.T) {
	s := NewRequestState()
	for i := 1; i <= 5; i++ {
		if got := s.RecordAttempt(); got != int64(i) {
			t.Errorf("attempt %d: count = %d", i, got)
		}
	}
	_, count := s.Snapshot()
	if count != 5 {
		t.Errorf("expected count 5, got %d", count)
	}
}

func TestRecordAttempt_Concurrent(t *testing.T) {
	s := NewRequestState()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordAttempt()
		}()
	}
	wg.Wait()

	_, count := s.Snapshot()
	if count != 100 {
		t.Errorf("expected count 100, got %d", count)
	}
}

func TestThrottleDelay_SkippedForFirstTwoRequests(t *testing.T) {
	s := NewRequestState()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.MarkFirstRequest(t0)

	if d := s.ThrottleDelay(t0); d != 0 {
		t.Errorf("expected no delay at count 0, got %v", d)
	}
	s.RecordAttempt()
	if d := s.ThrottleDelay(t0.Add(time.Millisecond)); d != 0 {
		t.Errorf("expected no delay at count 1, got %v", d)
	}
}

func TestThrottleDelay_UnderBudget(t *testing.T) {
	s := NewRequestState()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.MarkFirstRequest(t0)
	s.RecordAttempt()
	s.RecordAttempt()

	// 2 attempts over 10s is 0.2 req/s, well under the 1.5 req/s budget.
	if d := s.ThrottleDelay(t0.Add(10 * time.Second)); d != 0 {
		t.Errorf("expected no delay under budget, got %v", d)
	}
}

func TestThrottleDelay_OverBudget(t *testing.T) {
	s := NewRequestState()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.MarkFirstRequest(t0)
	for i := 0; i < 3; i++ {
		s.RecordAttempt()
	}

	// 3 attempts in 1s is 3 req/s, over budget. The heuristic targets
	// fitting count+1 requests into the budget: 4/1.5 - 1 = 5/3 s.
	got := s.ThrottleDelay(t0.Add(time.Second))
	wantSeconds := 4.0/1.5 - 1.0
	want := time.Duration(wantSeconds * float64(time.Second))
	if diff := got - want; diff < -time.Millisecond || diff > time.Millisecond {
		t.Errorf("expected delay ~%v, got %v", want, got)
	}
}

func TestThrottleDelay_AtBudgetBoundary(t *testing.T) {
	s := NewRequestState()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.MarkFirstRequest(t0)
	s.RecordAttempt()
	s.RecordAttempt()
	s.RecordAttempt()

	// Pace exactly at budget: 3 attempts over 2s is 1.5 req/s. The delay
	// targets the (count+1)th request: 4/1.5 - 2 = 2/3 s, never negative.
	got := s.ThrottleDelay(t0.Add(2 * time.Second))
	wantSeconds := 4.0/1.5 - 2.0
	want := time.Duration(wantSeconds * float64(time.Second))
	if got < 0 {
		t.Errorf("delay must never be negative, got %v", got)
	}
	if diff := got - want; diff < -time.Millisecond || diff > time.Millisecond {
		t.Errorf("expected delay ~%v, got %v", want, got)
	}
}

func TestSharedRequestState_Stable(t *testing.T) {
	if SharedRequestState() != SharedRequestState() {
		t.Error("shared state must be the same instance on every call")
	}
}
