package stlouisfed

import (
	"sync"
	"time"
)

// RequestState tracks how many HTTP attempts have been made and when the
// first one was issued. Every client in the process shares one instance by
// default, so the pacing math sees the true process-wide request rate.
// Retried attempts count individually. The state is never reset.
type RequestState struct {
	mu           sync.Mutex
	firstRequest time.Time
	count        int64
}

// sharedState is the process-wide default handed to every client that does
// not inject its own state.
var sharedState = NewRequestState()

// NewRequestState creates an isolated request state. Production clients
// normally share SharedRequestState; isolated instances are for tests.
func NewRequestState() *RequestState {
	return &RequestState{}
}

// SharedRequestState returns the process-wide state used by default.
func SharedRequestState() *RequestState {
	return sharedState
}

// MarkFirstRequest records now as the first-request timestamp. Only the
// first call has any effect.
func (s *RequestState) MarkFirstRequest(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.firstRequest.IsZero() {
		s.firstRequest = now
	}
}

// RecordAttempt increments the attempt counter and returns the new count.
// Called once per HTTP attempt, retries included.
func (s *RequestState) RecordAttempt() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	return s.count
}

// Snapshot returns the first-request timestamp and the attempt count.
func (s *RequestState) Snapshot() (time.Time, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstRequest, s.count
}
