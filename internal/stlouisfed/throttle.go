package stlouisfed

import "time"

const (
	// RatePerMinute is the FRED API request budget the pacing heuristic
	// targets: 90 requests per minute.
	RatePerMinute = 90

	rateWindow = time.Minute
)

// ThrottleDelay reports how long to sleep before the next request so that
// all requests so far, plus one more, fit the rate budget. This is a
// moving-target pacing heuristic, not a token bucket: it divides the total
// attempt count by the total elapsed time since the first request.
//
// Returns zero while fewer than two attempts have been made, and zero
// whenever the observed pace is already under budget.
func (s *RequestState) ThrottleDelay(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count <= 1 {
		return 0
	}

	budget := float64(RatePerMinute) / rateWindow.Seconds() // req/s
	elapsed := now.Sub(s.firstRequest).Seconds()

	// elapsed of zero yields +Inf pace, which correctly falls into the
	// over-budget branch below.
	pace := float64(s.count) / elapsed
	if pace < budget {
		return 0
	}

	delay := float64(s.count+1)/budget - elapsed
	if delay <= 0 {
		return 0
	}
	return time.Duration(delay * float64(time.Second))
}
