package mq

import "time"

// Retry policy: 3 attempts, exponential backoff starting at 2s.
const (
	MaxAttempts    = 3
	InitialBackoff = 2 * time.Second
)

// AttemptsHeader counts deliveries of a message, carried between republishes.
const AttemptsHeader = "x-attempts"

// BackoffFor returns the delay before the next attempt. attempt is the
// 1-based attempt that just failed: 2s after the first, 4s after the second.
func BackoffFor(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := InitialBackoff
	for i := 1; i < attempt; i++ {
		d *= 2
	}
	return d
}
