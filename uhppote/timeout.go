package uhppote

import "time"

const (
	minTimeout     = 50 * time.Millisecond
	maxTimeout     = 30 * time.Second
	defaultTimeout = 2500 * time.Millisecond
)

// clampTimeout normalizes a caller-supplied timeout into [50ms, 30s],
// substituting the 2.5s default for anything outside that range
// (including a non-positive or zero value, which callers use to mean
// "unset").
func clampTimeout(d time.Duration) time.Duration {
	if d < minTimeout || d > maxTimeout {
		return defaultTimeout
	}
	return d
}
