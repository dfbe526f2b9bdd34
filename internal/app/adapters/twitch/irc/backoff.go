package irc

import "time"

// Backoff yields the waits between reconnection attempts: the initial delay
// after the first failure, doubling after each subsequent one, capped at max.
// A successful connect resets the sequence. The current delay never leaves
// [initial, max].
type Backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

func NewBackoff(initial, max time.Duration) *Backoff {
	return &Backoff{
		initial: initial,
		max:     max,
		current: initial,
	}
}

// Next returns the wait to apply now and advances the sequence.
func (b *Backoff) Next() time.Duration {
	d := b.current

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
	return d
}

func (b *Backoff) Reset() {
	b.current = b.initial
}
