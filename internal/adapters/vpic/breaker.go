package vpic

import (
	"sync"
	"time"
)

const (
	defaultBreakThreshold = 5
	defaultBreakCooldown  = 120 * time.Second
)

// Breaker is a consecutive-failure circuit breaker shared by every caller
// of one Client. No half-open state: once the cooldown elapses the next
// call goes straight to the network and its outcome updates the breaker
type Breaker struct {
	mu        sync.Mutex
	failures  int
	openUntil time.Time

	threshold int
	cooldown  time.Duration
	now       func() time.Time
}

// NewBreaker builds a breaker; zero arguments select the defaults
// (5 consecutive failures, 120s cooldown)
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = defaultBreakThreshold
	}
	if cooldown <= 0 {
		cooldown = defaultBreakCooldown
	}
	return &Breaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Open reports whether calls should be short-circuited right now
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.now().Before(b.openUntil)
}

// RecordFailure counts one unproductive upstream interaction
// Reaching the threshold trips the breaker; openUntil only ever
// advances forward
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	if b.failures >= b.threshold {
		if until := b.now().Add(b.cooldown); until.After(b.openUntil) {
			b.openUntil = until
		}
	}
}

// RecordSuccess clears the failure streak and closes the breaker
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.openUntil = time.Time{}
}

// Failures returns the current consecutive failure count
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}
