package storefront

import (
	"sync"
	"time"
)

// RetryLimiter rate-limits manual refetch requests per IP address.
type RetryLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

// NewRetryLimiter creates a RetryLimiter that allows max attempts per window.
// A non-positive window falls back to one minute.
func NewRetryLimiter(max int, window time.Duration) *RetryLimiter {
	if window <= 0 {
		window = time.Minute
	}
	l := &RetryLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *RetryLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		l.mu.Lock()
		for ip := range l.attempts {
			if kept := l.prune(ip); len(kept) == 0 {
				delete(l.attempts, ip)
			}
		}
		l.mu.Unlock()
	}
}

// prune drops attempts outside the window. l.mu must be held.
func (l *RetryLimiter) prune(ip string) []time.Time {
	cutoff := l.now().Add(-l.window)
	hits := l.attempts[ip]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.attempts[ip] = kept
	return kept
}

// Allow reports whether ip is under the limit and, if so, records the attempt.
func (l *RetryLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.prune(ip)) >= l.max {
		return false
	}
	l.attempts[ip] = append(l.attempts[ip], l.now())
	return true
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *RetryLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
