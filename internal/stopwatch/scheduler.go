package stopwatch

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// CancelFunc stops a scheduled tick. It is safe to call more than once.
type CancelFunc func()

// Scheduler arranges for fn to run once per interval until cancelled.
// This interface allows ticks to be driven by hand in tests.
type Scheduler interface {
	Every(interval time.Duration, fn func()) CancelFunc
}

// ClockScheduler ticks using a clock.Ticker from the given clock.
type ClockScheduler struct {
	Clock clock.Clock
}

// NewClockScheduler returns a scheduler backed by c, or by the system clock when c is nil.
func NewClockScheduler(c clock.Clock) *ClockScheduler {
	if c == nil {
		c = clock.New()
	}
	return &ClockScheduler{Clock: c}
}

// Every starts a ticker goroutine calling fn once per interval.
// Ticks never overlap: the next tick is not read until fn returns.
func (s *ClockScheduler) Every(interval time.Duration, fn func()) CancelFunc {
	ticker := s.Clock.Ticker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// A tick and a cancel can be ready together; cancel wins.
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
