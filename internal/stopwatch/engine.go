package stopwatch

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/goodtune/countup/internal/metrics"
	"github.com/rs/zerolog"
)

// DefaultTickInterval is the nominal period between elapsed-time emissions
const DefaultTickInterval = time.Second

// Observer receives every elapsed-seconds value the engine emits.
// Observers run while the engine is locked and must not call back into it.
type Observer func(seconds int64)

// State is the engine's lifecycle state
type State int

const (
	StateIdle State = iota
	StatePaused
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePaused:
		return "paused"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Config holds engine configuration
type Config struct {
	Clock        clock.Clock
	Scheduler    Scheduler
	TickInterval time.Duration
}

// Snapshot is a point-in-time copy of the engine state
type Snapshot struct {
	State              State
	AccumulatedSeconds int64
	DisplaySeconds     int64
	SegmentStart       time.Time // zero unless running
}

// Engine tracks elapsed seconds for a single activity across pause/resume cycles.
//
// Elapsed time is always derived from wall-clock deltas: completed segments are
// banked in whole seconds and the running segment is added on every tick, so a
// late or skipped tick never under-counts.
type Engine struct {
	clock     clock.Clock
	scheduler Scheduler
	interval  time.Duration
	logger    zerolog.Logger

	mu                 sync.Mutex
	observers          []Observer
	state              State
	accumulatedSeconds int64
	segmentStart       time.Time
	displaySeconds     int64
	lastTick           time.Time
	generation         uint64
	cancelTick         CancelFunc
}

// NewEngine creates an idle engine
func NewEngine(config Config, logger zerolog.Logger) *Engine {
	if config.Clock == nil {
		config.Clock = clock.New()
	}
	if config.Scheduler == nil {
		config.Scheduler = NewClockScheduler(config.Clock)
	}
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTickInterval
	}

	return &Engine{
		clock:     config.Clock,
		scheduler: config.Scheduler,
		interval:  config.TickInterval,
		logger:    logger.With().Str("component", "stopwatch").Logger(),
		state:     StateIdle,
	}
}

// Subscribe registers an observer for elapsed-seconds emissions
func (e *Engine) Subscribe(fn Observer) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

// SetRunning moves the engine between running and paused.
// Calling it with the current value only re-emits the current seconds.
func (e *Engine) SetRunning(running bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if running == (e.state == StateRunning) {
		e.emit()
		return
	}

	now := e.clock.Now()

	if running {
		transition := "start"
		if e.state == StatePaused {
			transition = "resume"
		}

		e.state = StateRunning
		e.segmentStart = now
		e.lastTick = now
		e.displaySeconds = e.accumulatedSeconds
		e.startTicking()

		metrics.EngineTransitions.WithLabelValues(transition).Inc()
		e.logger.Debug().
			Str("transition", transition).
			Int64("accumulated_seconds", e.accumulatedSeconds).
			Msg("Segment started")
	} else {
		e.stopTicking()

		delta := wholeSeconds(now.Sub(e.segmentStart))
		e.accumulatedSeconds += delta
		e.segmentStart = time.Time{}
		e.displaySeconds = e.accumulatedSeconds
		e.state = StatePaused

		metrics.EngineTransitions.WithLabelValues("pause").Inc()
		e.logger.Debug().
			Int64("segment_seconds", delta).
			Int64("accumulated_seconds", e.accumulatedSeconds).
			Msg("Segment banked")
	}

	e.emit()
}

// Reset cancels any pending tick and returns the engine to idle with zero seconds.
// The host's own running flag is not touched.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTicking()
	e.state = StateIdle
	e.accumulatedSeconds = 0
	e.segmentStart = time.Time{}
	e.lastTick = time.Time{}
	e.displaySeconds = 0

	metrics.EngineTransitions.WithLabelValues("reset").Inc()
	e.logger.Debug().Msg("Engine reset")

	e.emit()
}

// Close releases the tick handle without emitting
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTicking()
}

// Seconds returns the last emitted elapsed-seconds value
func (e *Engine) Seconds() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.displaySeconds
}

// Snapshot returns a copy of the engine state
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		State:              e.state,
		AccumulatedSeconds: e.accumulatedSeconds,
		DisplaySeconds:     e.displaySeconds,
		SegmentStart:       e.segmentStart,
	}
}

// tick recomputes elapsed time for the segment identified by gen
func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Ticks from a cancelled segment are dropped
	if e.state != StateRunning || gen != e.generation {
		return
	}

	now := e.clock.Now()
	if late := now.Sub(e.lastTick) - e.interval; late > 0 {
		metrics.TickLag.Observe(late.Seconds())
	}
	e.lastTick = now

	e.displaySeconds = e.accumulatedSeconds + wholeSeconds(now.Sub(e.segmentStart))
	metrics.TicksTotal.Inc()

	e.emit()
}

// startTicking acquires a new tick handle (must be called with lock held)
func (e *Engine) startTicking() {
	e.generation++
	gen := e.generation
	e.cancelTick = e.scheduler.Every(e.interval, func() { e.tick(gen) })
}

// stopTicking cancels the tick handle (must be called with lock held)
func (e *Engine) stopTicking() {
	e.generation++
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
}

// emit notifies observers (must be called with lock held)
func (e *Engine) emit() {
	metrics.ElapsedSeconds.Set(float64(e.displaySeconds))
	for _, fn := range e.observers {
		fn(e.displaySeconds)
	}
}

// wholeSeconds truncates d to whole seconds, never negative
func wholeSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}
