package activity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/goodtune/countup/internal/metrics"
	"github.com/goodtune/countup/internal/storage"
	"github.com/goodtune/countup/internal/stopwatch"
	"github.com/rs/zerolog"
)

// DefaultTimestampLayout is used for finishedAt display strings
const DefaultTimestampLayout = "2006-01-02 15:04:05"

// Config holds host configuration
type Config struct {
	Clock           clock.Clock
	TimestampLayout string
}

// Host owns the activity title and running flag, drives the timer and keeps history
type Host struct {
	timer   Timer
	history storage.HistoryStore
	clock   clock.Clock
	layout  string
	logger  zerolog.Logger

	mu      sync.Mutex
	title   string
	running bool

	// Written by timer emissions, which may arrive while mu is held
	seconds atomic.Int64
}

// NewHost creates a host and subscribes it to the timer's emissions
func NewHost(timer Timer, history storage.HistoryStore, config Config, logger zerolog.Logger) *Host {
	if config.Clock == nil {
		config.Clock = clock.New()
	}
	if config.TimestampLayout == "" {
		config.TimestampLayout = DefaultTimestampLayout
	}

	h := &Host{
		timer:   timer,
		history: history,
		clock:   config.Clock,
		layout:  config.TimestampLayout,
		logger:  logger.With().Str("component", "activity").Logger(),
	}

	timer.Subscribe(h.onElapsed)

	return h
}

// onElapsed stores the latest emitted value
func (h *Host) onElapsed(seconds int64) {
	h.seconds.Store(seconds)
}

// Seconds returns the latest elapsed-seconds value received from the timer
func (h *Host) Seconds() int64 {
	return h.seconds.Load()
}

// SetTitle changes the activity title. The title is locked while running.
func (h *Host) SetTitle(title string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return ErrTitleLocked
	}
	h.title = title
	return nil
}

// Start begins timing the titled activity
func (h *Host) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return ErrAlreadyRunning
	}
	if isBlank(h.title) {
		return ErrTitleRequired
	}

	h.setRunning(true)

	h.logger.Info().
		Str("title", strings.TrimSpace(h.title)).
		Int64("seconds", h.seconds.Load()).
		Msg("Activity started")

	return nil
}

// Pause stops the clock, keeping accumulated time
func (h *Host) Pause() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		return ErrNotRunning
	}

	h.setRunning(false)
	return nil
}

// Resume restarts the clock after a pause
func (h *Host) Resume() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return ErrAlreadyRunning
	}
	if isBlank(h.title) {
		return ErrTitleRequired
	}

	h.setRunning(true)
	return nil
}

// Toggle pauses a running activity or resumes a paused one
func (h *Host) Toggle() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		h.setRunning(false)
		return nil
	}
	if isBlank(h.title) {
		return ErrTitleRequired
	}

	h.setRunning(true)
	return nil
}

// Finish records the activity in history and resets the timer.
// A running activity is paused first so the recorded seconds are current.
func (h *Host) Finish(ctx context.Context) (*storage.Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	title := strings.TrimSpace(h.title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	// Judged on the last emitted value so a rejected finish leaves the segment alone
	if h.seconds.Load() <= 0 {
		return nil, ErrNothingToFinish
	}

	if h.running {
		h.setRunning(false)
	}
	seconds := h.seconds.Load()

	record := storage.Record{
		Title:      title,
		Seconds:    seconds,
		FinishedAt: h.clock.Now().In(time.Local).Format(h.layout),
	}

	if err := h.history.Prepend(ctx, record); err != nil {
		// Leave the activity paused so finishing can be retried
		return nil, fmt.Errorf("failed to save activity: %w", err)
	}

	h.timer.Reset()
	h.running = false
	h.title = ""

	metrics.ActivitiesFinished.Inc()
	metrics.TrackedSeconds.Add(float64(seconds))

	h.logger.Info().
		Str("title", record.Title).
		Int64("seconds", record.Seconds).
		Str("finished_at", record.FinishedAt).
		Msg("Activity finished")

	return &record, nil
}

// History returns finished activities, most recent first, with their total
func (h *Host) History(ctx context.Context) (*Summary, error) {
	records, err := h.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	total := storage.TotalSeconds(records)
	return &Summary{
		Records:      records,
		Count:        len(records),
		TotalSeconds: total,
		Total:        stopwatch.FormatSeconds(total),
	}, nil
}

// Total returns the summed seconds of all finished activities
func (h *Host) Total(ctx context.Context) (int64, error) {
	records, err := h.history.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list history: %w", err)
	}
	return storage.TotalSeconds(records), nil
}

// Snapshot returns the current activity state and available controls
func (h *Host) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	seconds := h.seconds.Load()
	titled := !isBlank(h.title)

	return Snapshot{
		Title:   h.title,
		Running: h.running,
		Seconds: seconds,
		Elapsed: stopwatch.FormatSeconds(seconds),
		Controls: Controls{
			CanStart:      !h.running && seconds == 0 && titled,
			CanPause:      h.running,
			CanResume:     !h.running && seconds > 0 && titled,
			CanFinish:     titled && (seconds > 0 || h.running),
			TitleEditable: !h.running,
		},
	}
}

// setRunning updates the host flag and the timer together (must be called with lock held)
func (h *Host) setRunning(running bool) {
	h.running = running
	h.timer.SetRunning(running)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
