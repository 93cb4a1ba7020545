package activity

import (
	"errors"

	"github.com/goodtune/countup/internal/storage"
	"github.com/goodtune/countup/internal/stopwatch"
)

// Host policy violations. These correspond to controls that would be disabled.
var (
	ErrTitleRequired   = errors.New("activity: title is required")
	ErrTitleLocked     = errors.New("activity: title cannot change while running")
	ErrAlreadyRunning  = errors.New("activity: already running")
	ErrNotRunning      = errors.New("activity: not running")
	ErrNothingToFinish = errors.New("activity: no elapsed time to finish")
)

// Timer is the control surface the host needs from the elapsed-time engine
type Timer interface {
	SetRunning(running bool)
	Reset()
	Subscribe(fn stopwatch.Observer)
}

// Controls describes which host actions are currently available
type Controls struct {
	CanStart      bool `json:"can_start"`
	CanPause      bool `json:"can_pause"`
	CanResume     bool `json:"can_resume"`
	CanFinish     bool `json:"can_finish"`
	TitleEditable bool `json:"title_editable"`
}

// Snapshot is the host's view of the current activity
type Snapshot struct {
	Title    string   `json:"title"`
	Running  bool     `json:"running"`
	Seconds  int64    `json:"seconds"`
	Elapsed  string   `json:"elapsed"`
	Controls Controls `json:"controls"`
}

// Summary is the completed-activities list with its aggregate total
type Summary struct {
	Records      []storage.Record `json:"records"`
	Count        int              `json:"count"`
	TotalSeconds int64            `json:"total_seconds"`
	Total        string           `json:"total"`
}
