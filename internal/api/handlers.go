package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goodtune/countup/internal/activity"
	"github.com/goodtune/countup/internal/storage"
	"github.com/rs/zerolog"
)

// Activity is the host surface exposed over HTTP
type Activity interface {
	SetTitle(title string) error
	Start() error
	Pause() error
	Resume() error
	Toggle() error
	Finish(ctx context.Context) (*storage.Record, error)
	History(ctx context.Context) (*activity.Summary, error)
	Snapshot() activity.Snapshot
}

// Handlers serves activity control and history requests
type Handlers struct {
	activity Activity
	logger   zerolog.Logger
}

// NewHandlers creates activity handlers
func NewHandlers(a Activity, logger zerolog.Logger) *Handlers {
	return &Handlers{
		activity: a,
		logger:   logger.With().Str("handler", "activity").Logger(),
	}
}

// titleRequest is the body of PUT /api/activity/title
type titleRequest struct {
	Title *string `json:"title" binding:"required"`
}

// GetActivity returns the current activity snapshot
func (h *Handlers) GetActivity(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.activity.Snapshot())
}

// SetTitle changes the activity title
func (h *Handlers) SetTitle(ctx *gin.Context) {
	var req titleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "Request body must contain a title",
		})
		return
	}

	h.respond(ctx, h.activity.SetTitle(*req.Title))
}

// Start begins timing the activity
func (h *Handlers) Start(ctx *gin.Context) {
	h.respond(ctx, h.activity.Start())
}

// Pause pauses the running activity
func (h *Handlers) Pause(ctx *gin.Context) {
	h.respond(ctx, h.activity.Pause())
}

// Resume resumes the paused activity
func (h *Handlers) Resume(ctx *gin.Context) {
	h.respond(ctx, h.activity.Resume())
}

// Toggle flips between running and paused
func (h *Handlers) Toggle(ctx *gin.Context) {
	h.respond(ctx, h.activity.Toggle())
}

// Finish records the activity in history
func (h *Handlers) Finish(ctx *gin.Context) {
	record, err := h.activity.Finish(ctx.Request.Context())
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"record":   record,
		"activity": h.activity.Snapshot(),
	})
}

// GetHistory returns finished activities and their total
func (h *Handlers) GetHistory(ctx *gin.Context) {
	summary, err := h.activity.History(ctx.Request.Context())
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// respond writes the snapshot on success or maps the error
func (h *Handlers) respond(ctx *gin.Context, err error) {
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, h.activity.Snapshot())
}

func (h *Handlers) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, activity.ErrTitleRequired),
		errors.Is(err, activity.ErrTitleLocked),
		errors.Is(err, activity.ErrAlreadyRunning),
		errors.Is(err, activity.ErrNotRunning),
		errors.Is(err, activity.ErrNothingToFinish):
		ctx.JSON(http.StatusConflict, gin.H{
			"error":   "conflict",
			"message": err.Error(),
		})
	default:
		h.logger.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("Request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
	}
}
