package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all API routes with the Gin engine
func SetupRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		activity := api.Group("/activity")
		{
			activity.GET("", h.GetActivity)
			activity.PUT("/title", h.SetTitle)
			activity.POST("/start", h.Start)
			activity.POST("/pause", h.Pause)
			activity.POST("/resume", h.Resume)
			activity.POST("/toggle", h.Toggle)
			activity.POST("/finish", h.Finish)
		}

		api.GET("/history", h.GetHistory)
	}
}
