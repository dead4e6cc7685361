package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pantrio/backend/internal/service"
)

// RatingsHandler serves the session's aggregated rating state.
type RatingsHandler struct {
	sessions *service.SessionManager
}

// NewRatingsHandler creates a new RatingsHandler instance
func NewRatingsHandler(sessions *service.SessionManager) *RatingsHandler {
	return &RatingsHandler{sessions: sessions}
}

// RegisterRoutes registers the rating routes
func (h *RatingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	ratings := router.Group("/ratings")
	{
		ratings.GET("/statistics", h.Statistics)
		ratings.GET("/history", h.History)
		ratings.DELETE("", h.Clear)
	}
}

// Statistics reports count, average, and per-star distribution of the
// session's ratings.
func (h *RatingsHandler) Statistics(c *gin.Context) {
	sess, ok := sessionFromContext(c, h.sessions)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, sess.Ratings.Statistics())
}

// History returns rated recipes, most recent first. A limit query parameter
// caps the count; the default returns everything.
func (h *RatingsHandler) History(c *gin.Context) {
	sess, ok := sessionFromContext(c, h.sessions)
	if !ok {
		return
	}

	history := sess.Ratings.History()

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		if limit < len(history) {
			history = history[:limit]
		}
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// Clear wipes all ratings and history for the session.
func (h *RatingsHandler) Clear(c *gin.Context) {
	sess, ok := sessionFromContext(c, h.sessions)
	if !ok {
		return
	}

	sess.Ratings.Clear()
	c.JSON(http.StatusOK, StatusResponse{Status: "cleared"})
}
