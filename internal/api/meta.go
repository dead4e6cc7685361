package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrio/backend/internal/types"
)

// MetaHandler exposes the option lists the UI builds its inputs from.
type MetaHandler struct{}

// NewMetaHandler creates a new MetaHandler instance
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// RegisterRoutes registers the meta routes
func (h *MetaHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/meta", h.Meta)
}

// Meta returns the selectable values for every generation input.
func (h *MetaHandler) Meta(c *gin.Context) {
	restrictions := types.AllDietaryRestrictions()
	names := make([]string, 0, len(restrictions))
	for _, r := range restrictions {
		names = append(names, r.String())
	}

	c.JSON(http.StatusOK, MetaResponse{
		DietaryRestrictions: names,
		Cuisines:            types.CuisineOptions(),
		Difficulties:        types.DifficultyOptions(),
		CookingTimes:        types.CookingTimeOptions(),
	})
}
