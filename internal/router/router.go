package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrio/backend/internal/api"
	"github.com/pantrio/backend/internal/metrics"
	"github.com/pantrio/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	sessionHandler *api.SessionHandler,
	recipeHandler *api.RecipeHandler,
	ratingsHandler *api.RatingsHandler,
	metaHandler *api.MetaHandler,
	tokens middleware.TokenValidator,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(metrics.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Public routes
	sessionHandler.RegisterRoutes(v1)
	metaHandler.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.SessionAuth(tokens))
	{
		recipeHandler.RegisterRoutes(protected)
		ratingsHandler.RegisterRoutes(protected)
	}

	return router
}
