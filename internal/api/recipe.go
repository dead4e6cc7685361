package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrio/backend/internal/export"
	"github.com/pantrio/backend/internal/metrics"
	"github.com/pantrio/backend/internal/service"
	"github.com/pantrio/backend/internal/types"
)

// RecipeHandler serves generation, rating, and export for the caller's session.
type RecipeHandler struct {
	sessions *service.SessionManager
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(sessions *service.SessionManager) *RecipeHandler {
	return &RecipeHandler{sessions: sessions}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/generate", h.Generate)
		recipes.POST("/reset", h.Reset)
		recipes.GET("/export", h.Export)
		recipes.POST("/:id/rating", h.RateRecipe)
		recipes.GET("/:id/rating", h.GetRating)
	}
}

// Generate asks the session's conversation for recipe suggestions.
func (h *RecipeHandler) Generate(c *gin.Context) {
	sess, ok := sessionFromContext(c, h.sessions)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredients := types.CleanIngredients(req.Ingredients)
	if len(ingredients) < 2 {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter at least 2 ingredients separated by commas"})
		return
	}

	restrictions, err := types.ParseDietaryRestrictions(req.DietaryRestrictions)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !types.ValidCuisine(req.Cuisine) {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown cuisine type"})
		return
	}
	if !types.ValidDifficultyHint(req.Difficulty) {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown difficulty level"})
		return
	}
	if !types.ValidCookingTime(req.CookingTime) {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown cooking time"})
		return
	}

	result, err := sess.Generation.Generate(c.Request.Context(), types.GenerationRequest{
		Ingredients:  ingredients,
		Restrictions: restrictions,
		Cuisine:      req.Cuisine,
		Difficulty:   req.Difficulty,
		CookingTime:  req.CookingTime,
		Notes:        req.Notes,
	})
	if err != nil {
		h.generationFailed(c, err)
		return
	}

	sess.RememberResult(result)
	metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.GenerationAttempts.Observe(float64(result.Attempts))
	c.JSON(http.StatusOK, result)
}

func (h *RecipeHandler) generationFailed(c *gin.Context, err error) {
	var decodeErr *service.DecodeError
	if errors.As(err, &decodeErr) {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeDecodeFailure).Inc()
		metrics.GenerationAttempts.Observe(float64(decodeErr.Attempts))
		c.JSON(http.StatusBadGateway, gin.H{
			"error":        "Failed to generate recipes in proper JSON format. Please try again.",
			"raw_response": decodeErr.RawText,
			"prompt":       decodeErr.Prompt,
		})
		return
	}

	var transportErr *service.TransportError
	if errors.As(err, &transportErr) {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeTransportFailure).Inc()
		metrics.GenerationAttempts.Observe(float64(transportErr.Attempts))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error generating recipes: " + transportErr.Error()})
		return
	}

	if errors.Is(err, service.ErrEmptyInput) {
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter at least 2 ingredients separated by commas"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recipes"})
}

// Reset discards the session's conversation so the next generation starts
// from a clean context.
func (h *RecipeHandler) Reset(c *gin.Context) {
	sess, ok := sessionFromContext(c, h.sessions)
	if !ok {
		return
	}

	sess.Generation.Reset()
	c.JSON(http.StatusOK, StatusResponse{Status: "reset"})
}

// RateRecipe stores a 1..5 star rating for a recipe generated in this session.
func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	sess, ok := sessionFromContext(c, h.sessions)
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, found := sess.Recipe(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	entry, err := sess.Ratings.Rate(recipe, req.Stars)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStars) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5 stars"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		return
	}

	metrics.RatingsTotal.Inc()
	c.JSON(http.StatusOK, entry)
}

// GetRating reports the stored rating for a recipe, 0 when unrated.
func (h *RecipeHandler) GetRating(c *gin.Context) {
	sess, ok := sessionFromContext(c, h.sessions)
	if !ok {
		return
	}

	id := c.Param("id")
	c.JSON(http.StatusOK, RatingResponse{
		RecipeID: id,
		Stars:    sess.Ratings.Rating(id),
	})
}

// Export renders the most recent generation as a downloadable file.
func (h *RecipeHandler) Export(c *gin.Context) {
	sess, ok := sessionFromContext(c, h.sessions)
	if !ok {
		return
	}

	result, err := sess.LastResult()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No recipes generated yet"})
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		data, err := export.JSON(result.Recipes)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export recipes"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="filtered_recipes.json"`)
		c.Data(http.StatusOK, "application/json", data)
	case "text":
		c.Header("Content-Disposition", `attachment; filename="filtered_recipes.txt"`)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.Text(result.Recipes)))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown export format"})
	}
}
