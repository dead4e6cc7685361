package api

// CreateSessionResponse is returned when a browser opens a new session.
type CreateSessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
}

// GenerateRequest is the body of a recipe generation call.
type GenerateRequest struct {
	Ingredients         []string `json:"ingredients"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Cuisine             string   `json:"cuisine"`
	Difficulty          string   `json:"difficulty"`
	CookingTime         string   `json:"cooking_time"`
	Notes               string   `json:"notes"`
}

// RateRequest carries a star rating for a recipe.
type RateRequest struct {
	Stars int `json:"stars"`
}

// RatingResponse reports the stored rating for a recipe, 0 when unrated.
type RatingResponse struct {
	RecipeID string `json:"recipe_id"`
	Stars    int    `json:"stars"`
}

// StatusResponse acknowledges state-changing calls that return no data.
type StatusResponse struct {
	Status string `json:"status"`
}

// MetaResponse lists the option values the UI offers for each input.
type MetaResponse struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Cuisines            []string `json:"cuisines"`
	Difficulties        []string `json:"difficulties"`
	CookingTimes        []string `json:"cooking_times"`
}
