package types

import "time"

// RatingRecord is one live star rating for a recipe. At most one record
// exists per recipe ID; re-rating overwrites it.
type RatingRecord struct {
	RecipeID string    `json:"recipe_id"`
	Stars    int       `json:"stars"`
	RatedAt  time.Time `json:"rated_at"`
}

// HistoryEntry is a rated recipe snapshot. It is appended when a recipe is
// first rated; re-rating replaces it at the most recent position.
type HistoryEntry struct {
	Recipe  Recipe    `json:"recipe"`
	Stars   int       `json:"stars"`
	RatedAt time.Time `json:"rated_at"`
}

// RatingStats summarizes the current ratings of one session. Distribution
// maps star value to count, omitting zero-count buckets.
type RatingStats struct {
	Count        int         `json:"count"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}
