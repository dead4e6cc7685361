package service

import (
	"sync"
	"time"

	"github.com/pantrio/backend/internal/types"
)

// RatingTracker maintains one session's in-memory rating map and ordered
// history of rated recipes. Nothing is persisted; a process restart loses
// everything.
type RatingTracker struct {
	mu      sync.Mutex
	ratings map[string]types.RatingRecord
	history []types.HistoryEntry
}

// NewRatingTracker returns an empty tracker.
func NewRatingTracker() *RatingTracker {
	return &RatingTracker{ratings: make(map[string]types.RatingRecord)}
}

// Rate upserts a star rating for the recipe. A recipe already in history is
// moved to the most-recent position with its snapshot, stars, and timestamp
// replaced; a newly rated recipe is appended. Last write wins.
func (t *RatingTracker) Rate(recipe types.Recipe, stars int) (types.HistoryEntry, error) {
	if stars < 1 || stars > 5 {
		return types.HistoryEntry{}, ErrInvalidStars
	}
	if recipe.ID == "" {
		return types.HistoryEntry{}, ErrUnknownRecipe
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.ratings[recipe.ID] = types.RatingRecord{RecipeID: recipe.ID, Stars: stars, RatedAt: now}

	for i := range t.history {
		if t.history[i].Recipe.ID == recipe.ID {
			t.history = append(t.history[:i], t.history[i+1:]...)
			break
		}
	}
	entry := types.HistoryEntry{Recipe: recipe, Stars: stars, RatedAt: now}
	t.history = append(t.history, entry)
	return entry, nil
}

// Rating returns the current stars for a recipe, 0 when unrated.
func (t *RatingTracker) Rating(recipeID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ratings[recipeID].Stars
}

// Clear irreversibly empties the rating map and the history.
func (t *RatingTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ratings = make(map[string]types.RatingRecord)
	t.history = nil
}

// Statistics computes count, arithmetic mean, and the per-star distribution
// from the current ratings. Zero-count buckets never appear in the map.
func (t *RatingTracker) Statistics() types.RatingStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := types.RatingStats{Distribution: make(map[int]int)}
	if len(t.ratings) == 0 {
		return stats
	}

	sum := 0
	for _, r := range t.ratings {
		sum += r.Stars
		stats.Distribution[r.Stars]++
	}
	stats.Count = len(t.ratings)
	stats.Average = float64(sum) / float64(len(t.ratings))
	return stats
}

// History returns a copy of the rated recipes ordered by rating time, most
// recent first. The internal slice is kept in rating order, so the copy is
// simply reversed.
func (t *RatingTracker) History() []types.HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]types.HistoryEntry, len(t.history))
	for i, e := range t.history {
		out[len(out)-1-i] = e
	}
	return out
}
