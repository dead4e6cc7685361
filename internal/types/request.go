package types

import "strings"

// GenerationRequest carries everything needed to render one generation
// prompt. It is immutable once built; a new selection starts a new request.
type GenerationRequest struct {
	Ingredients  []string
	Restrictions []DietaryRestriction
	Cuisine      string
	Difficulty   string
	CookingTime  string
	Notes        string
}

// GenerationResult is the outcome of a successful generation: the decoded
// recipes plus the raw model text and the exact prompt that produced them,
// kept for diagnostic display.
type GenerationResult struct {
	Recipes  []Recipe `json:"recipes"`
	RawText  string   `json:"raw_response"`
	Prompt   string   `json:"prompt"`
	Attempts int      `json:"attempts"`
}

// CuisineOptions lists the cuisine hints a request may carry. An empty
// cuisine means no preference.
func CuisineOptions() []string {
	return []string{
		"Italian", "Asian", "Mexican", "Mediterranean", "Indian",
		"American", "French", "Thai", "Japanese",
	}
}

// DifficultyOptions lists the difficulty hints a request may carry.
func DifficultyOptions() []string {
	return []string{"Easy", "Intermediate", "Advanced"}
}

// CookingTimeOptions lists the cooking time hints a request may carry.
func CookingTimeOptions() []string {
	return []string{"Under 30 mins", "30-60 mins", "Over 1 hour"}
}

func optionValid(v string, options []string) bool {
	if v == "" {
		return true
	}
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

// ValidCuisine reports whether v is empty or a known cuisine hint.
func ValidCuisine(v string) bool { return optionValid(v, CuisineOptions()) }

// ValidDifficultyHint reports whether v is empty or a known difficulty hint.
func ValidDifficultyHint(v string) bool { return optionValid(v, DifficultyOptions()) }

// ValidCookingTime reports whether v is empty or a known cooking time hint.
func ValidCookingTime(v string) bool { return optionValid(v, CookingTimeOptions()) }

// SplitIngredients turns a comma-separated ingredient string into a cleaned
// list, trimming whitespace and dropping empty entries.
func SplitIngredients(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// CleanIngredients trims every entry and drops empties, preserving order.
func CleanIngredients(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
