package types

// Difficulty is the skill level the model assigns to a recipe.
type Difficulty string

const (
	DifficultyEasy         Difficulty = "Easy"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Valid reports whether d is one of the three supported levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// RecipeIngredient is a single ingredient line with its quantity.
type RecipeIngredient struct {
	Ingredient string `json:"ingredient"`
	Quantity   string `json:"quantity"`
}

// NutritionFacts holds per-serving nutrition estimates. Fields are pointers
// so a value the model omitted stays distinguishable from an explicit zero
// and can be rendered as "N/A" downstream.
type NutritionFacts struct {
	CaloriesPerServing *float64 `json:"calories_per_serving,omitempty"`
	ProteinGrams       *float64 `json:"protein_grams,omitempty"`
	CarbsGrams         *float64 `json:"carbs_grams,omitempty"`
	FatGrams           *float64 `json:"fat_grams,omitempty"`
	FiberGrams         *float64 `json:"fiber_grams,omitempty"`
	SugarGrams         *float64 `json:"sugar_grams,omitempty"`
}

// Complete reports whether all six nutrition fields are present.
func (n NutritionFacts) Complete() bool {
	return n.CaloriesPerServing != nil && n.ProteinGrams != nil &&
		n.CarbsGrams != nil && n.FatGrams != nil &&
		n.FiberGrams != nil && n.SugarGrams != nil
}

// Recipe is one generated recipe, decoded wholesale from the model's reply.
// The ID is assigned server-side after a successful decode; the model never
// produces it.
type Recipe struct {
	ID                 string             `json:"id,omitempty"`
	Name               string             `json:"recipe_name"`
	Ingredients        []RecipeIngredient `json:"ingredients"`
	Instructions       []string           `json:"instructions"`
	CookingTimeMinutes int                `json:"cooking_time_minutes"`
	Difficulty         Difficulty         `json:"difficulty_level"`
	Servings           int                `json:"servings"`
	DietaryTags        []string           `json:"dietary_tags"`
	Nutrition          NutritionFacts     `json:"nutritional_info"`
	CookingTips        []string           `json:"cooking_tips"`
	AllergenWarnings   []string           `json:"allergen_warnings"`
}

// RecipeCollection is the top-level shape the model is instructed to return.
type RecipeCollection struct {
	Recipes []Recipe `json:"recipes"`
}
