package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pantrio/backend/internal/types"
)

// decodeRecipeCollection parses raw model output against the recipe
// collection contract: a single JSON object whose "recipes" key holds an
// array of recipe objects. Shape violations fail the whole decode; recipes
// are produced wholesale or not at all.
//
// Nutrition handling is the one configurable point: lenient mode admits
// recipes with missing nutrition fields (rendered as "N/A" downstream),
// strict mode rejects them. Negative values are rejected in both modes.
func decodeRecipeCollection(raw string, strictNutrition bool) ([]types.Recipe, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}

	recipesRaw, ok := probe["recipes"]
	if !ok {
		return nil, errors.New(`response has no top-level "recipes" key`)
	}

	var recipes []types.Recipe
	if err := json.Unmarshal(recipesRaw, &recipes); err != nil {
		return nil, fmt.Errorf(`"recipes" is not an array of recipe objects: %w`, err)
	}

	for i := range recipes {
		if err := validateRecipe(&recipes[i], strictNutrition); err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i+1, err)
		}
	}
	return recipes, nil
}

func validateRecipe(r *types.Recipe, strictNutrition bool) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing recipe_name")
	}
	if r.CookingTimeMinutes <= 0 {
		return errors.New("cooking_time_minutes must be a positive integer")
	}
	if r.Servings <= 0 {
		return errors.New("servings must be a positive integer")
	}
	if !r.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty_level %q", r.Difficulty)
	}
	if strictNutrition && !r.Nutrition.Complete() {
		return errors.New("incomplete nutritional_info")
	}
	return validateNutritionValues(r.Nutrition)
}

func validateNutritionValues(n types.NutritionFacts) error {
	fields := map[string]*float64{
		"calories_per_serving": n.CaloriesPerServing,
		"protein_grams":        n.ProteinGrams,
		"carbs_grams":          n.CarbsGrams,
		"fat_grams":            n.FatGrams,
		"fiber_grams":          n.FiberGrams,
		"sugar_grams":          n.SugarGrams,
	}
	for name, v := range fields {
		if v != nil && *v < 0 {
			return fmt.Errorf("negative %s", name)
		}
	}
	return nil
}
