// Package export renders generated recipes into the downloadable formats
// the UI offers: a pretty-printed JSON dump and a fixed-order plain text
// listing. Both derive from the same Recipe data without re-querying the
// model.
package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pantrio/backend/internal/types"
)

// JSON renders the recipes as an indented recipe-collection document.
func JSON(recipes []types.Recipe) ([]byte, error) {
	out, err := json.MarshalIndent(types.RecipeCollection{Recipes: recipes}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render recipes as JSON: %w", err)
	}
	return out, nil
}

// Text renders the recipes as plain text, one block per recipe in fixed
// field order, blocks separated by a blank line. Absent nutrition values
// render as "N/A".
func Text(recipes []types.Recipe) string {
	blocks := make([]string, 0, len(recipes))
	for i, r := range recipes {
		blocks = append(blocks, recipeText(i+1, r))
	}
	return strings.Join(blocks, "\n\n")
}

func recipeText(n int, r types.Recipe) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Recipe %d: %s\n", n, r.Name)
	fmt.Fprintf(&b, "Cooking Time: %d minutes\n", r.CookingTimeMinutes)
	fmt.Fprintf(&b, "Difficulty: %s\n", r.Difficulty)
	fmt.Fprintf(&b, "Servings: %d\n", r.Servings)
	fmt.Fprintf(&b, "Dietary Tags: %s\n", strings.Join(r.DietaryTags, ", "))
	fmt.Fprintf(&b, "Allergen Warnings: %s\n", strings.Join(r.AllergenWarnings, ", "))

	b.WriteString("\nIngredients:\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "- %s %s\n", ing.Quantity, ing.Ingredient)
	}

	b.WriteString("\nInstructions:\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	b.WriteString("\nNutritional Info (per serving):\n")
	fmt.Fprintf(&b, "- Calories: %s\n", formatValue(r.Nutrition.CaloriesPerServing, ""))
	fmt.Fprintf(&b, "- Protein: %s\n", formatValue(r.Nutrition.ProteinGrams, "g"))
	fmt.Fprintf(&b, "- Carbs: %s\n", formatValue(r.Nutrition.CarbsGrams, "g"))
	fmt.Fprintf(&b, "- Fat: %s\n", formatValue(r.Nutrition.FatGrams, "g"))
	fmt.Fprintf(&b, "- Fiber: %s\n", formatValue(r.Nutrition.FiberGrams, "g"))
	fmt.Fprintf(&b, "- Sugar: %s\n", formatValue(r.Nutrition.SugarGrams, "g"))

	b.WriteString("\nCooking Tips:\n")
	for _, tip := range r.CookingTips {
		fmt.Fprintf(&b, "- %s\n", tip)
	}

	b.WriteString("\n---")
	return b.String()
}

func formatValue(v *float64, unit string) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}
