// Package prompt renders the fixed system instruction and the per-request
// user prompt sent to the model. Rendering is pure string assembly with no
// side effects; the same GenerationRequest always yields the same prompt.
package prompt

import (
	"strings"

	"github.com/pantrio/backend/internal/types"
)

// SystemInstruction is the persona, JSON schema, and dietary compliance
// contract attached once per conversation. It is never re-sent per request.
const SystemInstruction = `You are an expert chef and nutritionist AI. When users provide ingredients, you must:

IMPORTANT: Always respond with valid JSON format only, no additional text.

Generate 2-3 recipe suggestions using the provided ingredients with the following structure:

{
  "recipes": [
    {
      "recipe_name": "Name of the recipe",
      "ingredients": [
        {"ingredient": "ingredient name", "quantity": "amount with unit"}
      ],
      "instructions": [
        "Step 1 instruction",
        "Step 2 instruction",
        "etc."
      ],
      "cooking_time_minutes": 30,
      "difficulty_level": "Easy|Intermediate|Advanced",
      "servings": 4,
      "dietary_tags": ["Vegetarian", "Gluten-Free", "Low-Carb"],
      "nutritional_info": {
        "calories_per_serving": 350,
        "protein_grams": 25,
        "carbs_grams": 45,
        "fat_grams": 12,
        "fiber_grams": 8,
        "sugar_grams": 5
      },
      "cooking_tips": [
        "Helpful tip 1",
        "Helpful tip 2"
      ],
      "allergen_warnings": ["Contains nuts", "Contains dairy"]
    }
  ]
}

DIETARY RESTRICTIONS COMPLIANCE:
- If user specifies dietary restrictions, ALL recipes must comply with those restrictions
- Vegetarian: No meat, fish, or poultry
- Vegan: No animal products (meat, dairy, eggs, honey)
- Gluten-Free: No wheat, barley, rye, or gluten-containing ingredients
- Dairy-Free: No milk, cheese, butter, or dairy products
- Low-Carb: Maximum 20g carbs per serving
- Keto: Maximum 10g net carbs, high fat content
- Paleo: No grains, legumes, dairy, or processed foods
- Nut-Free: No tree nuts or peanuts
- Diabetic-Friendly: Low sugar, controlled carbs
- Heart-Healthy: Low sodium, low saturated fat

Requirements:
- Use primarily the ingredients provided by the user
- STRICTLY follow any dietary restrictions specified
- Suggest realistic quantities and additional ingredients that comply with dietary needs
- Include accurate dietary tags for each recipe
- List any allergen warnings
- Provide accurate cooking times and difficulty levels
- Include comprehensive nutritional estimates
- Give practical cooking tips
- Ensure all recipes are different from each other
- ALWAYS respond in valid JSON format only`

const (
	ingredientsHeader = "Generate 2-3 recipe suggestions using these ingredients: "

	dietaryHeader = "CRITICAL DIETARY REQUIREMENTS - ALL recipes must comply with:"
	dietaryFooter = "Ensure every recipe strictly follows these dietary restrictions. Do not suggest any recipes that violate these requirements."

	requirementsHeader = "Additional requirements:"

	closingInstruction = "Remember to respond with valid JSON format only, following the exact structure specified in the system instructions. Include accurate dietary_tags and allergen_warnings for each recipe."
)

// UserPrompt renders the per-request prompt in fixed order: ingredient list,
// optional dietary block with every selected restriction verbatim, optional
// requirements block from the hints, then the closing JSON instruction.
func UserPrompt(req types.GenerationRequest) string {
	var b strings.Builder

	b.WriteString(ingredientsHeader)
	b.WriteString(strings.Join(req.Ingredients, ", "))

	if len(req.Restrictions) > 0 {
		names := make([]string, len(req.Restrictions))
		for i, r := range req.Restrictions {
			names[i] = r.String()
		}
		b.WriteString("\n\n")
		b.WriteString(dietaryHeader)
		b.WriteString("\n")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n\n")
		b.WriteString(dietaryFooter)
	}

	if lines := requirementLines(req); len(lines) > 0 {
		b.WriteString("\n\n")
		b.WriteString(requirementsHeader)
		b.WriteString("\n")
		b.WriteString(strings.Join(lines, "\n"))
	}

	b.WriteString("\n\n")
	b.WriteString(closingInstruction)
	return b.String()
}

func requirementLines(req types.GenerationRequest) []string {
	var lines []string
	if req.Cuisine != "" {
		lines = append(lines, "Cuisine type: "+req.Cuisine)
	}
	if req.Difficulty != "" {
		lines = append(lines, "Difficulty level: "+req.Difficulty)
	}
	if req.CookingTime != "" {
		lines = append(lines, "Cooking time: "+req.CookingTime)
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		lines = append(lines, "Additional notes: "+notes)
	}
	return lines
}
