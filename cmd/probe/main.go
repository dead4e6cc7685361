package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/pantrio/backend/internal/gemini"
	"github.com/pantrio/backend/internal/prompt"
	"github.com/pantrio/backend/internal/service"
	"github.com/pantrio/backend/internal/types"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM so a hung upstream call can be interrupted
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := probeCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func probeCmd() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "Send one live generation through the Gemini pipeline and check the reply shape",
		Description: `Sends a real generateContent request using the production prompt, retry,
and decode path, then reports which fields of each returned recipe are
present. Useful when validating an API key, a new model version, or a
prompt change.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "ingredients",
				Value: []string{"chicken breast", "broccoli", "rice", "garlic", "olive oil", "onion"},
				Usage: "Ingredients to generate recipes from (can be repeated)",
			},
			&cli.StringSliceFlag{
				Name: "restrictions",
				Usage: fmt.Sprintf("Dietary restrictions to enforce (supported values: %s)",
					strings.Join(restrictionNames(), ", ")),
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "Model to query (defaults to the production model)",
			},
			&cli.BoolFlag{
				Name:  "show-prompt",
				Usage: "Print the system instruction and the rendered user prompt",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the raw model reply before validation",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Require complete nutritional info on every recipe",
			},
		},
		Action: runProbe,
	}
}

func runProbe(ctx context.Context, cmd *cli.Command) error {
	_ = godotenv.Load()

	client, err := gemini.NewClient(os.Getenv("GEMINI_API_KEY"),
		gemini.WithModel(cmd.String("model")),
	)
	if err != nil {
		return fmt.Errorf("create client: %w (set GEMINI_API_KEY in the environment or a .env file)", err)
	}

	restrictions, err := types.ParseDietaryRestrictions(cmd.StringSlice("restrictions"))
	if err != nil {
		return err
	}

	req := types.GenerationRequest{
		Ingredients:  types.CleanIngredients(cmd.StringSlice("ingredients")),
		Restrictions: restrictions,
	}
	if len(req.Ingredients) < 2 {
		return fmt.Errorf("need at least 2 ingredients, got %d", len(req.Ingredients))
	}

	if cmd.Bool("show-prompt") {
		printSection("SYSTEM INSTRUCTION", prompt.SystemInstruction)
		printSection("USER PROMPT", prompt.UserPrompt(req))
	}

	var opts []service.GenerationOption
	if cmd.Bool("strict") {
		opts = append(opts, service.WithStrictNutrition(true))
	}
	sess := service.NewGeminiSessionFactory(client, opts...)(uuid.New())

	fmt.Printf("Sending request to %s...\n", client.Model())
	start := time.Now()

	result, err := sess.Generation.Generate(ctx, req)
	if err != nil {
		var decodeErr *service.DecodeError
		if errors.As(err, &decodeErr) {
			fmt.Printf("FAIL: decode failed after %d attempts: %v\n", decodeErr.Attempts, decodeErr.Err)
			printSection("RAW REPLY", decodeErr.RawText)
			return errors.New("reply was not valid recipe JSON")
		}
		return err
	}

	fmt.Printf("OK: %d recipes in %s (attempt %d/%d)\n",
		len(result.Recipes), time.Since(start).Round(time.Millisecond),
		result.Attempts, service.GenerationAttempts)

	if cmd.Bool("raw") {
		printSection("RAW REPLY", result.RawText)
	}

	for i, recipe := range result.Recipes {
		fmt.Printf("\nRecipe %d: %s\n", i+1, recipe.Name)
		reportRecipe(recipe)
	}

	return nil
}

func restrictionNames() []string {
	all := types.AllDietaryRestrictions()
	names := make([]string, 0, len(all))
	for _, r := range all {
		names = append(names, r.String())
	}
	return names
}

func printSection(title, body string) {
	divider := strings.Repeat("=", 72)
	fmt.Println(divider)
	fmt.Println(title)
	fmt.Println(divider)
	fmt.Println(body)
}

// reportRecipe prints an OK/MISSING line per contract field.
func reportRecipe(r types.Recipe) {
	check := func(label string, ok bool) {
		status := "OK"
		if !ok {
			status = "MISSING"
		}
		fmt.Printf("  %-24s %s\n", label, status)
	}

	check("recipe_name", r.Name != "")
	check("ingredients", len(r.Ingredients) > 0)
	check("instructions", len(r.Instructions) > 0)
	check("cooking_time_minutes", r.CookingTimeMinutes > 0)
	check("difficulty_level", r.Difficulty.Valid())
	check("servings", r.Servings > 0)
	check("dietary_tags", r.DietaryTags != nil)
	check("cooking_tips", len(r.CookingTips) > 0)
	check("allergen_warnings", r.AllergenWarnings != nil)

	fmt.Println("  nutritional_info:")
	ncheck := func(label string, v *float64) {
		if v != nil {
			fmt.Printf("    %-22s %g\n", label, *v)
		} else {
			fmt.Printf("    %-22s MISSING\n", label)
		}
	}
	ncheck("calories_per_serving", r.Nutrition.CaloriesPerServing)
	ncheck("protein_grams", r.Nutrition.ProteinGrams)
	ncheck("carbs_grams", r.Nutrition.CarbsGrams)
	ncheck("fat_grams", r.Nutrition.FatGrams)
	ncheck("fiber_grams", r.Nutrition.FiberGrams)
	ncheck("sugar_grams", r.Nutrition.SugarGrams)
}
