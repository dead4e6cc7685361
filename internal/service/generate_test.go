package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrio/backend/internal/prompt"
	"github.com/pantrio/backend/internal/types"
)

const validRecipeJSON = `{
  "recipes": [
    {
      "recipe_name": "Garlic Butter Chicken",
      "ingredients": [{"ingredient": "chicken breast", "quantity": "2 lbs"}],
      "instructions": ["Sear the chicken.", "Finish with butter."],
      "cooking_time_minutes": 30,
      "difficulty_level": "Easy",
      "servings": 4,
      "dietary_tags": ["Low-Carb"],
      "nutritional_info": {
        "calories_per_serving": 350,
        "protein_grams": 25,
        "carbs_grams": 5,
        "fat_grams": 12,
        "fiber_grams": 1,
        "sugar_grams": 2
      },
      "cooking_tips": ["Rest before slicing."],
      "allergen_warnings": ["Contains dairy"]
    }
  ]
}`

type scriptedTurn struct {
	text string
	err  error
}

// scriptedConversation replays a fixed sequence of model turns and records
// every prompt it was sent.
type scriptedConversation struct {
	turns []scriptedTurn
	sent  []string
}

func (s *scriptedConversation) Send(_ context.Context, text string) (string, error) {
	s.sent = append(s.sent, text)
	if len(s.sent) > len(s.turns) {
		return "", fmt.Errorf("unexpected call %d", len(s.sent))
	}
	turn := s.turns[len(s.sent)-1]
	return turn.text, turn.err
}

func newScriptedSession(conv Converser, slept *[]time.Duration, opts ...GenerationOption) *GenerationSession {
	opts = append(opts, WithSleep(func(_ context.Context, d time.Duration) {
		*slept = append(*slept, d)
	}))
	return NewGenerationSession(func() Converser { return conv }, opts...)
}

func testRequest() types.GenerationRequest {
	return types.GenerationRequest{
		Ingredients:  []string{"chicken breast", "butter"},
		Restrictions: []types.DietaryRestriction{types.LowCarb},
	}
}

func TestGenerateSucceedsFirstAttempt(t *testing.T) {
	conv := &scriptedConversation{turns: []scriptedTurn{{text: validRecipeJSON}}}
	var slept []time.Duration
	sess := newScriptedSession(conv, &slept)

	res, err := sess.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Len(t, conv.sent, 1)
	assert.Equal(t, 1, res.Attempts)
	assert.Empty(t, slept)

	require.Len(t, res.Recipes, 1)
	r := res.Recipes[0]
	assert.Equal(t, "Garlic Butter Chicken", r.Name)
	assert.Equal(t, types.DifficultyEasy, r.Difficulty)
	assert.Equal(t, 30, r.CookingTimeMinutes)
	assert.Equal(t, 4, r.Servings)
	assert.NotEmpty(t, r.ID, "decoded recipes get server-assigned ids")

	assert.Equal(t, validRecipeJSON, res.RawText)
	assert.Equal(t, prompt.UserPrompt(testRequest()), res.Prompt)
}

func TestGenerateRetriesDecodeFailures(t *testing.T) {
	// Valid JSON arrives on attempt k; every earlier reply is garbage.
	for k := 1; k <= 3; k++ {
		t.Run(fmt.Sprintf("succeeds on attempt %d", k), func(t *testing.T) {
			var turns []scriptedTurn
			for i := 1; i < k; i++ {
				turns = append(turns, scriptedTurn{text: "Sorry, here are some ideas instead..."})
			}
			turns = append(turns, scriptedTurn{text: validRecipeJSON})

			conv := &scriptedConversation{turns: turns}
			var slept []time.Duration
			sess := newScriptedSession(conv, &slept)

			res, err := sess.Generate(context.Background(), testRequest())
			require.NoError(t, err)

			assert.Len(t, conv.sent, k, "exactly k model calls")
			assert.Equal(t, k, res.Attempts)
			assert.Empty(t, slept, "decode retries never back off")
			assert.Equal(t, validRecipeJSON, res.RawText)
		})
	}
}

func TestGenerateDecodeFailureAfterThreeAttempts(t *testing.T) {
	conv := &scriptedConversation{turns: []scriptedTurn{
		{text: "not json"},
		{text: "{\"recipes\": 42}"},
		{text: "still not json"},
	}}
	var slept []time.Duration
	sess := newScriptedSession(conv, &slept)

	res, err := sess.Generate(context.Background(), testRequest())
	assert.Nil(t, res)
	require.Error(t, err)

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, 3, decErr.Attempts)
	assert.Equal(t, "still not json", decErr.RawText, "carries the last raw response")
	assert.Equal(t, prompt.UserPrompt(testRequest()), decErr.Prompt)

	assert.Len(t, conv.sent, 3, "exactly three model calls")
	assert.Empty(t, slept)
}

func TestGenerateRetriesSamePrompt(t *testing.T) {
	conv := &scriptedConversation{turns: []scriptedTurn{
		{text: "garbage"},
		{err: errors.New("connection reset")},
		{text: validRecipeJSON},
	}}
	var slept []time.Duration
	sess := newScriptedSession(conv, &slept)

	_, err := sess.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, conv.sent, 3)
	assert.Equal(t, conv.sent[0], conv.sent[1])
	assert.Equal(t, conv.sent[1], conv.sent[2], "retries reuse the identical prompt")
}

func TestGenerateBacksOffOnTransportFailures(t *testing.T) {
	conv := &scriptedConversation{turns: []scriptedTurn{
		{err: errors.New("dial tcp: timeout")},
		{err: errors.New("dial tcp: timeout")},
		{text: validRecipeJSON},
	}}
	var slept []time.Duration
	sess := newScriptedSession(conv, &slept)

	res, err := sess.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Attempts)

	// 1s after the first failure, 2s after the second.
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, slept)
}

func TestGenerateTransportFailureExhausted(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	conv := &scriptedConversation{turns: []scriptedTurn{
		{err: cause}, {err: cause}, {err: cause},
		{text: validRecipeJSON},
	}}
	var slept []time.Duration
	sess := newScriptedSession(conv, &slept)

	_, err := sess.Generate(context.Background(), testRequest())
	require.Error(t, err)

	var trErr *TransportError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, 3, trErr.Attempts)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, slept)

	// The conversation is left usable: the next generate succeeds.
	res, err := sess.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Len(t, res.Recipes, 1)
}

func TestGenerateEmptyInput(t *testing.T) {
	conv := &scriptedConversation{}
	var slept []time.Duration
	sess := newScriptedSession(conv, &slept)

	_, err := sess.Generate(context.Background(), types.GenerationRequest{})
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Empty(t, conv.sent, "no network call on empty input")
}

func TestGenerateAssignsUniqueRecipeIDs(t *testing.T) {
	two := `{"recipes": [
		{"recipe_name": "A", "cooking_time_minutes": 10, "difficulty_level": "Easy", "servings": 2},
		{"recipe_name": "B", "cooking_time_minutes": 20, "difficulty_level": "Advanced", "servings": 4}
	]}`
	conv := &scriptedConversation{turns: []scriptedTurn{{text: two}}}
	var slept []time.Duration
	sess := newScriptedSession(conv, &slept)

	res, err := sess.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, res.Recipes, 2)
	assert.NotEmpty(t, res.Recipes[0].ID)
	assert.NotEmpty(t, res.Recipes[1].ID)
	assert.NotEqual(t, res.Recipes[0].ID, res.Recipes[1].ID)
}

func TestResetOpensFreshConversation(t *testing.T) {
	built := 0
	sess := NewGenerationSession(func() Converser {
		built++
		return &scriptedConversation{turns: []scriptedTurn{{text: validRecipeJSON}}}
	})
	assert.Equal(t, 1, built)

	sess.Reset()
	assert.Equal(t, 2, built)

	// Reset is idempotent with respect to external state; calling it again
	// just swaps conversations once more.
	sess.Reset()
	assert.Equal(t, 3, built)

	res, err := sess.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Len(t, res.Recipes, 1)
}

func TestStrictNutritionRejectsIncompleteRecipes(t *testing.T) {
	partial := `{"recipes": [
		{"recipe_name": "Plain Rice", "cooking_time_minutes": 15, "difficulty_level": "Easy",
		 "servings": 2, "nutritional_info": {"calories_per_serving": 200}}
	]}`

	t.Run("lenient default admits it", func(t *testing.T) {
		conv := &scriptedConversation{turns: []scriptedTurn{{text: partial}}}
		var slept []time.Duration
		sess := newScriptedSession(conv, &slept)

		res, err := sess.Generate(context.Background(), testRequest())
		require.NoError(t, err)
		require.Len(t, res.Recipes, 1)
		assert.Nil(t, res.Recipes[0].Nutrition.ProteinGrams)
	})

	t.Run("strict mode rejects it", func(t *testing.T) {
		conv := &scriptedConversation{turns: []scriptedTurn{
			{text: partial}, {text: partial}, {text: partial},
		}}
		var slept []time.Duration
		sess := newScriptedSession(conv, &slept, WithStrictNutrition(true))

		_, err := sess.Generate(context.Background(), testRequest())
		var decErr *DecodeError
		require.ErrorAs(t, err, &decErr)
		assert.Contains(t, decErr.Err.Error(), "nutritional_info")
	})
}
