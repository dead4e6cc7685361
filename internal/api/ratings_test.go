package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrio/backend/internal/types"
)

// generateRecipes runs one generation and returns the recipe IDs.
func generateRecipes(t *testing.T, ts *testServer, token string) []string {
	t.Helper()

	w := ts.request(t, http.MethodPost, "/api/v1/recipes/generate", token, GenerateRequest{
		Ingredients: []string{"chicken", "rice"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result types.GenerationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	ids := make([]string, 0, len(result.Recipes))
	for _, r := range result.Recipes {
		ids = append(ids, r.ID)
	}
	return ids
}

func rate(t *testing.T, ts *testServer, token, recipeID string, stars int) {
	t.Helper()
	w := ts.request(t, http.MethodPost, "/api/v1/recipes/"+recipeID+"/rating", token, RateRequest{Stars: stars})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRatingStatistics(t *testing.T) {
	ts := newTestServer(t, scriptedTurn{text: recipesPayload})
	token := ts.createSession(t)

	// Two generations produce four distinct recipes.
	first := generateRecipes(t, ts, token)
	second := generateRecipes(t, ts, token)

	rate(t, ts, token, first[0], 3)
	rate(t, ts, token, first[1], 4)
	rate(t, ts, token, second[0], 4)
	rate(t, ts, token, second[1], 5)

	w := ts.request(t, http.MethodGet, "/api/v1/ratings/statistics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(4), body["count"])
	assert.Equal(t, float64(4.0), body["average"])

	dist := body["distribution"].(map[string]interface{})
	assert.Equal(t, float64(1), dist["3"])
	assert.Equal(t, float64(2), dist["4"])
	assert.Equal(t, float64(1), dist["5"])
	assert.NotContains(t, dist, "1")
	assert.NotContains(t, dist, "2")
}

func TestRatingStatisticsEmpty(t *testing.T) {
	ts := newTestServer(t, scriptedTurn{text: recipesPayload})
	token := ts.createSession(t)

	w := ts.request(t, http.MethodGet, "/api/v1/ratings/statistics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, float64(0), body["average"])
	assert.Empty(t, body["distribution"])
}

func TestRatingHistory(t *testing.T) {
	ts := newTestServer(t, scriptedTurn{text: recipesPayload})
	token := ts.createSession(t)

	ids := generateRecipes(t, ts, token)
	rate(t, ts, token, ids[0], 3)
	rate(t, ts, token, ids[1], 5)

	t.Run("most recent first", func(t *testing.T) {
		w := ts.request(t, http.MethodGet, "/api/v1/ratings/history", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			History []types.HistoryEntry `json:"history"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.History, 2)
		assert.Equal(t, ids[1], body.History[0].Recipe.ID)
		assert.Equal(t, ids[0], body.History[1].Recipe.ID)
	})

	t.Run("limit caps entries", func(t *testing.T) {
		w := ts.request(t, http.MethodGet, "/api/v1/ratings/history?limit=1", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			History []types.HistoryEntry `json:"history"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.History, 1)
		assert.Equal(t, ids[1], body.History[0].Recipe.ID)
	})

	t.Run("limit larger than history", func(t *testing.T) {
		w := ts.request(t, http.MethodGet, "/api/v1/ratings/history?limit=50", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			History []types.HistoryEntry `json:"history"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.History, 2)
	})

	t.Run("bad limit", func(t *testing.T) {
		for _, limit := range []string{"abc", "-1"} {
			w := ts.request(t, http.MethodGet, "/api/v1/ratings/history?limit="+limit, token, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", limit)
		}
	})
}

func TestClearRatings(t *testing.T) {
	ts := newTestServer(t, scriptedTurn{text: recipesPayload})
	token := ts.createSession(t)

	ids := generateRecipes(t, ts, token)
	rate(t, ts, token, ids[0], 5)

	w := ts.request(t, http.MethodDelete, "/api/v1/ratings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"cleared"}`, w.Body.String())

	w = ts.request(t, http.MethodGet, "/api/v1/ratings/statistics", token, nil)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["count"])

	w = ts.request(t, http.MethodGet, "/api/v1/recipes/"+ids[0]+"/rating", token, nil)
	var rating RatingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rating))
	assert.Equal(t, 0, rating.Stars)
}
