package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drfoodie/nutritrack/internal/client/models"
	"github.com/drfoodie/nutritrack/internal/nutrition"
)

func newTestAnalyzer(t *testing.T, handler http.HandlerFunc) *GeminiAnalyzer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewGeminiAnalyzer("test-key", "test-model", time.Second)
	g.baseURL = srv.URL
	return g
}

func candidateResponse(t *testing.T, inner any) []byte {
	t.Helper()
	text, err := json.Marshal(inner)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": string(text)}}}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestAnalyze_NotConfigured(t *testing.T) {
	g := NewGeminiAnalyzer("", "test-model", time.Second)
	_, err := g.Analyze(context.Background(), Request{Description: "toast"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAnalyze_Success(t *testing.T) {
	want := models.NutritionAnalysis{
		FoodName:       "Oatmeal",
		Calories:       320,
		Macros:         &models.Macros{Protein: 12, Carbs: 54, Fat: 6},
		BurnTimeText:   "35 min brisk walk",
		PrimaryVerdict: models.VerdictNeeded,
	}

	g := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "test-model")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Daily target: 2200 kcal")
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		w.Write(candidateResponse(t, want))
	})

	got, err := g.Analyze(context.Background(), Request{
		Description:        "oatmeal with berries",
		Goals:              nutrition.GoalSet{nutrition.GoalMaintain},
		DailyCalorieTarget: 2200,
	})
	require.NoError(t, err)
	assert.Equal(t, &want, got)
}

func TestAnalyze_ImageIsInlined(t *testing.T) {
	g := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var hasImage bool
		for _, p := range req.Contents[0].Parts {
			if p.InlineData != nil {
				hasImage = true
				assert.Equal(t, "image/jpeg", p.InlineData.MimeType)
				assert.NotEmpty(t, p.InlineData.Data)
			}
		}
		assert.True(t, hasImage)

		w.Write(candidateResponse(t, models.NutritionAnalysis{FoodName: "Pizza", Calories: 800}))
	})

	_, err := g.Analyze(context.Background(), Request{ImageJPEG: []byte{0xff, 0xd8, 0xff}})
	require.NoError(t, err)
}

func TestAnalyze_MalformedInnerJSON(t *testing.T) {
	g := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"not json at all"}]}}]}`))
	})

	_, err := g.Analyze(context.Background(), Request{Description: "x"})
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyze_EmptyCandidates(t *testing.T) {
	g := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := g.Analyze(context.Background(), Request{Description: "x"})
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyze_ServiceError(t *testing.T) {
	g := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := g.Analyze(context.Background(), Request{Description: "x"})
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyze_MissingFoodName(t *testing.T) {
	g := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateResponse(t, models.NutritionAnalysis{Calories: 100}))
	})

	_, err := g.Analyze(context.Background(), Request{Description: "x"})
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyze_NegativeCaloriesClamped(t *testing.T) {
	g := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateResponse(t, models.NutritionAnalysis{FoodName: "Weird", Calories: -50}))
	})

	got, err := g.Analyze(context.Background(), Request{Description: "x"})
	require.NoError(t, err)
	assert.Zero(t, got.Calories)
}

func TestAnalyze_OffContractVerdictIsKeptVerbatim(t *testing.T) {
	g := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(candidateResponse(t, models.NutritionAnalysis{
			FoodName:       "Soup",
			Calories:       120,
			PrimaryVerdict: models.Verdict("Kind Of Fine"),
		}))
	})

	got, err := g.Analyze(context.Background(), Request{Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, models.Verdict("Kind Of Fine"), got.PrimaryVerdict)
	assert.Equal(t, models.ToneUnknown, got.PrimaryVerdict.Tone())
}
