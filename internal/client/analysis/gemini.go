package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/drfoodie/nutritrack/internal/client/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// GeminiAnalyzer implements Analyzer over the Gemini generateContent REST
// API, asking for a raw-JSON response matching the NutritionAnalysis schema.
type GeminiAnalyzer struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewGeminiAnalyzer builds an analyzer. An empty apiKey is allowed; every
// Analyze call will then return ErrNotConfigured.
func NewGeminiAnalyzer(apiKey, model string, timeout time.Duration) *GeminiAnalyzer {
	return &GeminiAnalyzer{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiAnalyzer) Analyze(ctx context.Context, req Request) (*models.NutritionAnalysis, error) {
	if g.apiKey == "" {
		return nil, ErrNotConfigured
	}

	parts := []geminiPart{{Text: buildPrompt(req)}}
	if req.Description != "" {
		parts = append(parts, geminiPart{Text: "Description: " + req.Description})
	}
	if req.QuantityHint != "" {
		parts = append(parts, geminiPart{Text: "Quantity: " + req.QuantityHint})
	}
	if len(req.ImageJPEG) > 0 {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: "image/jpeg",
			Data:     base64.StdEncoding.EncodeToString(req.ImageJPEG),
		}})
	}

	payload, err := json.Marshal(geminiRequest{
		Contents:         []geminiContent{{Parts: parts}},
		GenerationConfig: geminiGenerationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: service returned %s", ErrAnalysisFailed, resp.Status)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrAnalysisFailed)
	}

	var analysis models.NutritionAnalysis
	if err := json.Unmarshal([]byte(out.Candidates[0].Content.Parts[0].Text), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	if analysis.FoodName == "" {
		return nil, fmt.Errorf("%w: missing food name", ErrAnalysisFailed)
	}
	if analysis.Calories < 0 {
		analysis.Calories = 0
	}

	return &analysis, nil
}

// buildPrompt mirrors the schema contract: JSON-only output with the fixed
// verdict label set.
func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Analyze this meal log for a user.\n")
	fmt.Fprintf(&b, "Goals: %s. Daily target: %d kcal.\n", joinGoals(req), req.DailyCalorieTarget)
	if len(req.HealthConditions) > 0 {
		fmt.Fprintf(&b, "Health conditions: %s.\n", strings.Join(req.HealthConditions, ", "))
	}
	b.WriteString(`Provide a JSON object with:
1. foodName (string)
2. calories (number)
3. macros {protein, carbs, fat} (all numbers, grams)
4. burnTimeText (e.g. "24 min brisk walk")
5. primaryVerdict (one of: "Needed for Body", "Not Needed for Body", "Dangerous for Body", "Useless for Body", "High Calorie Count", "Very Unhealthy", "High Chemicals")
6. secondaryVerdicts (array of strings)
7. goalAlignmentText (string)
8. portionGuidance (string)
9. frequencyGuidance (string)
10. risks (array of strings)
11. allergens (array of strings)
Return raw JSON only, no markdown.`)
	return b.String()
}

func joinGoals(req Request) string {
	if len(req.Goals) == 0 {
		return "maintain"
	}
	parts := make([]string, len(req.Goals))
	for i, g := range req.Goals {
		parts[i] = string(g)
	}
	return strings.Join(parts, ", ")
}
