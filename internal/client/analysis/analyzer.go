// Package analysis calls the external AI service that turns a meal photo or
// description into a NutritionAnalysis.
//
// The service is an opaque collaborator with a documented output schema. The
// client validates nothing beyond JSON shape: free-text fields are accepted
// as-is, and even an off-contract primaryVerdict is stored verbatim (the
// verdict enum's unknown tone handles it downstream).
package analysis

import (
	"context"
	"errors"

	"github.com/drfoodie/nutritrack/internal/client/models"
	"github.com/drfoodie/nutritrack/internal/nutrition"
)

var (
	// ErrNotConfigured means the analysis credential is absent. This is a
	// configuration fault: it disables meal analysis only, never unrelated
	// features.
	ErrNotConfigured = errors.New("analysis service not configured")

	// ErrAnalysisFailed wraps malformed or empty responses. It is retryable;
	// no partial meal entry is created.
	ErrAnalysisFailed = errors.New("analysis failed")
)

// Request is one analysis invocation. At least one of ImageJPEG and
// Description should be set; the profile summary steers the guidance text.
type Request struct {
	ImageJPEG    []byte
	Description  string
	QuantityHint string

	Goals              nutrition.GoalSet
	DailyCalorieTarget int
	HealthConditions   []string
}

// Analyzer produces a nutrition analysis for one meal.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*models.NutritionAnalysis, error)
}
