package models

import "time"

// MealType slots a logged meal into the day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Verdict is the closed set of categorical judgments the analysis service
// attaches to a meal. The labels are part of the external contract and must
// match the service output byte for byte.
type Verdict string

const (
	VerdictNeeded        Verdict = "Needed for Body"
	VerdictNotNeeded     Verdict = "Not Needed for Body"
	VerdictDangerous     Verdict = "Dangerous for Body"
	VerdictUseless       Verdict = "Useless for Body"
	VerdictHighCalorie   Verdict = "High Calorie Count"
	VerdictVeryUnhealthy Verdict = "Very Unhealthy"
	VerdictHighChemicals Verdict = "High Chemicals"
)

// VerdictTone classifies a verdict for presentation. Unrecognized verdict
// values get their own explicit tone rather than silently falling through to
// one of the known buckets.
type VerdictTone string

const (
	ToneGood    VerdictTone = "good"
	ToneNeutral VerdictTone = "neutral"
	ToneWarning VerdictTone = "warning"
	ToneDanger  VerdictTone = "danger"
	ToneUnknown VerdictTone = "unknown"
)

// Tone maps a verdict to its display tone with an exhaustive switch over the
// closed set.
func (v Verdict) Tone() VerdictTone {
	switch v {
	case VerdictNeeded:
		return ToneGood
	case VerdictNotNeeded, VerdictUseless:
		return ToneNeutral
	case VerdictHighCalorie, VerdictHighChemicals:
		return ToneWarning
	case VerdictDangerous, VerdictVeryUnhealthy:
		return ToneDanger
	default:
		return ToneUnknown
	}
}

// Macros is the gram breakdown of a meal.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// NutritionAnalysis is the result of one AI scan. It is produced externally
// and treated as an immutable value once attached to a meal entry. Only
// PrimaryVerdict is expected to come from a closed set; everything else is
// free text from the analysis service.
type NutritionAnalysis struct {
	FoodName          string   `json:"foodName"`
	Calories          float64  `json:"calories"`
	Macros            *Macros  `json:"macros,omitempty"`
	BurnTimeText      string   `json:"burnTimeText"`
	PrimaryVerdict    Verdict  `json:"primaryVerdict"`
	SecondaryVerdicts []string `json:"secondaryVerdicts"`
	GoalAlignmentText string   `json:"goalAlignmentText"`
	PortionGuidance   string   `json:"portionGuidance"`
	FrequencyGuidance string   `json:"frequencyGuidance"`
	Risks             []string `json:"risks"`
	Allergens         []string `json:"allergens"`
}

// MealEntry is one logged meal. ID and Timestamp are immutable once created;
// the identifier is generated at creation and never reused.
type MealEntry struct {
	ID           string            `json:"id"`
	Timestamp    int64             `json:"timestamp"` // epoch milliseconds
	Type         MealType          `json:"type"`
	ImageRef     string            `json:"imageRef,omitempty"`
	Description  string            `json:"description,omitempty"`
	QuantityHint string            `json:"quantityHint,omitempty"`
	Analysis     NutritionAnalysis `json:"analysis"`
}

// Time returns the entry's creation instant in loc.
func (e MealEntry) Time(loc *time.Location) time.Time {
	return time.UnixMilli(e.Timestamp).In(loc)
}
