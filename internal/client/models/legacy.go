package models

import (
	"encoding/json"
	"time"

	"github.com/drfoodie/nutritrack/internal/nutrition"
)

// Earlier releases stored the profile in several incompatible shapes: an
// integer age instead of a birth date, a single goal label instead of a goal
// set, and no activity level, theme or scan counter at all. DecodeProfile
// reads any of them into the one canonical schema.
//
// Defaulting rules: missing activity level becomes moderate, a missing or
// empty goal set becomes {maintain}, missing theme becomes light, and an
// age-only record is approximated as a birth date that many years before
// now. The calorie target is recomputed after migration so legacy targets
// are never trusted.

// legacyGoalLabels maps the display labels older records stored to the
// canonical goal enum.
var legacyGoalLabels = map[string]nutrition.Goal{
	"Lose Weight":     nutrition.GoalLose,
	"Maintain Weight": nutrition.GoalMaintain,
	"Gain Weight":     nutrition.GoalGain,
	"Build Muscle":    nutrition.GoalBuildMuscle,
}

// legacyActivityLabels maps older display labels to the canonical enum.
var legacyActivityLabels = map[string]nutrition.ActivityLevel{
	"Sedentary":         nutrition.ActivitySedentary,
	"Lightly Active":    nutrition.ActivityLight,
	"Moderately Active": nutrition.ActivityModerate,
	"Very Active":       nutrition.ActivityVery,
}

type profileDoc struct {
	Name               string            `json:"name"`
	BirthDate          *time.Time        `json:"birthDate"`
	Age                *int              `json:"age"`
	HeightCm           float64           `json:"heightCm"`
	Height             float64           `json:"height"`
	WeightKg           float64           `json:"weightKg"`
	Weight             float64           `json:"weight"`
	Gender             string            `json:"gender"`
	ActivityLevel      string            `json:"activityLevel"`
	Goals              nutrition.GoalSet `json:"goals"`
	Goal               json.RawMessage   `json:"goal"`
	HealthConditions   []string          `json:"healthConditions"`
	DailyCalorieTarget int               `json:"dailyCalorieTarget"`
	OnboardingComplete bool              `json:"onboardingComplete"`
	Theme              string            `json:"theme"`
	IsPremium          bool              `json:"isPremium"`
	ScanCount          int               `json:"scanCount"`
}

// DecodeProfile unmarshals a stored profile document, migrating legacy
// shapes to the canonical schema and recomputing the calorie target.
func DecodeProfile(data []byte, now time.Time) (Profile, error) {
	var doc profileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Profile{}, err
	}

	p := Profile{
		Name:               doc.Name,
		HeightCm:           doc.HeightCm,
		WeightKg:           doc.WeightKg,
		Gender:             canonicalGender(doc.Gender),
		Goals:              doc.Goals,
		HealthConditions:   doc.HealthConditions,
		OnboardingComplete: doc.OnboardingComplete,
		IsPremium:          doc.IsPremium,
		ScanCount:          doc.ScanCount,
		Theme:              Theme(doc.Theme),
	}

	if p.HeightCm == 0 {
		p.HeightCm = doc.Height
	}
	if p.WeightKg == 0 {
		p.WeightKg = doc.Weight
	}

	if doc.BirthDate != nil {
		p.BirthDate = *doc.BirthDate
	} else if doc.Age != nil {
		// age-only record: approximate a birth date so the age stays stable
		p.BirthDate = now.AddDate(-*doc.Age, 0, 0)
	}

	p.ActivityLevel = canonicalActivity(doc.ActivityLevel)

	if len(p.Goals) == 0 {
		p.Goals = legacyGoals(doc.Goal)
	}
	if len(p.Goals) == 0 {
		p.Goals = nutrition.GoalSet{nutrition.GoalMaintain}
	}

	if p.ScanCount < 0 {
		p.ScanCount = 0
	}

	return p.recompute(now).enforceTheme(), nil
}

func canonicalGender(s string) nutrition.Gender {
	switch s {
	case "male", "Male":
		return nutrition.GenderMale
	case "female", "Female":
		return nutrition.GenderFemale
	default:
		return nutrition.GenderOther
	}
}

func canonicalActivity(s string) nutrition.ActivityLevel {
	if s == "" {
		return nutrition.ActivityModerate
	}
	if lvl, ok := legacyActivityLabels[s]; ok {
		return lvl
	}
	switch lvl := nutrition.ActivityLevel(s); lvl {
	case nutrition.ActivitySedentary, nutrition.ActivityLight,
		nutrition.ActivityModerate, nutrition.ActivityVery:
		return lvl
	}
	return nutrition.ActivityModerate
}

// legacyGoals reads the old "goal" key, which held either one label string
// or an array of label strings.
func legacyGoals(raw json.RawMessage) nutrition.GoalSet {
	if len(raw) == 0 {
		return nil
	}

	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return appendLegacyGoal(nil, one)
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		var out nutrition.GoalSet
		for _, label := range many {
			out = appendLegacyGoal(out, label)
		}
		return out
	}

	return nil
}

func appendLegacyGoal(s nutrition.GoalSet, label string) nutrition.GoalSet {
	if g, ok := legacyGoalLabels[label]; ok {
		return s.Add(g)
	}
	switch g := nutrition.Goal(label); g {
	case nutrition.GoalLose, nutrition.GoalMaintain,
		nutrition.GoalGain, nutrition.GoalBuildMuscle:
		return s.Add(g)
	}
	return s
}
