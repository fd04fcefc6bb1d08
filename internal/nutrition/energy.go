package nutrition

import (
	"math"
	"time"
)

// DefaultAge is used when a profile has no date of birth.
const DefaultAge = 30

// activityMultipliers maps activity levels to their TDEE multiplier. This is
// the single source of truth for valid activity levels.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary: 1.2,
	ActivityLight:     1.375,
	ActivityModerate:  1.55,
	ActivityVery:      1.725,
}

// goalDeltas maps each goal to its calorie adjustment. Deltas for goals
// present in a set are summed, so simultaneous goals compose additively.
var goalDeltas = map[Goal]float64{
	GoalLose:        -500,
	GoalMaintain:    0,
	GoalGain:        +300,
	GoalBuildMuscle: +500,
}

// Age returns full calendar years between birthDate and now, accounting for
// whether the birthday has passed this year. A zero birthDate yields
// DefaultAge; a birthDate in the future yields 0.
func Age(birthDate, now time.Time) int {
	if birthDate.IsZero() {
		return DefaultAge
	}
	years := now.Year() - birthDate.Year()
	if now.Before(birthDate.AddDate(years, 0, 0)) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// BMR computes the Basal Metabolic Rate in kcal/day using the revised
// Harris-Benedict equations. Male uses one coefficient set; female and other
// use the second.
//
// BMR never fails: non-finite or negative inputs are coerced to zero first,
// so garbage in produces a nonsensical-but-defined number out. Validation is
// the caller's job.
func BMR(weightKg, heightCm float64, ageYears int, gender Gender) float64 {
	weightKg = sanitize(weightKg)
	heightCm = sanitize(heightCm)
	if ageYears < 0 {
		ageYears = 0
	}
	age := float64(ageYears)

	if gender == GenderMale {
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*age
	}
	return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*age
}

// ActivityMultiplier returns the TDEE multiplier for level. Unknown levels
// fall back to the sedentary 1.2 floor.
func ActivityMultiplier(level ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return 1.2
}

// GoalDelta returns the calorie adjustment for a single goal. Unknown goals
// contribute nothing.
func GoalDelta(g Goal) float64 {
	return goalDeltas[g]
}

// TDEE computes the daily calorie target:
//
//	round(BMR × activity multiplier + Σ goal deltas)
//
// Like BMR it never fails; it only produces a possibly-nonsensical result on
// garbage input.
func TDEE(weightKg, heightCm float64, ageYears int, gender Gender, level ActivityLevel, goals GoalSet) int {
	total := BMR(weightKg, heightCm, ageYears, gender) * ActivityMultiplier(level)
	for _, g := range goals {
		total += GoalDelta(g)
	}
	return int(math.Round(total))
}

// sanitize coerces NaN, infinities and negative values to 0 so the formulas
// stay total.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
