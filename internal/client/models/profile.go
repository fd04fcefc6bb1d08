// Package models defines the client-side domain types: the user profile and
// the meal log entry with its attached nutrition analysis.
//
// Profile operations are pure value transformations. None of them performs
// I/O; persistence is the sync coordinator's job. Every operation returns a
// new Profile, which keeps comparison and rollback trivial.
package models

import (
	"time"

	"github.com/drfoodie/nutritrack/internal/common"
	"github.com/drfoodie/nutritrack/internal/nutrition"
)

// Theme is the UI color scheme. Non-light themes are a premium entitlement.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeGold  Theme = "gold"
)

// Profile is the single per-session user record. DailyCalorieTarget is
// derived: it is recomputed on every change to a field the energy model
// reads, never hand-edited.
type Profile struct {
	Name               string                  `json:"name"`
	BirthDate          time.Time               `json:"birthDate,omitempty"`
	HeightCm           float64                 `json:"heightCm"`
	WeightKg           float64                 `json:"weightKg"`
	Gender             nutrition.Gender        `json:"gender"`
	ActivityLevel      nutrition.ActivityLevel `json:"activityLevel"`
	Goals              nutrition.GoalSet       `json:"goals"`
	HealthConditions   []string                `json:"healthConditions,omitempty"`
	DailyCalorieTarget int                     `json:"dailyCalorieTarget"`
	OnboardingComplete bool                    `json:"onboardingComplete"`
	Theme              Theme                   `json:"theme"`
	IsPremium          bool                    `json:"isPremium"`
	ScanCount          int                     `json:"scanCount"`
}

// Draft carries the fields collected during onboarding.
type Draft struct {
	Name             string
	BirthDate        time.Time
	HeightCm         float64
	WeightKg         float64
	Gender           nutrition.Gender
	ActivityLevel    nutrition.ActivityLevel
	Goals            nutrition.GoalSet
	HealthConditions []string
}

// Patch is a partial profile edit. Nil fields are left untouched.
type Patch struct {
	Name             *string
	BirthDate        *time.Time
	HeightCm         *float64
	WeightKg         *float64
	Gender           *nutrition.Gender
	ActivityLevel    *nutrition.ActivityLevel
	Goals            *nutrition.GoalSet
	HealthConditions *[]string
}

// NewProfile validates a draft and builds the initial profile: onboarding is
// stamped complete, the calorie target is computed, theme defaults to light,
// the scan counter starts at zero on the free tier.
//
// An incomplete draft is rejected with common.ErrorIncompleteProfile before
// any state exists, so there is never a partially-onboarded profile.
func NewProfile(d Draft, now time.Time) (Profile, error) {
	if d.Name == "" || d.HeightCm <= 0 || d.WeightKg <= 0 ||
		d.Gender == "" || d.ActivityLevel == "" || len(d.Goals) == 0 {
		return Profile{}, common.ErrorIncompleteProfile
	}

	p := Profile{
		Name:               d.Name,
		BirthDate:          d.BirthDate,
		HeightCm:           d.HeightCm,
		WeightKg:           d.WeightKg,
		Gender:             d.Gender,
		ActivityLevel:      d.ActivityLevel,
		Goals:              d.Goals,
		HealthConditions:   d.HealthConditions,
		OnboardingComplete: true,
		Theme:              ThemeLight,
	}
	return p.recompute(now), nil
}

// Update merges patch into p. If the patch touches any field the energy
// model reads, the calorie target is recomputed. The theme-entitlement
// invariant is re-validated either way.
func (p Profile) Update(patch Patch, now time.Time) Profile {
	touched := false

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.BirthDate != nil {
		p.BirthDate = *patch.BirthDate
		touched = true
	}
	if patch.HeightCm != nil {
		p.HeightCm = *patch.HeightCm
		touched = true
	}
	if patch.WeightKg != nil {
		p.WeightKg = *patch.WeightKg
		touched = true
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
		touched = true
	}
	if patch.ActivityLevel != nil {
		p.ActivityLevel = *patch.ActivityLevel
		touched = true
	}
	if patch.Goals != nil && len(*patch.Goals) > 0 {
		p.Goals = *patch.Goals
		touched = true
	}
	if patch.HealthConditions != nil {
		p.HealthConditions = *patch.HealthConditions
	}

	if touched {
		p = p.recompute(now)
	}
	return p.enforceTheme()
}

// ToggleGoal adds goal if absent and removes it if present, except that
// removing the last remaining goal is a no-op: the goal set is never empty.
// The calorie target is recomputed when the set changes.
func (p Profile) ToggleGoal(goal nutrition.Goal, now time.Time) Profile {
	if p.Goals.Contains(goal) {
		if len(p.Goals) == 1 {
			return p
		}
		p.Goals = p.Goals.Remove(goal)
	} else {
		p.Goals = p.Goals.Add(goal)
	}
	return p.recompute(now)
}

// SetTheme applies a theme choice. A non-light theme on a non-premium
// profile is silently coerced to light; no error is raised.
func (p Profile) SetTheme(t Theme) Profile {
	p.Theme = t
	return p.enforceTheme()
}

// GrantPremium flips the premium entitlement on. The current theme choice is
// preserved, even if it is light.
func (p Profile) GrantPremium() Profile {
	p.IsPremium = true
	return p
}

// IncrementScanCount counts one AI scan against the quota.
func (p Profile) IncrementScanCount() Profile {
	p.ScanCount++
	return p
}

// Age returns the profile's age in full years at now, falling back to
// nutrition.DefaultAge when no birth date is recorded.
func (p Profile) Age(now time.Time) int {
	return nutrition.Age(p.BirthDate, now)
}

func (p Profile) recompute(now time.Time) Profile {
	p.DailyCalorieTarget = nutrition.TDEE(
		p.WeightKg, p.HeightCm, p.Age(now), p.Gender, p.ActivityLevel, p.Goals)
	return p
}

func (p Profile) enforceTheme() Profile {
	if p.Theme == "" {
		p.Theme = ThemeLight
	}
	if p.Theme != ThemeLight && !p.IsPremium {
		p.Theme = ThemeLight
	}
	return p
}
