package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drfoodie/nutritrack/internal/common"
	"github.com/drfoodie/nutritrack/internal/nutrition"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func validDraft() Draft {
	return Draft{
		Name:          "Alex",
		BirthDate:     testNow.AddDate(-30, 0, 0),
		HeightCm:      170,
		WeightKg:      70,
		Gender:        nutrition.GenderMale,
		ActivityLevel: nutrition.ActivityModerate,
		Goals:         nutrition.GoalSet{nutrition.GoalMaintain},
	}
}

func TestNewProfile_StampsDefaults(t *testing.T) {
	p, err := NewProfile(validDraft(), testNow)
	require.NoError(t, err)

	assert.True(t, p.OnboardingComplete)
	assert.Equal(t, ThemeLight, p.Theme)
	assert.False(t, p.IsPremium)
	assert.Zero(t, p.ScanCount)
	// round(BMR(70,170,30,male) × 1.55) with maintain contributing nothing
	assert.Equal(t, 2591, p.DailyCalorieTarget)
}

func TestNewProfile_RejectsIncompleteDraft(t *testing.T) {
	tests := []struct {
		name string
		mut  func(d *Draft)
	}{
		{"empty name", func(d *Draft) { d.Name = "" }},
		{"zero height", func(d *Draft) { d.HeightCm = 0 }},
		{"zero weight", func(d *Draft) { d.WeightKg = 0 }},
		{"no gender", func(d *Draft) { d.Gender = "" }},
		{"no activity level", func(d *Draft) { d.ActivityLevel = "" }},
		{"empty goal set", func(d *Draft) { d.Goals = nil }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mut(&d)
			_, err := NewProfile(d, testNow)
			assert.ErrorIs(t, err, common.ErrorIncompleteProfile)
		})
	}
}

func TestUpdate_RecomputesTargetOnEnergyFields(t *testing.T) {
	p, err := NewProfile(validDraft(), testNow)
	require.NoError(t, err)

	w := 80.0
	updated := p.Update(Patch{WeightKg: &w}, testNow)

	assert.Equal(t, 80.0, updated.WeightKg)
	assert.NotEqual(t, p.DailyCalorieTarget, updated.DailyCalorieTarget)
	// original value is untouched
	assert.Equal(t, 70.0, p.WeightKg)
}

func TestUpdate_NameOnlyKeepsTarget(t *testing.T) {
	p, err := NewProfile(validDraft(), testNow)
	require.NoError(t, err)

	name := "Sam"
	updated := p.Update(Patch{Name: &name}, testNow)

	assert.Equal(t, "Sam", updated.Name)
	assert.Equal(t, p.DailyCalorieTarget, updated.DailyCalorieTarget)
}

func TestUpdate_ReenforcesThemeInvariant(t *testing.T) {
	p, err := NewProfile(validDraft(), testNow)
	require.NoError(t, err)
	p.Theme = ThemeGold // simulate a record that lost its entitlement

	updated := p.Update(Patch{}, testNow)
	assert.Equal(t, ThemeLight, updated.Theme)
}

func TestToggleGoal(t *testing.T) {
	p, err := NewProfile(validDraft(), testNow)
	require.NoError(t, err)

	withLose := p.ToggleGoal(nutrition.GoalLose, testNow)
	assert.True(t, withLose.Goals.Contains(nutrition.GoalLose))
	assert.Equal(t, p.DailyCalorieTarget-500, withLose.DailyCalorieTarget)

	backOff := withLose.ToggleGoal(nutrition.GoalLose, testNow)
	assert.Equal(t, p.Goals, backOff.Goals)
	assert.Equal(t, p.DailyCalorieTarget, backOff.DailyCalorieTarget)
}

func TestToggleGoal_LastGoalIsNoOp(t *testing.T) {
	p, err := NewProfile(validDraft(), testNow)
	require.NoError(t, err)
	require.Len(t, p.Goals, 1)

	same := p.ToggleGoal(nutrition.GoalMaintain, testNow)
	assert.Equal(t, p.Goals, same.Goals)

	// property check: no sequence of toggles empties the set
	cur := p
	for _, g := range []nutrition.Goal{
		nutrition.GoalMaintain, nutrition.GoalLose, nutrition.GoalLose,
		nutrition.GoalMaintain, nutrition.GoalMaintain,
	} {
		cur = cur.ToggleGoal(g, testNow)
		assert.NotEmpty(t, cur.Goals)
	}
}

func TestSetTheme_SilentlyCoercesWithoutPremium(t *testing.T) {
	p, err := NewProfile(validDraft(), testNow)
	require.NoError(t, err)

	assert.Equal(t, ThemeLight, p.SetTheme(ThemeDark).Theme)
	assert.Equal(t, ThemeLight, p.SetTheme(ThemeGold).Theme)

	premium := p.GrantPremium()
	assert.Equal(t, ThemeDark, premium.SetTheme(ThemeDark).Theme)
	assert.Equal(t, ThemeGold, premium.SetTheme(ThemeGold).Theme)
}

func TestGrantPremium_PreservesTheme(t *testing.T) {
	p, err := NewProfile(validDraft(), testNow)
	require.NoError(t, err)

	granted := p.GrantPremium()
	assert.True(t, granted.IsPremium)
	assert.Equal(t, ThemeLight, granted.Theme)
}

func TestIncrementScanCount(t *testing.T) {
	p, err := NewProfile(validDraft(), testNow)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		p = p.IncrementScanCount()
		assert.Equal(t, i, p.ScanCount)
	}
}
