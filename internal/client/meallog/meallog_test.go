package meallog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drfoodie/nutritrack/internal/client/models"
)

func entryAt(id string, ts time.Time, calories float64) models.MealEntry {
	return models.MealEntry{
		ID:        id,
		Timestamp: ts.UnixMilli(),
		Type:      models.MealLunch,
		Analysis:  models.NutritionAnalysis{FoodName: "food " + id, Calories: calories},
	}
}

func TestAppend_Prepends(t *testing.T) {
	now := time.Now()
	var log []models.MealEntry

	log = Append(log, entryAt("a", now, 100))
	log = Append(log, entryAt("b", now, 200))

	require.Len(t, log, 2)
	assert.Equal(t, "b", log[0].ID)
	assert.Equal(t, "a", log[1].ID)
}

func TestAppendThenRemove_RoundTrips(t *testing.T) {
	now := time.Now()
	orig := []models.MealEntry{entryAt("a", now, 100), entryAt("b", now, 200)}

	withC := Append(orig, entryAt("c", now, 300))
	back := Remove(withC, "c")

	assert.Equal(t, orig, back)
}

func TestRemove_MissingIDIsNoOp(t *testing.T) {
	now := time.Now()
	log := []models.MealEntry{entryAt("a", now, 100)}

	assert.Equal(t, log, Remove(log, "nope"))
	assert.Empty(t, Remove(nil, "nope"))
}

func TestDailyCalories(t *testing.T) {
	loc := time.FixedZone("test", 3*3600)
	today := time.Date(2026, 8, 29, 14, 0, 0, 0, loc)
	yesterday := today.AddDate(0, 0, -1)

	log := []models.MealEntry{
		entryAt("1", today.Add(-2*time.Hour), 300),
		entryAt("2", today.Add(-1*time.Hour), 450),
		entryAt("3", today, 200),
		entryAt("4", yesterday, 800),
	}

	assert.Equal(t, 950, DailyCalories(log, today))
	assert.Equal(t, 3, DailyMealCount(log, today))
	assert.Equal(t, 800, DailyCalories(log, yesterday))
	assert.Equal(t, 1, DailyMealCount(log, yesterday))
}

func TestDailyCalories_EmptyLog(t *testing.T) {
	now := time.Now()
	assert.Zero(t, DailyCalories(nil, now))
	assert.Zero(t, DailyMealCount(nil, now))
	assert.Empty(t, Recent(nil, 5))
}

func TestDailyCalories_MidnightBoundary(t *testing.T) {
	loc := time.FixedZone("test", 0)
	midnight := time.Date(2026, 8, 29, 0, 0, 0, 0, loc)

	log := []models.MealEntry{
		entryAt("before", midnight.Add(-time.Minute), 500),
		entryAt("at", midnight, 300),
	}

	assert.Equal(t, 300, DailyCalories(log, midnight.Add(6*time.Hour)))
}

func TestDailyCalories_MissingCaloriesCountAsZero(t *testing.T) {
	now := time.Now()
	log := []models.MealEntry{
		entryAt("a", now, 0),
		entryAt("b", now, 120),
	}
	assert.Equal(t, 120, DailyCalories(log, now))
}

func TestDailyCalories_Stable(t *testing.T) {
	now := time.Now()
	log := []models.MealEntry{entryAt("a", now, 123.4), entryAt("b", now, 76.6)}

	first := DailyCalories(log, now)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, DailyCalories(log, now))
	}
	assert.Equal(t, 200, first)
}

func TestRecent(t *testing.T) {
	now := time.Now()
	log := []models.MealEntry{
		entryAt("c", now, 1), entryAt("b", now, 2), entryAt("a", now, 3),
	}

	top2 := Recent(log, 2)
	require.Len(t, top2, 2)
	assert.Equal(t, "c", top2[0].ID)
	assert.Equal(t, "b", top2[1].ID)

	assert.Len(t, Recent(log, 10), 3)
	assert.Empty(t, Recent(log, 0))
	assert.Empty(t, Recent(log, -1))
}
