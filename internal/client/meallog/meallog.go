// Package meallog holds the pure operations over the in-memory meal log:
// prepend-ordered insertion, removal, and calendar-day aggregation.
//
// The log is ordered newest-first and insertion order IS display order; no
// function here re-sorts. Day windows are local midnight-to-midnight in the
// reference instant's location, so two devices in different timezones may
// disagree about "today" over the same log. That is accepted behavior.
package meallog

import (
	"math"
	"time"

	"github.com/drfoodie/nutritrack/internal/client/models"
)

// Append prepends e to the log. It does not deduplicate by id; identifiers
// are generated at creation and the caller guarantees uniqueness.
func Append(log []models.MealEntry, e models.MealEntry) []models.MealEntry {
	out := make([]models.MealEntry, 0, len(log)+1)
	out = append(out, e)
	return append(out, log...)
}

// Remove filters out the entry with the given id. Removing an id that is not
// present is a no-op, not an error.
func Remove(log []models.MealEntry, id string) []models.MealEntry {
	out := make([]models.MealEntry, 0, len(log))
	for _, e := range log {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// DailyCalories sums the calorie counts of entries that fall on the same
// calendar day as ref, in ref's location. Missing calorie values contribute
// zero. Pure function of (log, ref).
func DailyCalories(log []models.MealEntry, ref time.Time) int {
	var total float64
	for _, e := range log {
		if sameDay(e.Time(ref.Location()), ref) {
			total += e.Analysis.Calories
		}
	}
	return int(math.Round(total))
}

// DailyMealCount counts entries on the same calendar day as ref.
func DailyMealCount(log []models.MealEntry, ref time.Time) int {
	n := 0
	for _, e := range log {
		if sameDay(e.Time(ref.Location()), ref) {
			n++
		}
	}
	return n
}

// Recent returns the first n entries of the newest-first ordering. It
// returns the whole log when n exceeds its length.
func Recent(log []models.MealEntry, n int) []models.MealEntry {
	if n < 0 {
		n = 0
	}
	if n > len(log) {
		n = len(log)
	}
	return log[:n]
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
