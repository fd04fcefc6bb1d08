package services

import (
	"time"

	"github.com/drfoodie/nutritrack/internal/client/meallog"
	"github.com/drfoodie/nutritrack/internal/client/models"
	"github.com/drfoodie/nutritrack/internal/client/quota"
)

// DaySummary is the UI-ready view of one calendar day: consumed calories
// against the computed target, plus the most recent entries for display.
type DaySummary struct {
	ConsumedKcal  int
	TargetKcal    int
	RemainingKcal int
	MealCount     int
	Recent        []models.MealEntry
	QuotaState    quota.State
	ScansLeft     int
}

// recentLimit caps the dashboard meal list.
const recentLimit = 10

// DailySummary derives the day view for the calendar day containing ref, in
// ref's location. With no profile the target is zero and everything else
// still works, so local meal viewing stays usable even when onboarding or
// configuration is broken.
func (t *Tracker) DailySummary(ref time.Time) DaySummary {
	s := DaySummary{
		ConsumedKcal: meallog.DailyCalories(t.meals, ref),
		MealCount:    meallog.DailyMealCount(t.meals, ref),
		Recent:       meallog.Recent(t.meals, recentLimit),
	}

	if t.profile != nil {
		s.TargetKcal = t.profile.DailyCalorieTarget
		s.QuotaState = quota.StateOf(*t.profile)
		if s.QuotaState == quota.Premium {
			s.ScansLeft = -1 // unlimited
		} else if left := quota.FreeScanLimit - t.profile.ScanCount; left > 0 {
			s.ScansLeft = left
		}
	}
	s.RemainingKcal = s.TargetKcal - s.ConsumedKcal
	return s
}
