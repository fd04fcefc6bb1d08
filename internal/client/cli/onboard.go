package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/drfoodie/nutritrack/internal/client/models"
	"github.com/drfoodie/nutritrack/internal/nutrition"
)

const birthDateLayout = "2006-01-02"

// Onboard walks the user through the profile questionnaire and activates the
// profile. Running it again replaces the existing profile.
func (a *App) Onboard(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Your name", os.Stdout)
	if err != nil {
		return err
	}

	birthText, err := getSimpleText(a.reader, "Date of birth (YYYY-MM-DD, empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	var birthDate time.Time
	if birthText != "" {
		birthDate, err = time.Parse(birthDateLayout, birthText)
		if err != nil {
			fmt.Println("Unrecognized date, age will default to", nutrition.DefaultAge)
			birthDate = time.Time{}
		}
	}

	height, err := GetNumber(a.reader, "Height (cm)", 0, os.Stdout)
	if err != nil {
		return err
	}
	weight, err := GetNumber(a.reader, "Weight (kg)", 0, os.Stdout)
	if err != nil {
		return err
	}

	gender, err := GetChoice(a.reader, "Gender",
		[]string{string(nutrition.GenderMale), string(nutrition.GenderFemale), string(nutrition.GenderOther)},
		string(nutrition.GenderOther), os.Stdout)
	if err != nil {
		return err
	}

	activity, err := GetChoice(a.reader, "Activity level",
		[]string{string(nutrition.ActivitySedentary), string(nutrition.ActivityLight),
			string(nutrition.ActivityModerate), string(nutrition.ActivityVery)},
		string(nutrition.ActivityModerate), os.Stdout)
	if err != nil {
		return err
	}

	goals, err := askGoals(a, os.Stdout)
	if err != nil {
		return err
	}

	condText, err := getSimpleText(a.reader, "Health conditions, comma separated (empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	p, err := a.tracker.Onboard(ctx, models.Draft{
		Name:             name,
		BirthDate:        birthDate,
		HeightCm:         height,
		WeightKg:         weight,
		Gender:           nutrition.Gender(gender),
		ActivityLevel:    nutrition.ActivityLevel(activity),
		Goals:            goals,
		HealthConditions: splitList(condText),
	})
	if err != nil {
		fmt.Println("Could not complete onboarding:", err.Error())
		return err
	}

	fmt.Printf("Welcome, %s! Your daily target is %d kcal.\n", p.Name, p.DailyCalorieTarget)
	return nil
}

// askGoals collects at least one goal.
func askGoals(a *App, w *os.File) (nutrition.GoalSet, error) {
	known := []nutrition.Goal{nutrition.GoalLose, nutrition.GoalMaintain, nutrition.GoalGain, nutrition.GoalBuildMuscle}

	for {
		text, err := getSimpleText(a.reader,
			"Goals, comma separated (lose, maintain, gain, build_muscle)", w)
		if err != nil {
			return nil, err
		}

		var goals nutrition.GoalSet
		for _, part := range splitList(text) {
			for _, g := range known {
				if strings.EqualFold(part, string(g)) {
					goals = goals.Add(g)
				}
			}
		}
		if len(goals) > 0 {
			return goals, nil
		}
		fmt.Fprintln(w, "Pick at least one goal.")
	}
}

func splitList(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
