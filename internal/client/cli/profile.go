package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/drfoodie/nutritrack/internal/client/billing"
	"github.com/drfoodie/nutritrack/internal/client/models"
	"github.com/drfoodie/nutritrack/internal/client/services"
	"github.com/drfoodie/nutritrack/internal/nutrition"
)

// ShowProfile prints the active profile and the computed daily target.
func (a *App) ShowProfile(ctx context.Context) error {
	p := a.tracker.Profile()
	if p == nil {
		fmt.Println("No profile yet. Run 'onboard' first.")
		return nil
	}

	tier := "free"
	if p.IsPremium {
		tier = "premium"
	}

	fmt.Printf("Name:           %s\n", p.Name)
	fmt.Printf("Height:         %.1f cm\n", p.HeightCm)
	fmt.Printf("Weight:         %.1f kg\n", p.WeightKg)
	fmt.Printf("Gender:         %s\n", p.Gender)
	fmt.Printf("Activity:       %s\n", p.ActivityLevel)
	fmt.Printf("Goals:          %s\n", joinGoalSet(p.Goals))
	if len(p.HealthConditions) > 0 {
		fmt.Printf("Conditions:     %s\n", strings.Join(p.HealthConditions, ", "))
	}
	fmt.Printf("Daily target:   %d kcal\n", p.DailyCalorieTarget)
	fmt.Printf("Theme:          %s\n", p.Theme)
	fmt.Printf("Tier:           %s\n", tier)
	return nil
}

// EditProfile updates the biometric fields. Empty answers keep the current
// values; the daily target is recomputed when anything changed.
func (a *App) EditProfile(ctx context.Context) error {
	p := a.tracker.Profile()
	if p == nil {
		fmt.Println("No profile yet. Run 'onboard' first.")
		return nil
	}

	height, err := GetNumber(a.reader, fmt.Sprintf("Height (cm, current %.1f)", p.HeightCm), p.HeightCm, os.Stdout)
	if err != nil {
		return err
	}
	weight, err := GetNumber(a.reader, fmt.Sprintf("Weight (kg, current %.1f)", p.WeightKg), p.WeightKg, os.Stdout)
	if err != nil {
		return err
	}
	activity, err := GetChoice(a.reader, "Activity level",
		[]string{string(nutrition.ActivitySedentary), string(nutrition.ActivityLight),
			string(nutrition.ActivityModerate), string(nutrition.ActivityVery)},
		string(p.ActivityLevel), os.Stdout)
	if err != nil {
		return err
	}

	level := nutrition.ActivityLevel(activity)
	updated, err := a.tracker.UpdateProfile(ctx, models.Patch{
		HeightCm:      &height,
		WeightKg:      &weight,
		ActivityLevel: &level,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Saved. Daily target is now %d kcal.\n", updated.DailyCalorieTarget)
	return nil
}

// ToggleGoal flips one goal's membership. The last remaining goal cannot be
// removed.
func (a *App) ToggleGoal(ctx context.Context) error {
	p := a.tracker.Profile()
	if p == nil {
		fmt.Println("No profile yet. Run 'onboard' first.")
		return nil
	}

	choice, err := GetChoice(a.reader, "Toggle goal",
		[]string{string(nutrition.GoalLose), string(nutrition.GoalMaintain),
			string(nutrition.GoalGain), string(nutrition.GoalBuildMuscle)},
		"", os.Stdout)
	if err != nil {
		return err
	}
	if choice == "" {
		return nil
	}

	goal := nutrition.Goal(choice)
	had := p.Goals.Contains(goal)

	updated, err := a.tracker.ToggleGoal(ctx, goal)
	if err != nil {
		return err
	}

	if had && updated.Goals.Contains(goal) {
		fmt.Println("At least one goal must remain.")
		return nil
	}
	fmt.Printf("Goals: %s. Daily target is now %d kcal.\n", joinGoalSet(updated.Goals), updated.DailyCalorieTarget)
	return nil
}

// SetTheme switches the color scheme. Dark and gold need the premium tier;
// without it the choice falls back to light.
func (a *App) SetTheme(ctx context.Context) error {
	choice, err := GetChoice(a.reader, "Theme",
		[]string{string(models.ThemeLight), string(models.ThemeDark), string(models.ThemeGold)},
		string(models.ThemeLight), os.Stdout)
	if err != nil {
		return err
	}

	updated, err := a.tracker.SetTheme(ctx, models.Theme(choice))
	if err != nil {
		if errors.Is(err, services.ErrNoProfile) {
			fmt.Println("No profile yet. Run 'onboard' first.")
			return nil
		}
		return err
	}

	if string(updated.Theme) != choice {
		fmt.Println("That theme needs premium. Staying on", updated.Theme)
		return nil
	}
	fmt.Println("Theme set to", updated.Theme)
	return nil
}

// promptCheckout is the interactive stand-in for a payment flow: the user
// confirms or cancels the purchase at the prompt.
type promptCheckout struct {
	app *App
}

func (c promptCheckout) Run(ctx context.Context) error {
	answer, err := getSimpleText(c.app.reader, "Purchase premium? (yes/no)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" && answer != "y" {
		return billing.ErrCheckoutCancelled
	}
	return nil
}

// Upgrade runs the checkout flow and, on success, unlocks unlimited scans
// and the premium themes.
func (a *App) Upgrade(ctx context.Context) error {
	_, err := a.tracker.Upgrade(ctx, promptCheckout{app: a})
	if err != nil {
		if errors.Is(err, billing.ErrCheckoutCancelled) {
			fmt.Println("Purchase cancelled.")
			return nil
		}
		if errors.Is(err, services.ErrNoProfile) {
			fmt.Println("No profile yet. Run 'onboard' first.")
			return nil
		}
		return err
	}

	fmt.Println("You are premium now: unlimited scans, all themes unlocked.")
	return nil
}

func joinGoalSet(goals nutrition.GoalSet) string {
	parts := make([]string, len(goals))
	for i, g := range goals {
		parts[i] = string(g)
	}
	return strings.Join(parts, ", ")
}
