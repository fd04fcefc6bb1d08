package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/drfoodie/nutritrack/internal/client/analysis"
	"github.com/drfoodie/nutritrack/internal/client/models"
	"github.com/drfoodie/nutritrack/internal/client/quota"
	"github.com/drfoodie/nutritrack/internal/client/services"
)

// LogMeal collects meal input, runs the analysis and stores the entry.
// A photo is optional; description alone is enough.
func (a *App) LogMeal(ctx context.Context) error {
	mealType, err := GetChoice(a.reader, "Meal",
		[]string{string(models.MealBreakfast), string(models.MealLunch),
			string(models.MealDinner), string(models.MealSnack)},
		string(models.MealSnack), os.Stdout)
	if err != nil {
		return err
	}

	imagePath, err := getSimpleText(a.reader, "Photo path (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	var image []byte
	if imagePath != "" {
		image, err = os.ReadFile(imagePath)
		if err != nil {
			fmt.Println("Could not read photo:", err.Error())
			return err
		}
	}

	description, err := getSimpleText(a.reader, "Describe the meal", os.Stdout)
	if err != nil {
		return err
	}
	quantity, err := getSimpleText(a.reader, "Quantity hint (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println("Analyzing...")
	entry, err := a.tracker.LogMeal(ctx, services.MealInput{
		Type:         models.MealType(mealType),
		ImageJPEG:    image,
		ImageRef:     imagePath,
		Description:  description,
		QuantityHint: quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrScanLimitReached):
			fmt.Printf("You used all %d free scans. Run 'upgrade' for unlimited scans.\n", quota.FreeScanLimit)
		case errors.Is(err, services.ErrNoProfile):
			fmt.Println("No profile yet. Run 'onboard' first.")
		case errors.Is(err, analysis.ErrNotConfigured):
			fmt.Println("Analysis is not configured: set GEMINI_API_KEY.")
		default:
			fmt.Println("Analysis failed, nothing was logged. Try again:", err.Error())
		}
		return err
	}

	printAnalysis(&entry.Analysis)
	return nil
}

// ListMeals prints the meal log, newest first.
func (a *App) ListMeals(ctx context.Context) error {
	meals := a.tracker.Meals()
	if len(meals) == 0 {
		fmt.Println("No meals logged yet.")
		return nil
	}

	for _, m := range meals {
		fmt.Printf("%s  %s  %-9s  %-24s %6.0f kcal\n",
			m.ID, m.Time(time.Local).Format("2006-01-02 15:04"), m.Type,
			m.Analysis.FoodName, m.Analysis.Calories)
	}
	return nil
}

// Today prints the daily dashboard: consumed against target plus recent
// entries and the scan quota.
func (a *App) Today(ctx context.Context) error {
	s := a.tracker.DailySummary(time.Now())

	fmt.Printf("Consumed:  %d kcal\n", s.ConsumedKcal)
	fmt.Printf("Target:    %d kcal\n", s.TargetKcal)
	fmt.Printf("Remaining: %d kcal\n", s.RemainingKcal)
	fmt.Printf("Meals:     %d\n", s.MealCount)
	if s.ScansLeft < 0 {
		fmt.Println("Scans:     unlimited")
	} else {
		fmt.Printf("Scans:     %d left\n", s.ScansLeft)
	}

	for _, m := range s.Recent {
		fmt.Printf("  %s  %-24s %6.0f kcal\n",
			m.Time(time.Local).Format("15:04"), m.Analysis.FoodName, m.Analysis.Calories)
	}
	return nil
}

// DeleteMeal removes one entry by id.
func (a *App) DeleteMeal(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Meal id to delete", os.Stdout)
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}

	if err := a.tracker.DeleteMeal(ctx, id); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func printAnalysis(n *models.NutritionAnalysis) {
	fmt.Printf("%s — %.0f kcal\n", n.FoodName, n.Calories)
	fmt.Printf("Verdict: %s (%s)\n", n.PrimaryVerdict, n.PrimaryVerdict.Tone())
	for _, v := range n.SecondaryVerdicts {
		fmt.Printf("  also: %s\n", v)
	}
	if n.BurnTimeText != "" {
		fmt.Println("Burn time:", n.BurnTimeText)
	}
	if n.GoalAlignmentText != "" {
		fmt.Println(n.GoalAlignmentText)
	}
	if n.PortionGuidance != "" {
		fmt.Println("Portion:", n.PortionGuidance)
	}
	if n.FrequencyGuidance != "" {
		fmt.Println("Frequency:", n.FrequencyGuidance)
	}
	if len(n.Risks) > 0 {
		fmt.Println("Risks:", strings.Join(n.Risks, ", "))
	}
	if len(n.Allergens) > 0 {
		fmt.Println("Allergens:", strings.Join(n.Allergens, ", "))
	}
}
