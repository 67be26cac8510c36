package web

import (
	"strconv"
	"strings"

	"github.com/BerylCAtieno/nutrigen/internal/models"
)

// mealPlanForm is bound from either meal-plan form. Every field arrives as
// text; clamping and closed-set checks happen in the request builders, the
// way the input widgets would constrain them.
type mealPlanForm struct {
	Age               string `form:"age"`
	Activity          string `form:"activity_level"`
	Diet              string `form:"diet"`
	Cuisine           string `form:"cuisine"`
	LikedFoods        string `form:"liked_foods"`
	Allergies         string `form:"allergies"`
	MedicalConditions string `form:"medical_conditions"`
	IngredientsAtHome string `form:"ingredients_at_home"`
	Calories          string `form:"calories"`
	Scope             string `form:"meal_scope"`
	Duration          string `form:"duration"`
	ShowProcedure     string `form:"show_procedure"`
}

func (f mealPlanForm) fullPlan() models.DietaryRequest {
	req := f.common(models.FullPlanDiets)
	req.Variant = models.VariantFullPlan
	req.MedicalConditions = f.MedicalConditions
	req.Calories = calories(f.Calories, models.FullPlanMinCalories, models.FullPlanMaxCalories, models.FullPlanDefaultCalories)
	req.Duration = oneOf(f.Duration, models.PlanDurations)
	return req
}

func (f mealPlanForm) quickMeal() models.DietaryRequest {
	req := f.common(models.QuickMealDiets)
	req.Variant = models.VariantQuickMeal
	req.IngredientsAtHome = f.IngredientsAtHome
	req.Calories = calories(f.Calories, models.QuickMealMinCalories, models.QuickMealMaxCalories, models.QuickMealDefaultCalories)
	req.Scope = oneOf(f.Scope, models.MealScopes)
	return req
}

func (f mealPlanForm) common(diets []models.Diet) models.DietaryRequest {
	return models.DietaryRequest{
		Profile: models.UserProfile{
			Age:      clamp(f.Age, models.MinAge, models.MaxAge, models.DefaultAge),
			Activity: oneOf(f.Activity, models.ActivityLevels),
		},
		Diet:          oneOf(f.Diet, diets),
		Cuisine:       oneOf(f.Cuisine, models.Cuisines),
		LikedFoods:    f.LikedFoods,
		Allergies:     f.Allergies,
		ShowProcedure: f.ShowProcedure != "",
	}
}

// clamp parses s and pins it to [lo, hi]. Unparseable input yields def.
func clamp(s string, lo, hi, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return max(lo, min(n, hi))
}

// calories clamps and snaps to the slider step.
func calories(s string, lo, hi, def int) int {
	n := clamp(s, lo, hi, def)
	n = lo + (n-lo+models.CalorieStep/2)/models.CalorieStep*models.CalorieStep
	return min(n, hi)
}

// oneOf restricts s to a closed set, falling back to the first option.
func oneOf[T ~string](s string, allowed []T) T {
	for _, v := range allowed {
		if string(v) == s {
			return v
		}
	}
	return allowed[0]
}
