package models

type ActivityLevel string

const (
	Sedentary        ActivityLevel = "Sedentary"
	LightlyActive    ActivityLevel = "Lightly active"
	ModeratelyActive ActivityLevel = "Moderately active"
	VeryActive       ActivityLevel = "Very active"
)

var ActivityLevels = []ActivityLevel{Sedentary, LightlyActive, ModeratelyActive, VeryActive}

type Diet string

const (
	DietVegan      Diet = "Vegan"
	DietKeto       Diet = "Keto"
	DietGlutenFree Diet = "Gluten-Free"
	DietBalanced   Diet = "Balanced"
	DietVegetarian Diet = "Vegetarian"
)

// FullPlanDiets is offered by the full meal-plan form. The quick-meal form
// offers QuickMealDiets, which has no vegetarian option.
var (
	FullPlanDiets  = []Diet{DietVegan, DietKeto, DietGlutenFree, DietBalanced, DietVegetarian}
	QuickMealDiets = []Diet{DietVegan, DietKeto, DietGlutenFree, DietBalanced}
)

type Cuisine string

const (
	CuisineIndian        Cuisine = "Indian"
	CuisineContinental   Cuisine = "Continental"
	CuisineMediterranean Cuisine = "Mediterranean"
	CuisineAsian         Cuisine = "Asian"
	CuisineMexican       Cuisine = "Mexican"
	CuisineAmerican      Cuisine = "American"
)

var Cuisines = []Cuisine{CuisineIndian, CuisineContinental, CuisineMediterranean, CuisineAsian, CuisineMexican, CuisineAmerican}

type MealScope string

const (
	ScopeAll       MealScope = "All"
	ScopeBreakfast MealScope = "Breakfast"
	ScopeLunch     MealScope = "Lunch"
	ScopeDinner    MealScope = "Dinner"
	ScopeSnack     MealScope = "Snack"
)

var MealScopes = []MealScope{ScopeAll, ScopeBreakfast, ScopeLunch, ScopeDinner, ScopeSnack}

type PlanDuration string

const (
	OneDay  PlanDuration = "1 day"
	OneWeek PlanDuration = "1 week"
)

var PlanDurations = []PlanDuration{OneDay, OneWeek}

// PromptVariant selects which of the two meal-plan forms produced a request.
type PromptVariant string

const (
	VariantFullPlan  PromptVariant = "full-plan"
	VariantQuickMeal PromptVariant = "quick-meal"
)

// Bounds enforced by the form widgets. The orchestrator does not re-check them.
const (
	MinAge     = 1
	MaxAge     = 120
	DefaultAge = 25

	CalorieStep = 100

	FullPlanMinCalories     = 1000
	FullPlanMaxCalories     = 5000
	FullPlanDefaultCalories = 2000

	QuickMealMinCalories     = 1200
	QuickMealMaxCalories     = 3000
	QuickMealDefaultCalories = 1200
)

type UserProfile struct {
	Age      int           `json:"age" form:"age"`
	Activity ActivityLevel `json:"activity_level" form:"activity_level"`
}

// DietaryRequest carries everything the template engine embeds in a
// meal-plan prompt. Free-text fields are taken as typed by the user.
type DietaryRequest struct {
	Profile           UserProfile   `json:"profile"`
	Diet              Diet          `json:"diet"`
	Cuisine           Cuisine       `json:"cuisine"`
	LikedFoods        string        `json:"liked_foods"`
	Allergies         string        `json:"allergies"`
	MedicalConditions string        `json:"medical_conditions,omitempty"`
	IngredientsAtHome string        `json:"ingredients_at_home,omitempty"`
	Calories          int           `json:"calories"`
	Scope             MealScope     `json:"meal_scope,omitempty"`
	Duration          PlanDuration  `json:"duration,omitempty"`
	ShowProcedure     bool          `json:"show_procedure"`
	Variant           PromptVariant `json:"variant"`
}

// DefaultFullPlanRequest mirrors the initial widget values of the full
// meal-plan form.
func DefaultFullPlanRequest() DietaryRequest {
	return DietaryRequest{
		Profile:  UserProfile{Age: DefaultAge, Activity: Sedentary},
		Diet:     DietVegan,
		Cuisine:  CuisineIndian,
		Calories: FullPlanDefaultCalories,
		Duration: OneDay,
		Variant:  VariantFullPlan,
	}
}

func DefaultQuickMealRequest() DietaryRequest {
	return DietaryRequest{
		Profile:  UserProfile{Age: DefaultAge, Activity: Sedentary},
		Diet:     DietVegan,
		Cuisine:  CuisineIndian,
		Calories: QuickMealDefaultCalories,
		Scope:    ScopeAll,
		Variant:  VariantQuickMeal,
	}
}
