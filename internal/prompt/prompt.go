// Package prompt turns form submissions into the natural-language
// instructions sent to the generative model. Every builder is pure: the same
// input always yields the same bytes.
//
// User-supplied free text is embedded as typed. Nothing is escaped.
package prompt

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/nutrigen/internal/models"
)

var (
	weekDays  = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	mealSlots = []string{"Breakfast", "Lunch", "Dinner", "Snack"}
)

// ProcedureHeading opens the cooking-procedure block appended when the
// request asks for it.
const ProcedureHeading = "*Cooking Procedure:*"

// BuildMealPlanPrompt renders the prompt for either meal-plan form.
func BuildMealPlanPrompt(req models.DietaryRequest) string {
	var b strings.Builder

	if req.Variant == models.VariantQuickMeal {
		writeQuickMeal(&b, req)
	} else {
		writeFullPlan(&b, req)
	}

	if req.ShowProcedure {
		writeProcedure(&b)
	}
	return b.String()
}

func writeFullPlan(b *strings.Builder, req models.DietaryRequest) {
	writeIntro(b, "Create a structured", req)
	fmt.Fprintf(b, "Include preferred foods %s and exclude foods containing %s. ", req.LikedFoods, req.Allergies)
	fmt.Fprintf(b, "Also, consider dietary restrictions for medical conditions: %s.\n\n", req.MedicalConditions)

	b.WriteString("For each meal (Breakfast, Lunch, Dinner, Snacks), provide:\n")
	b.WriteString("- *Macronutrient Breakdown*: Calories, Carbohydrates, Proteins, Fats\n")
	b.WriteString("- *Micronutrient Breakdown*: Fiber, Vitamins, Minerals\n")
	b.WriteString("- *Reasoning*: Explain why each food is recommended or avoided based on medical conditions.\n\n")

	if req.Duration == models.OneWeek {
		writeWeekTable(b)
		return
	}
	writeDaySections(b)
}

func writeIntro(b *strings.Builder, verb string, req models.DietaryRequest) {
	fmt.Fprintf(b, "%s %s meal plan with %s cuisine preferences for a %d-year-old person with %s activity level,\n",
		verb, req.Diet, req.Cuisine, req.Profile.Age, req.Profile.Activity)
	fmt.Fprintf(b, "consuming around %d calories per day.\n\n", req.Calories)
}

func writeWeekTable(b *strings.Builder) {
	b.WriteString("### *Weekly Meal Plan (Monday-Sunday)*\n")
	b.WriteString("Provide the response in a *tabular format* with columns for each day (Monday-Sunday) ")
	b.WriteString("and rows for Breakfast, Lunch, Dinner, and Snack.\n\n")

	b.WriteString("| Meal Type |")
	for _, day := range weekDays {
		b.WriteString(" " + day + " |")
	}
	b.WriteString("\n|---|")
	b.WriteString(strings.Repeat("---|", len(weekDays)))
	b.WriteString("\n")

	for _, slot := range mealSlots {
		b.WriteString("| " + slot + " |")
		b.WriteString(strings.Repeat(" Meal & Calories |", len(weekDays)))
		b.WriteString("\n")
	}
}

func writeDaySections(b *strings.Builder) {
	b.WriteString("### *Meal Plan for One Day*\n")
	b.WriteString("Provide detailed information for each meal, including macronutrients, micronutrients, and reasoning.\n")

	for _, slot := range mealSlots {
		fmt.Fprintf(b, "\n*%s:* Meal Name (Calories: X kcal)\n", slot)
		b.WriteString("- *Macronutrients:* Carbs: Xg, Proteins: Xg, Fats: Xg\n")
		b.WriteString("- *Micronutrients:* Fiber: Xg, Vitamins: X, Minerals: X\n")
		fmt.Fprintf(b, "- *Reasoning:* Why this %s suits the declared medical conditions\n", strings.ToLower(slot))
	}
}

func writeQuickMeal(b *strings.Builder, req models.DietaryRequest) {
	writeIntro(b, "Create a well-structured", req)
	b.WriteString("The plan should be well-organized into sections for each meal and contain detailed nutritional information.\n")
	fmt.Fprintf(b, "Include the following preferred foods: %s.\n", req.LikedFoods)
	fmt.Fprintf(b, "Exclude foods containing %s.\n", req.Allergies)
	b.WriteString("If a preferred food doesn't fit the diet, suggest an alternative.\n")
	fmt.Fprintf(b, "Prioritize using the following ingredients available at home: %s.\n", req.IngredientsAtHome)
	b.WriteString("If certain ingredients are missing for a suggested meal, provide suitable alternatives.\n\n")

	if req.Scope == models.ScopeAll || req.Scope == "" {
		b.WriteString("Provide all meals: Breakfast, Lunch, Dinner, and Snack.\n\n")
	} else {
		fmt.Fprintf(b, "Only include the following meal in the response: %s.\n\n", req.Scope)
	}

	b.WriteString("*Meal Plan Structure:*\n---\n")
	fmt.Fprintf(b, "### %s Meal Plan\n", scopeTitle(req.Scope))
	b.WriteString("*Meal:* [meal details]\n")
	b.WriteString("*Ingredients:*\n  - [ingredient 1]\n  - [ingredient 2]\n")
	b.WriteString("*Calories:* [caloric breakdown]\n\n")
	b.WriteString("*Alternative Food Recommendations:*\n")
	b.WriteString("- If a preferred or available ingredient conflicts with the chosen diet, suggest a substitution.\n\n")
	b.WriteString("*Grocery List:*\n")
	b.WriteString("- List every ingredient the meal plan needs that is not already available at home.\n")
}

func scopeTitle(scope models.MealScope) string {
	if scope == "" {
		return string(models.ScopeAll)
	}
	return string(scope)
}

func writeProcedure(b *strings.Builder) {
	b.WriteString("\n" + ProcedureHeading + "\n")
	b.WriteString("After the nutritional information, provide a numbered cooking procedure for each meal.\n")
	b.WriteString("1. [Step details]\n2. [Step details]\n")
}

// BuildFoodIdentificationPrompt accompanies the uploaded photo on the first
// vision call.
func BuildFoodIdentificationPrompt() string {
	return "Identify the food item in the image. Reply with the name of the food only."
}

func BuildNutritionBreakdownPrompt(foodName string) string {
	return fmt.Sprintf(`Provide a detailed nutritional breakdown per 100g for %s,
categorizing macronutrients (Calories, Carbohydrates, Proteins, Fats)
and micronutrients (Fiber, Vitamins, Minerals).`, foodName)
}

func BuildChatbotPrompt(question string) string {
	return "Please provide a polite and helpful answer to this nutrition-related question: " + question
}
