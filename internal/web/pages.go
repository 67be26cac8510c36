package web

import (
	"encoding/base64"
	"html/template"

	"github.com/BerylCAtieno/nutrigen/internal/media"
	"github.com/BerylCAtieno/nutrigen/internal/models"
	"github.com/BerylCAtieno/nutrigen/internal/navigation"
	"github.com/BerylCAtieno/nutrigen/internal/nutrition"
	"github.com/BerylCAtieno/nutrigen/internal/session"
)

// Outcome is what a submission produced during this render pass.
type Outcome struct {
	Form     string
	Notice   *nutrition.Notice
	Artifact *models.Artifact
	Analysis *models.ImageAnalysis
	Image    *media.Image
}

type options struct {
	Activities     []models.ActivityLevel
	FullPlanDiets  []models.Diet
	QuickMealDiets []models.Diet
	Cuisines       []models.Cuisine
	Scopes         []models.MealScope
	Durations      []models.PlanDuration
	Bounds         bounds
}

type bounds struct {
	MinAge, MaxAge                     int
	FullMinCalories, FullMaxCalories   int
	QuickMinCalories, QuickMaxCalories int
	CalorieStep                        int
}

var formOptions = options{
	Activities:     models.ActivityLevels,
	FullPlanDiets:  models.FullPlanDiets,
	QuickMealDiets: models.QuickMealDiets,
	Cuisines:       models.Cuisines,
	Scopes:         models.MealScopes,
	Durations:      models.PlanDurations,
	Bounds: bounds{
		MinAge:           models.MinAge,
		MaxAge:           models.MaxAge,
		FullMinCalories:  models.FullPlanMinCalories,
		FullMaxCalories:  models.FullPlanMaxCalories,
		QuickMinCalories: models.QuickMealMinCalories,
		QuickMaxCalories: models.QuickMealMaxCalories,
		CalorieStep:      models.CalorieStep,
	},
}

type PageData struct {
	Title     string
	Page      navigation.Page
	Actions   []navigation.Action
	Forms     session.FormState
	Options   options
	Animation bool
	Outcome   Outcome
	Result    template.HTML
	Preview   template.URL
}

// View names the template to execute and the data to execute it with.
type View struct {
	Template string
	Data     PageData
}

var templates = map[navigation.Page]string{
	navigation.Home:        "home.html",
	navigation.UploadImage: "upload.html",
	navigation.Chatbot:     "chatbot.html",
	navigation.MealPlan:    "mealplan.html",
}

var titles = map[navigation.Page]string{
	navigation.Home:        "NutriGen: AI-Powered Nutrition Guide",
	navigation.UploadImage: "Upload a Food Image for Nutrition Analysis",
	navigation.Chatbot:     "Ask the Nutrition Chatbot",
	navigation.MealPlan:    "Personalized Meal Plan Generator",
}

// Render picks the page for the current state. It depends only on its
// arguments.
func Render(state navigation.State, forms session.FormState, out Outcome, animation bool) View {
	page := state.Page
	name, ok := templates[page]
	if !ok {
		page = navigation.Home
		name = templates[page]
	}

	data := PageData{
		Title:     titles[page],
		Page:      page,
		Actions:   navigation.Actions(page),
		Forms:     forms,
		Options:   formOptions,
		Animation: animation && page == navigation.Home,
		Outcome:   out,
	}

	switch {
	case out.Artifact != nil:
		data.Result = renderMarkdown(out.Artifact.Text)
	case out.Analysis != nil && out.Analysis.Breakdown != nil:
		data.Result = renderMarkdown(out.Analysis.Breakdown.Text)
	}
	if out.Image != nil {
		data.Preview = template.URL("data:" + out.Image.MIME + ";base64," + base64.StdEncoding.EncodeToString(out.Image.Data))
	}

	return View{Template: name, Data: data}
}
