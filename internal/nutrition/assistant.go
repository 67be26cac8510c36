// Package nutrition orchestrates a form submission: it builds the prompt,
// makes the model call and turns the outcome into an artifact or an error
// the page can display. Calls are made once and never retried.
package nutrition

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BerylCAtieno/nutrigen/internal/gemini"
	"github.com/BerylCAtieno/nutrigen/internal/media"
	"github.com/BerylCAtieno/nutrigen/internal/models"
	"github.com/BerylCAtieno/nutrigen/internal/prompt"
)

const (
	opMealPlan  = "meal plan generation"
	opIdentify  = "food identification"
	opBreakdown = "nutrition breakdown"
	opChat      = "chatbot answer"
)

// Generator is the hosted model capability. *gemini.Client implements it.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateFromImage(ctx context.Context, image []byte, format, prompt string) (string, error)
}

type Assistant struct {
	model Generator
	now   func() time.Time
}

func NewAssistant(model Generator) *Assistant {
	return &Assistant{model: model, now: time.Now}
}

// SubmitMealPlanRequest generates a meal plan. Field ranges are trusted as
// given by the form.
func (a *Assistant) SubmitMealPlanRequest(ctx context.Context, req models.DietaryRequest) (*models.Artifact, error) {
	text, err := a.call(ctx, opMealPlan, func() (string, error) {
		return a.model.GenerateText(ctx, prompt.BuildMealPlanPrompt(req))
	})
	if err != nil {
		return nil, err
	}
	return a.artifact(models.KindMealPlan, text), nil
}

// SubmitImageAnalysis verifies that data is a JPEG or PNG photo and then
// runs AnalyzeImage on it.
func (a *Assistant) SubmitImageAnalysis(ctx context.Context, data []byte) (*models.ImageAnalysis, error) {
	img, err := media.Decode(data)
	if err != nil {
		return nil, &UnsupportedMediaError{Err: err}
	}
	return a.AnalyzeImage(ctx, img)
}

// AnalyzeImage identifies the food in an already verified image and then
// asks for its nutrient breakdown. When identification yields nothing the
// breakdown call is skipped. If only the breakdown fails, the analysis
// carrying the food name is returned together with the error.
func (a *Assistant) AnalyzeImage(ctx context.Context, img media.Image) (*models.ImageAnalysis, error) {
	name, err := a.call(ctx, opIdentify, func() (string, error) {
		return a.model.GenerateFromImage(ctx, img.Data, img.Format, prompt.BuildFoodIdentificationPrompt())
	})
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	analysis := &models.ImageAnalysis{FoodName: name}
	text, err := a.call(ctx, opBreakdown, func() (string, error) {
		return a.model.GenerateText(ctx, prompt.BuildNutritionBreakdownPrompt(name))
	})
	if err != nil {
		return analysis, err
	}
	analysis.Breakdown = a.artifact(models.KindNutritionBreakdown, text)
	return analysis, nil
}

// SubmitChatbotQuestion answers a free-text question. A blank question makes
// no call and returns a nil artifact.
func (a *Assistant) SubmitChatbotQuestion(ctx context.Context, question string) (*models.Artifact, error) {
	if strings.TrimSpace(question) == "" {
		return nil, nil
	}

	text, err := a.call(ctx, opChat, func() (string, error) {
		return a.model.GenerateText(ctx, prompt.BuildChatbotPrompt(question))
	})
	if err != nil {
		return nil, err
	}
	return a.artifact(models.KindChatAnswer, text), nil
}

// call runs one model request and normalises its failure modes.
func (a *Assistant) call(ctx context.Context, op string, fn func() (string, error)) (string, error) {
	start := a.now()
	text, err := fn()
	elapsed := a.now().Sub(start)

	switch {
	case errors.Is(err, gemini.ErrEmptyResponse):
		log.Ctx(ctx).Warn().Str("op", op).Dur("elapsed", elapsed).Msg("model returned an empty response")
		return "", &EmptyResponseError{Op: op}
	case err != nil:
		log.Ctx(ctx).Error().Err(err).Str("op", op).Dur("elapsed", elapsed).Msg("model call failed")
		return "", &ServiceError{Op: op, Err: err}
	case strings.TrimSpace(text) == "":
		log.Ctx(ctx).Warn().Str("op", op).Dur("elapsed", elapsed).Msg("model returned blank text")
		return "", &EmptyResponseError{Op: op}
	}

	log.Ctx(ctx).Info().Str("op", op).Dur("elapsed", elapsed).Int("chars", len(text)).Msg("model call completed")
	return text, nil
}

func (a *Assistant) artifact(kind models.ArtifactKind, text string) *models.Artifact {
	return &models.Artifact{
		ID:        uuid.New().String(),
		Kind:      kind,
		Text:      text,
		CreatedAt: a.now().UTC(),
	}
}
