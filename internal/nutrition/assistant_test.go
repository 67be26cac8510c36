package nutrition

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/nutrigen/internal/gemini"
	"github.com/BerylCAtieno/nutrigen/internal/media"
	"github.com/BerylCAtieno/nutrigen/internal/models"
)

type call struct {
	prompt string
	image  []byte
	format string
}

// fakeModel replays scripted replies in order and records every call.
type fakeModel struct {
	replies []reply
	calls   []call
}

type reply struct {
	text string
	err  error
}

func (f *fakeModel) next(c call) (string, error) {
	f.calls = append(f.calls, c)
	if len(f.replies) == 0 {
		return "", errors.New("unexpected call")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.text, r.err
}

func (f *fakeModel) GenerateText(_ context.Context, prompt string) (string, error) {
	return f.next(call{prompt: prompt})
}

func (f *fakeModel) GenerateFromImage(_ context.Context, img []byte, format, prompt string) (string, error) {
	return f.next(call{prompt: prompt, image: img, format: format})
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestSubmitMealPlanRequest(t *testing.T) {
	model := &fakeModel{replies: []reply{{text: "## Day plan"}}}
	a := NewAssistant(model)

	req := models.DefaultFullPlanRequest()
	req.Allergies = "peanuts"

	art, err := a.SubmitMealPlanRequest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "## Day plan", art.Text)
	assert.Equal(t, models.KindMealPlan, art.Kind)
	assert.NotEmpty(t, art.ID)
	assert.False(t, art.CreatedAt.IsZero())

	require.Len(t, model.calls, 1)
	assert.Contains(t, model.calls[0].prompt, "peanuts")
}

func TestSubmitMealPlanRequest_ServiceError(t *testing.T) {
	quota := errors.New("quota exceeded")
	model := &fakeModel{replies: []reply{{err: quota}}}

	art, err := NewAssistant(model).SubmitMealPlanRequest(context.Background(), models.DefaultFullPlanRequest())
	assert.Nil(t, art)

	var svc *ServiceError
	require.ErrorAs(t, err, &svc)
	assert.ErrorIs(t, err, quota)
	assert.Len(t, model.calls, 1, "failures are not retried")
}

func TestSubmitMealPlanRequest_Empty(t *testing.T) {
	for name, r := range map[string]reply{
		"sentinel": {err: gemini.ErrEmptyResponse},
		"blank":    {text: "   "},
	} {
		t.Run(name, func(t *testing.T) {
			model := &fakeModel{replies: []reply{r}}
			_, err := NewAssistant(model).SubmitMealPlanRequest(context.Background(), models.DefaultQuickMealRequest())

			var empty *EmptyResponseError
			assert.ErrorAs(t, err, &empty)
		})
	}
}

func TestSubmitImageAnalysis(t *testing.T) {
	model := &fakeModel{replies: []reply{
		{text: "  Masala Dosa\n"},
		{text: "| Nutrient | per 100g |"},
	}}
	data := pngBytes(t)

	got, err := NewAssistant(model).SubmitImageAnalysis(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Masala Dosa", got.FoodName)
	require.NotNil(t, got.Breakdown)
	assert.Equal(t, models.KindNutritionBreakdown, got.Breakdown.Kind)

	require.Len(t, model.calls, 2)
	assert.Equal(t, data, model.calls[0].image)
	assert.Equal(t, "png", model.calls[0].format)
	assert.Nil(t, model.calls[1].image)
	assert.Contains(t, model.calls[1].prompt, "per 100g for Masala Dosa")
}

func TestSubmitImageAnalysis_EmptyIdentificationShortCircuits(t *testing.T) {
	model := &fakeModel{replies: []reply{{text: ""}, {text: "should not be used"}}}

	got, err := NewAssistant(model).SubmitImageAnalysis(context.Background(), pngBytes(t))
	assert.Nil(t, got)

	var empty *EmptyResponseError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, opIdentify, empty.Op)
	assert.Len(t, model.calls, 1)
}

func TestSubmitImageAnalysis_IdentificationFailure(t *testing.T) {
	model := &fakeModel{replies: []reply{{err: errors.New("network down")}}}

	_, err := NewAssistant(model).SubmitImageAnalysis(context.Background(), pngBytes(t))

	var svc *ServiceError
	require.ErrorAs(t, err, &svc)
	assert.Len(t, model.calls, 1)
}

func TestSubmitImageAnalysis_BreakdownFailureKeepsFoodName(t *testing.T) {
	model := &fakeModel{replies: []reply{{text: "Apple"}, {err: gemini.ErrEmptyResponse}}}

	got, err := NewAssistant(model).SubmitImageAnalysis(context.Background(), pngBytes(t))
	require.Error(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Apple", got.FoodName)
	assert.Nil(t, got.Breakdown)
}

func TestSubmitImageAnalysis_UnsupportedMedia(t *testing.T) {
	model := &fakeModel{}

	_, err := NewAssistant(model).SubmitImageAnalysis(context.Background(), []byte("plain text"))

	var media *UnsupportedMediaError
	require.ErrorAs(t, err, &media)
	assert.Empty(t, model.calls)
}

func TestAnalyzeImage_UsesVerifiedImage(t *testing.T) {
	model := &fakeModel{replies: []reply{{text: "Idli"}, {text: "Calories: 58"}}}
	img, err := media.Decode(pngBytes(t))
	require.NoError(t, err)

	got, err := NewAssistant(model).AnalyzeImage(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, "Idli", got.FoodName)

	require.Len(t, model.calls, 2)
	assert.Equal(t, img.Data, model.calls[0].image)
	assert.Equal(t, img.Format, model.calls[0].format)
}

func TestSubmitChatbotQuestion(t *testing.T) {
	model := &fakeModel{replies: []reply{{text: "Yes, in moderation."}}}

	art, err := NewAssistant(model).SubmitChatbotQuestion(context.Background(), "Are eggs healthy?")
	require.NoError(t, err)
	assert.Equal(t, "Yes, in moderation.", art.Text)
	assert.Equal(t, models.KindChatAnswer, art.Kind)
	require.Len(t, model.calls, 1)
	assert.Contains(t, model.calls[0].prompt, "Are eggs healthy?")
}

func TestSubmitChatbotQuestion_EmptyIsNoop(t *testing.T) {
	model := &fakeModel{}
	a := NewAssistant(model)

	for _, q := range []string{"", "   "} {
		art, err := a.SubmitChatbotQuestion(context.Background(), q)
		assert.NoError(t, err)
		assert.Nil(t, art)
	}
	assert.Empty(t, model.calls)
}

func TestNoticeFor(t *testing.T) {
	n := NoticeFor(&EmptyResponseError{Op: opChat})
	assert.Equal(t, LevelWarning, n.Level)
	assert.Contains(t, n.Text, "No response received")

	n = NoticeFor(&ServiceError{Op: opMealPlan, Err: errors.New("quota exceeded")})
	assert.Equal(t, LevelError, n.Level)
	assert.Equal(t, "Error during meal plan generation: quota exceeded", n.Text)

	n = NoticeFor(&UnsupportedMediaError{Err: errors.New("bad header")})
	assert.Equal(t, LevelError, n.Level)
	assert.Contains(t, n.Text, "JPG or PNG")
}
