// Package web serves the browser pages. Every request is one render pass:
// load the session, apply the action, render the page for the current state.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BerylCAtieno/nutrigen/internal/assets"
	"github.com/BerylCAtieno/nutrigen/internal/media"
	"github.com/BerylCAtieno/nutrigen/internal/models"
	"github.com/BerylCAtieno/nutrigen/internal/navigation"
	"github.com/BerylCAtieno/nutrigen/internal/nutrition"
	"github.com/BerylCAtieno/nutrigen/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("pages").Funcs(template.FuncMap{"dict": dict}).ParseFS(templateFS, "templates/*.html"))
}

// dict builds a map from alternating keys and values so a partial can take
// more than one argument.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// Assistant is the orchestrator the pages submit to.
type Assistant interface {
	SubmitMealPlanRequest(ctx context.Context, req models.DietaryRequest) (*models.Artifact, error)
	AnalyzeImage(ctx context.Context, img media.Image) (*models.ImageAnalysis, error)
	SubmitChatbotQuestion(ctx context.Context, question string) (*models.Artifact, error)
}

var uploadExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

type Handler struct {
	assistant      Assistant
	sessions       *session.Store
	animation      *assets.Animation
	maxUploadBytes int64
}

func NewHandler(assistant Assistant, sessions *session.Store, animation *assets.Animation, maxUploadBytes int64) *Handler {
	return &Handler{
		assistant:      assistant,
		sessions:       sessions,
		animation:      animation,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes mounts the page routes on r. r must have Templates() set as
// its HTML renderer.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Show)
	r.POST("/navigate", h.Navigate)
	r.POST("/meal-plan", h.SubmitFullPlan)
	r.POST("/quick-meal", h.SubmitQuickMeal)
	r.POST("/upload", h.SubmitImage)
	r.POST("/chatbot", h.SubmitQuestion)
	r.GET("/assets/animation.json", h.ServeAnimation)
}

func (h *Handler) Show(c *gin.Context) {
	sess, ok := h.load(c)
	if !ok {
		return
	}
	h.render(c, sess, Outcome{})
}

func (h *Handler) Navigate(c *gin.Context) {
	sess, ok := h.load(c)
	if !ok {
		return
	}

	target := navigation.Page(c.PostForm("target"))
	sess.State = navigation.Reduce(sess.State, navigation.Navigate(target))
	log.Ctx(c.Request.Context()).Debug().Str("page", sess.State.Page.String()).Msg("navigated")

	if err := h.sessions.Save(c.Writer, c.Request, sess); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) SubmitFullPlan(c *gin.Context) {
	h.submitMealPlan(c, "full-plan", func(f mealPlanForm, forms *session.FormState) models.DietaryRequest {
		forms.FullPlan = f.fullPlan()
		return forms.FullPlan
	})
}

func (h *Handler) SubmitQuickMeal(c *gin.Context) {
	h.submitMealPlan(c, "quick-meal", func(f mealPlanForm, forms *session.FormState) models.DietaryRequest {
		forms.QuickMeal = f.quickMeal()
		return forms.QuickMeal
	})
}

func (h *Handler) submitMealPlan(c *gin.Context, form string, build func(mealPlanForm, *session.FormState) models.DietaryRequest) {
	sess, ok := h.loadOn(c, navigation.MealPlan)
	if !ok {
		return
	}

	var f mealPlanForm
	if err := c.ShouldBind(&f); err != nil {
		h.fail(c, fmt.Errorf("failed to read form: %w", err))
		return
	}
	req := build(f, &sess.Forms)

	out := Outcome{Form: form}
	art, err := h.assistant.SubmitMealPlanRequest(detach(c), req)
	if err != nil {
		out.Notice = notice(err)
	}
	out.Artifact = art

	h.render(c, sess, out)
}

func (h *Handler) SubmitImage(c *gin.Context) {
	sess, ok := h.loadOn(c, navigation.UploadImage)
	if !ok {
		return
	}

	data, err := h.readUpload(c)
	if err != nil {
		h.render(c, sess, Outcome{Notice: notice(err)})
		return
	}

	img, err := media.Decode(data)
	if err != nil {
		h.render(c, sess, Outcome{Notice: notice(&nutrition.UnsupportedMediaError{Err: err})})
		return
	}

	out := Outcome{Image: &img}
	analysis, err := h.assistant.AnalyzeImage(detach(c), img)
	if err != nil {
		out.Notice = notice(err)
	}
	out.Analysis = analysis

	h.render(c, sess, out)
}

func (h *Handler) readUpload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &nutrition.UnsupportedMediaError{Err: fmt.Errorf("file exceeds %d bytes", h.maxUploadBytes)}
		}
		return nil, &nutrition.UnsupportedMediaError{Err: fmt.Errorf("no image uploaded: %w", err)}
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !uploadExtensions[ext] {
		return nil, &nutrition.UnsupportedMediaError{Err: fmt.Errorf("extension %q not allowed", ext)}
	}

	file, err := header.Open()
	if err != nil {
		return nil, &nutrition.UnsupportedMediaError{Err: err}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &nutrition.UnsupportedMediaError{Err: err}
	}
	return data, nil
}

func (h *Handler) SubmitQuestion(c *gin.Context) {
	sess, ok := h.loadOn(c, navigation.Chatbot)
	if !ok {
		return
	}

	sess.Forms.Question = c.PostForm("question")

	out := Outcome{}
	art, err := h.assistant.SubmitChatbotQuestion(detach(c), sess.Forms.Question)
	if err != nil {
		out.Notice = notice(err)
	}
	out.Artifact = art

	h.render(c, sess, out)
}

func (h *Handler) ServeAnimation(c *gin.Context) {
	if h.animation == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "application/json", h.animation.Data)
}

func (h *Handler) load(c *gin.Context) (*session.Session, bool) {
	sess, err := h.sessions.Load(c.Request)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return sess, true
}

// loadOn loads the session and checks that the submission came from the
// page currently shown. A form posted from a stale tab is dropped and the
// browser is sent back to the current page.
func (h *Handler) loadOn(c *gin.Context, page navigation.Page) (*session.Session, bool) {
	sess, ok := h.load(c)
	if !ok {
		return nil, false
	}
	if sess.State.Page != page {
		log.Ctx(c.Request.Context()).Warn().
			Str("page", sess.State.Page.String()).
			Str("form", page.String()).
			Msg("dropping submission from a page that is not shown")
		c.Redirect(http.StatusSeeOther, "/")
		return nil, false
	}
	return sess, true
}

// save persists the session. A failure only loses form values, so the page
// still renders.
func (h *Handler) save(c *gin.Context, sess *session.Session) {
	if err := h.sessions.Save(c.Writer, c.Request, sess); err != nil {
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to save session")
	}
}

func (h *Handler) render(c *gin.Context, sess *session.Session, out Outcome) {
	h.save(c, sess)
	view := Render(sess.State, sess.Forms, out, h.animation != nil)
	c.HTML(http.StatusOK, view.Template, view.Data)
}

func (h *Handler) fail(c *gin.Context, err error) {
	log.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
	c.String(http.StatusInternalServerError, "Something went wrong. Please reload the page.")
}

func notice(err error) *nutrition.Notice {
	n := nutrition.NoticeFor(err)
	return &n
}

// detach keeps request-scoped values but not cancellation: once issued, a
// model call runs to completion.
func detach(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
