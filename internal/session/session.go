// Package session keeps per-browser state: the current page lives in a
// signed cookie, the last values typed into each form live in a bounded
// in-memory cache keyed by the session id. Nothing outlives the process.
package session

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/BerylCAtieno/nutrigen/internal/models"
	"github.com/BerylCAtieno/nutrigen/internal/navigation"
)

const (
	cookieName = "nutrigen"
	keyID      = "sid"
	keyPage    = "page"
)

// FormState holds the values last submitted on each page so that revisiting
// a page shows them again.
type FormState struct {
	FullPlan  models.DietaryRequest
	QuickMeal models.DietaryRequest
	Question  string
}

func DefaultFormState() FormState {
	return FormState{
		FullPlan:  models.DefaultFullPlanRequest(),
		QuickMeal: models.DefaultQuickMealRequest(),
	}
}

type Session struct {
	ID    string
	State navigation.State
	Forms FormState

	raw *sessions.Session
}

type Options struct {
	Secret    []byte
	Secure    bool
	CacheSize int
}

type Store struct {
	cookies *sessions.CookieStore
	forms   *lru.Cache[string, FormState]
}

func NewStore(opts Options) (*Store, error) {
	forms, err := lru.New[string, FormState](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create form cache: %w", err)
	}

	cookies := sessions.NewCookieStore(opts.Secret)
	cookies.Options.Path = "/"
	cookies.Options.HttpOnly = true
	cookies.Options.Secure = opts.Secure
	cookies.Options.SameSite = http.SameSiteLaxMode
	// Zero MaxAge makes a browser-session cookie.
	cookies.Options.MaxAge = 0

	return &Store{cookies: cookies, forms: forms}, nil
}

// Load returns the session for r, starting a fresh one at Home when the
// cookie is missing or cannot be verified.
func (s *Store) Load(r *http.Request) (*Session, error) {
	// A cookie that fails verification still yields a fresh session.
	raw, err := s.cookies.Get(r, cookieName)
	if err != nil && raw == nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	id, _ := raw.Values[keyID].(string)
	if id == "" {
		id = uuid.New().String()
		raw.Values[keyID] = id
	}

	state := navigation.Initial()
	if stored, ok := raw.Values[keyPage].(string); ok {
		state.Page, _ = navigation.ParsePage(stored)
	}

	forms, ok := s.forms.Get(id)
	if !ok {
		forms = DefaultFormState()
	}

	return &Session{ID: id, State: state, Forms: forms, raw: raw}, nil
}

// Save writes the page to the cookie and the form values to the cache.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, sess *Session) error {
	sess.raw.Values[keyID] = sess.ID
	sess.raw.Values[keyPage] = sess.State.Page.String()
	s.forms.Add(sess.ID, sess.Forms)

	if err := sess.raw.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
