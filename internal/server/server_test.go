package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/nutrigen/internal/config"
	"github.com/BerylCAtieno/nutrigen/internal/nutrition"
	"github.com/BerylCAtieno/nutrigen/internal/session"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := session.NewStore(session.Options{Secret: []byte("0123456789abcdef0123456789abcdef"), CacheSize: 4})
	require.NoError(t, err)

	cfg := &config.Config{Port: "0", MaxUploadBytes: 1 << 20, CORSOrigins: []string{"https://agents.example"}}
	return NewRouter(cfg, Deps{
		Assistant: nutrition.NewAssistant(nil),
		Sessions:  store,
	})
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/health", http.StatusOK, "OK"},
		{"/", http.StatusOK, "Welcome to NutriGen"},
		{"/.well-known/agent.json", http.StatusOK, "NutriGen Nutrition Assistant"},
		{"/assets/animation.json", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

		assert.Equal(t, tc.status, rec.Code, tc.path)
		assert.Contains(t, rec.Body.String(), tc.body, tc.path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"), tc.path)
	}
}

func TestA2ACORS(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/a2a/nutrition", nil)
	req.Header.Set("Origin", "https://agents.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://agents.example", rec.Header().Get("Access-Control-Allow-Origin"))

	body := `{"jsonrpc":"2.0","id":"1","method":"message/send","params":{"message":{"kind":"message","role":"user","parts":[]}}}`
	req = httptest.NewRequest(http.MethodPost, "/a2a/nutrition", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "input-required")
}

func TestCORSConfig(t *testing.T) {
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)
	assert.True(t, corsConfig(nil).AllowAllOrigins)

	c := corsConfig([]string{"https://a.example"})
	assert.False(t, c.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example"}, c.AllowOrigins)
}
