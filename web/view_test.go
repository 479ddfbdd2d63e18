package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/filecms/filecms/internal/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML_ConsumesFlash(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sess := &sessions.Session{CurrentUser: "admin", Success: "Welcome!"}

	g := gin.New()
	g.HTMLRender = MustRenderer("cms")
	g.GET("/", func(c *gin.Context) {
		c.Set(sessions.ContextKey, sess)
		HTML(c, http.StatusOK, "index", "", gin.H{"Documents": nil})
	})

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome!")
	assert.Contains(t, w.Body.String(), "Signed in as <em>admin</em>")
	assert.Empty(t, sess.Success)

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotContains(t, w.Body.String(), "Welcome!")
}

func TestLinks(t *testing.T) {
	links := Links([]string{"A Scandal in Bohemia", "The Red-Headed League"})
	require.Len(t, links, 2)
	assert.Equal(t, ChapterLink{Number: 2, Name: "The Red-Headed League"}, links[1])
}
