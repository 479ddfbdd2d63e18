package handlers

import (
	"net/http"

	"github.com/filecms/filecms/internal/document/handler"
	"github.com/filecms/filecms/internal/document/service"
	"github.com/filecms/filecms/internal/revisions"
	"github.com/filecms/filecms/internal/search"
	"github.com/filecms/filecms/internal/sessions"
	"github.com/filecms/filecms/internal/users"
	"github.com/filecms/filecms/web"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CMSDeps are the services the CMS router is assembled from.
type CMSDeps struct {
	Store    *service.Store
	History  *revisions.Service
	Users    *users.Service
	Sessions *sessions.Service
	Cookie   sessions.CookieConfig
	// AuthLimiters run in front of POST /users/signin and /users/signup.
	AuthLimiters []gin.HandlerFunc
}

// NewCMSRouter returns the CMS engine. /health and /metrics bypass sessions.
func NewCMSRouter(d CMSDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.HTMLRender = web.MustRenderer("cms")

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	app := r.Group("/")
	app.Use(sessions.Middleware(d.Sessions, d.Cookie))
	NewAuthHandler(d.Users, d.AuthLimiters...).Register(app)
	handler.New(d.Store, d.History).Register(app)
	return r
}

// NewBookRouter returns the book viewer engine.
func NewBookRouter(book *search.Book, title string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.HTMLRender = web.MustRenderer("books")

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	NewBookHandler(book, title).Register(r)
	return r
}
