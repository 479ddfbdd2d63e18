package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/filecms/filecms/internal/sessions"
	"github.com/filecms/filecms/internal/users"
	"github.com/filecms/filecms/pkg/logger"
	"github.com/filecms/filecms/pkg/metrics"
	"github.com/filecms/filecms/web"
	"github.com/gin-gonic/gin"
)

// AuthHandler serves sign-in, sign-out and sign-up for the CMS.
type AuthHandler struct {
	usersSvc *users.Service
	limiters []gin.HandlerFunc
}

// NewAuthHandler builds the handler. limiters run in front of the credential
// checking routes (sign-in and sign-up).
func NewAuthHandler(u *users.Service, limiters ...gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{usersSvc: u, limiters: limiters}
}

// Register routes under /users
func (h *AuthHandler) Register(rg gin.IRouter) {
	a := rg.Group("/users")
	a.GET("/signin", h.SigninForm)
	a.POST("/signin", h.limited(h.Signin)...)
	a.POST("/signout", h.Signout)
	a.POST("/signup", h.limited(h.Signup)...)
}

func (h *AuthHandler) limited(final gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(h.limiters)+1)
	chain = append(chain, h.limiters...)
	return append(chain, final)
}

type signinForm struct {
	Username       string
	SignupUsername string
}

func (h *AuthHandler) SigninForm(c *gin.Context) {
	web.HTML(c, http.StatusOK, "signin", "Sign in", signinForm{})
}

func (h *AuthHandler) Signin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	ok, err := h.usersSvc.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		logger.Errorf("authenticate %q: %v", username, err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s := sessions.FromContext(c)
	if !ok {
		metrics.AuthAttempts.WithLabelValues("signin", "failure").Inc()
		s.FlashFailure("Invalid credentials")
		web.HTML(c, http.StatusUnprocessableEntity, "signin", "Sign in", signinForm{Username: username})
		return
	}
	metrics.AuthAttempts.WithLabelValues("signin", "success").Inc()
	if err := sessions.Rotate(c); err != nil {
		logger.Errorf("rotate session: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	logger.Debugf("user %q signed in", username)
	s.SignIn(username)
	s.FlashSuccess("Welcome!")
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Signout(c *gin.Context) {
	s := sessions.FromContext(c)
	s.SignOut()
	s.FlashSuccess("You have been signed out")
	c.Redirect(http.StatusFound, "/")
}

// Signup registers a new account and signs it in.
func (h *AuthHandler) Signup(c *gin.Context) {
	username := c.PostForm("signup_username")
	password := c.PostForm("password")
	s := sessions.FromContext(c)

	err := h.usersSvc.Register(c.Request.Context(), username, password)
	var msg string
	switch {
	case err == nil:
	case errors.Is(err, users.ErrInvalidInput):
		msg = "Invalid username"
	case errors.Is(err, users.ErrAlreadyTaken):
		msg = "Sorry, that username is taken"
	case errors.Is(err, users.ErrPasswordTooLong):
		msg = "Password is too long"
	default:
		logger.Errorf("register %q: %v", username, err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if msg != "" {
		metrics.AuthAttempts.WithLabelValues("signup", "failure").Inc()
		s.FlashFailure(msg)
		web.HTML(c, http.StatusUnprocessableEntity, "signin", "Sign in", signinForm{SignupUsername: username})
		return
	}

	metrics.AuthAttempts.WithLabelValues("signup", "success").Inc()
	if err := sessions.Rotate(c); err != nil {
		logger.Errorf("rotate session: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.SignIn(username)
	s.FlashSuccess(fmt.Sprintf("Welcome to CMS, %s!", username))
	c.Redirect(http.StatusFound, "/")
}
