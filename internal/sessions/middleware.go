package sessions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/filecms/filecms/internal/tokens"
	"github.com/filecms/filecms/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ContextKey is the gin context key holding the request's *Session.
const ContextKey = "session"

const cookieIssuerKey = "session.cookie"

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secret string
	Secure bool
}

type cookieIssuer struct {
	svc *Service
	cc  CookieConfig
}

// issue sets the session cookie, replacing one already queued on the response.
func (ci cookieIssuer) issue(c *gin.Context, sess *Session) error {
	token, err := tokens.GenerateSessionToken(ci.cc.Secret, sess.ID, ci.svc.TTL())
	if err != nil {
		return err
	}
	h := c.Writer.Header()
	if queued := h.Values("Set-Cookie"); len(queued) > 0 {
		h.Del("Set-Cookie")
		for _, v := range queued {
			if !strings.HasPrefix(v, ci.cc.Name+"=") {
				h.Add("Set-Cookie", v)
			}
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ci.cc.Name, token, int(ci.svc.TTL().Seconds()), "/", "", ci.cc.Secure, true)
	return nil
}

// Middleware loads (or starts) the visitor's session before the handler runs,
// exposes it through FromContext, and stores it once the handler returns.
// The cookie carries the session id inside a signed token.
func Middleware(svc *Service, cc CookieConfig) gin.HandlerFunc {
	ci := cookieIssuer{svc: svc, cc: cc}
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var sess *Session
		if raw, err := c.Cookie(cc.Name); err == nil && raw != "" {
			if id, err := tokens.ParseSessionToken(cc.Secret, raw); err == nil {
				loaded, err := svc.Load(ctx, id)
				if err != nil {
					logger.Warnf("session load failed: %v", err)
				}
				sess = loaded
			}
		}
		if sess == nil {
			sess = svc.New()
		}

		if err := ci.issue(c, sess); err != nil {
			logger.Errorf("session token: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Set(ContextKey, sess)
		c.Set(cookieIssuerKey, ci)

		c.Next()

		if err := svc.Save(ctx, sess); err != nil {
			logger.Errorf("session save failed: %v", err)
		}
	}
}

var errNoMiddleware = errors.New("sessions: Rotate called outside Middleware")

// Rotate moves the request's session onto a fresh id, forgets the old id and
// re-issues the cookie. Handlers call it when the session gains privileges,
// before writing the response.
func Rotate(c *gin.Context) error {
	v, ok := c.Get(cookieIssuerKey)
	if !ok {
		return errNoMiddleware
	}
	ci := v.(cookieIssuer)
	sess := FromContext(c)
	if err := ci.svc.Renew(c.Request.Context(), sess); err != nil {
		return err
	}
	return ci.issue(c, sess)
}

// FromContext returns the request's session. Outside Middleware it returns a
// throwaway anonymous session so callers never need a nil check.
func FromContext(c *gin.Context) *Session {
	if v, ok := c.Get(ContextKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	s := &Session{}
	c.Set(ContextKey, s)
	return s
}

// CurrentUser returns the signed-in username of the request's session, or ""
// when there is none. Unlike FromContext it never creates a session.
func CurrentUser(c *gin.Context) string {
	if v, ok := c.Get(ContextKey); ok {
		if s, ok := v.(*Session); ok {
			return s.CurrentUser
		}
	}
	return ""
}
