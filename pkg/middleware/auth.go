package middleware

import (
	"net/http"

	"github.com/filecms/filecms/internal/sessions"
	"github.com/filecms/filecms/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// SignInRequiredMessage is the failure flash set when a guarded route is hit anonymously.
const SignInRequiredMessage = "You must be signed in to do that"

// RequireSignedIn guards mutating routes: anonymous requests get a failure
// flash and are redirected to the index. It must run after sessions.Middleware.
func RequireSignedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.FromContext(c)
		if s.SignedIn() {
			c.Next()
			return
		}
		metrics.GuardRejected.Inc()
		s.FlashFailure(SignInRequiredMessage)
		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}
