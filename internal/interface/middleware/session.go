package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/educonnect-api/internal/application"
	"github.com/oksasatya/educonnect-api/pkg/helpers"
	"github.com/oksasatya/educonnect-api/pkg/response"
)

// Context keys set for authenticated requests.
const (
	CtxUserIDKey       = "userID"
	CtxUserTypeKey     = "userType"
	CtxUserEmailKey    = "userEmail"
	CtxSessionTokenKey = "sessionToken"
)

// SessionAuth is the gate in front of every protected route. It resolves
// the opaque cookie against the session store and injects the identity
// into the request context; anonymous requests are rejected before the
// handler runs.
func SessionAuth(store application.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		sess, err := store.Get(c.Request.Context(), token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Set(CtxUserIDKey, sess.UserID)
		c.Set(CtxUserTypeKey, sess.UserType)
		c.Set(CtxUserEmailKey, sess.Email)
		c.Set(CtxSessionTokenKey, token)
		c.Next()
	}
}
