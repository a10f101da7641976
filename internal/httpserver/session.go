package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"plantshop/internal/service/session"
)

const (
	sessionCookie = "plantshop_session"
	sessionMaxAge = 365 * 24 * 60 * 60
	sessionCtxKey = "session"
)

// sessionMiddleware attaches the caller's session state, issuing a new
// session when the request has none or an unusable one. The cookie is
// refreshed on every response.
func sessionMiddleware(reg *session.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		state, err := reg.Get(c.Request.Context(), id)
		if err != nil {
			id = reg.Issue()
			state, err = reg.Get(c.Request.Context(), id)
			if err != nil {
				logger.Error("session: issue failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
				return
			}
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, state.ID, sessionMaxAge, "/", "", false, true)
		c.Set(sessionCtxKey, state)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.State {
	return c.MustGet(sessionCtxKey).(*session.State)
}
