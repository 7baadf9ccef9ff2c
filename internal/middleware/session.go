package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"transport_booking/internal/models"
	"transport_booking/internal/session"
)

const sessionKey = "session"

// LoadSession resolves the session cookie, if any, and stores the session in
// the request context. Invalid or expired cookies are ignored.
func LoadSession(gate *session.Gate, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err == nil && raw != "" {
			sess, err := gate.Resolve(session.Token(raw))
			if err != nil {
				logrus.WithError(err).Debug("Ignoring invalid session cookie")
			} else {
				c.Set(sessionKey, sess)
			}
		}
		c.Next()
	}
}

// CurrentSession returns the session LoadSession attached to this request.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}, false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}

// RequireRole redirects to the login page unless the request carries a
// session opened for role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok || !session.RequireRole(sess, role) {
			logrus.WithFields(logrus.Fields{
				"path":     c.Request.URL.Path,
				"required": role,
				"role":     sess.Role,
			}).Info("Unauthorized dashboard access, redirecting to login")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
