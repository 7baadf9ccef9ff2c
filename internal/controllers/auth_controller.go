package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"transport_booking/internal/identity"
)

type loginInput struct {
	UserID   string `json:"userId" form:"userId"`
	Password string `json:"password" form:"password"`
}

// Home stands in for the login page.
func (ctl *Controller) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"view": "index"})
}

// Login checks the credentials, opens a session cookie and redirects to the
// dashboard of the user's role.
func (ctl *Controller) Login(c *gin.Context) {
	var body loginInput
	if err := c.ShouldBind(&body); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}

	user, err := ctl.identity.Authenticate(c.Request.Context(), body.UserID, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidCredentials):
			logrus.WithField("user_id", body.UserID).Info("Login rejected: invalid credentials")
			c.String(http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, identity.ErrUnrecognizedRole):
			logrus.WithError(err).WithField("user_id", body.UserID).Warn("Login rejected: invalid role")
			c.String(http.StatusUnauthorized, "Invalid role")
		default:
			logrus.WithError(err).Error("Error during login")
			c.String(http.StatusInternalServerError, "Server error")
		}
		return
	}

	token, sess, err := ctl.gate.Open(user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.UserID).Error("Could not open session")
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ctl.cookie.Name, string(token), int(ctl.cookie.TTL.Seconds()), "/", "", ctl.cookie.Secure, true)

	logrus.WithFields(logrus.Fields{
		"user_id": sess.UserID,
		"role":    sess.Role,
	}).Info("User logged in")
	c.Redirect(http.StatusFound, sess.Role.DashboardPath())
}

// Logout clears the session cookie.
func (ctl *Controller) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ctl.cookie.Name, "", -1, "/", "", ctl.cookie.Secure, true)
	c.Redirect(http.StatusFound, "/")
}
