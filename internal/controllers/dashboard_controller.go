package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transport_booking/internal/middleware"
)

// Dashboards answer with the view name and session identity; templates live
// outside this service.

func (ctl *Controller) AdminDashboard(c *gin.Context) {
	ctl.renderDashboard(c, "adminDashboard")
}

func (ctl *Controller) HODDashboard(c *gin.Context) {
	ctl.renderDashboard(c, "hodDashboard")
}

func (ctl *Controller) EmployeeDashboard(c *gin.Context) {
	ctl.renderDashboard(c, "employeeDashboard")
}

func (ctl *Controller) renderDashboard(c *gin.Context, view string) {
	sess, _ := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"view":   view,
		"userId": sess.UserID,
		"role":   sess.Role,
	})
}
