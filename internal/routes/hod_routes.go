package routes

import (
	"transport_booking/internal/controllers"
	"transport_booking/internal/middleware"
	"transport_booking/internal/models"

	"github.com/gin-gonic/gin"
)

func HODRoutes(r *gin.Engine, ctl *controllers.Controller) {
	hod := r.Group("/hod")
	{
		hod.GET("/dashboard", middleware.RequireRole(models.RoleHOD), ctl.HODDashboard)
		// open to any caller
		hod.GET("/bookings", ctl.HODBookings)
	}
}
