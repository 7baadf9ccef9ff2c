package routes

import (
	"transport_booking/internal/controllers"
	"transport_booking/internal/middleware"
	"transport_booking/internal/models"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(r *gin.Engine, ctl *controllers.Controller) {
	driver := r.Group("/driver")
	driver.Use(middleware.RequireRole(models.RoleDriver))
	{
		driver.GET("/dashboard", ctl.DriverDashboard)
		driver.GET("/history", ctl.DriverHistory)
	}
	r.POST("/saveBooking", ctl.SaveTripForm)
}
