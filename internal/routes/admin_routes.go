package routes

import (
	"transport_booking/internal/controllers"
	"transport_booking/internal/middleware"
	"transport_booking/internal/models"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine, ctl *controllers.Controller) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard", ctl.AdminDashboard)
	}
}
