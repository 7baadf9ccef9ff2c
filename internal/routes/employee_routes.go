package routes

import (
	"transport_booking/internal/controllers"
	"transport_booking/internal/middleware"
	"transport_booking/internal/models"

	"github.com/gin-gonic/gin"
)

func EmployeeRoutes(r *gin.Engine, ctl *controllers.Controller) {
	employee := r.Group("/employee")
	employee.Use(middleware.RequireRole(models.RoleEmployee))
	{
		employee.GET("/dashboard", ctl.EmployeeDashboard)
	}
}
