package routes

import (
	"transport_booking/internal/controllers"
	"transport_booking/internal/middleware"
	"transport_booking/internal/models"

	"github.com/gin-gonic/gin"
)

func WebSocketRoutes(r *gin.Engine, ctl *controllers.Controller) {
	wsRoutes := r.Group("/ws")
	wsRoutes.Use(middleware.RequireRole(models.RoleDriver))
	{
		wsRoutes.GET("/bookings", ctl.BookingFeed)
	}
}
