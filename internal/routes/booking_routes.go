package routes

import (
	"transport_booking/internal/controllers"

	"github.com/gin-gonic/gin"
)

// BookingRoutes are the booking write endpoints. Neither carries a role check.
func BookingRoutes(r *gin.Engine, ctl *controllers.Controller) {
	api := r.Group("/api")
	{
		api.POST("/users/hod/bookings", ctl.CreateBooking)
		api.POST("/driver/updateBooking", ctl.UpdateBooking)
	}
}
