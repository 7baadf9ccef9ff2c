package routes

import (
	"transport_booking/internal/controllers"

	"github.com/gin-gonic/gin"
)

func SystemRoutes(r *gin.Engine, ctl *controllers.Controller) {
	r.GET("/api/health", ctl.Health)
}
