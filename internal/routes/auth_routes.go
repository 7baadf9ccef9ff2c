package routes

import (
	"transport_booking/internal/controllers"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine, ctl *controllers.Controller) {
	api := r.Group("/api")
	{
		api.POST("/login", ctl.Login)
		api.POST("/logout", ctl.Logout)
	}
}
