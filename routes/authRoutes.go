package routes

import (
	"github.com/Kariqs/agromarket-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, requireAuth gin.HandlerFunc) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
		auth.GET("/me", requireAuth, controllers.GetMe)
		auth.PATCH("/me", requireAuth, controllers.UpdateMe)
	}
}
