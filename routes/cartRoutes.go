package routes

import (
	"github.com/Kariqs/agromarket-api/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, requireAuth gin.HandlerFunc) {
	server.POST("/cart", requireAuth, controllers.CreateCartItem)
	server.GET("/cart", requireAuth, controllers.GetCart)
}
