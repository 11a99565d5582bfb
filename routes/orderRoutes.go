package routes

import (
	"github.com/Kariqs/agromarket-api/controllers"
	"github.com/Kariqs/agromarket-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, requireAuth gin.HandlerFunc) {
	orders := server.Group("/orders", requireAuth)
	{
		orders.POST("", controllers.CreateOrder)
		orders.GET("/mine", controllers.GetMyOrders)
		orders.GET("", middlewares.RequireAdmin(), controllers.GetOrders)
		orders.PATCH("/:id", middlewares.RequireAdmin(), controllers.UpdateOrderStatus)
	}

	server.POST("/payments/pesapal/ipn", controllers.HandlePesapalIPN)
	server.GET("/payments/pesapal/ipn", controllers.HandlePesapalIPN)
}
