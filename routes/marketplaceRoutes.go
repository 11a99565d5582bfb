package routes

import (
	"github.com/Kariqs/agromarket-api/controllers"
	"github.com/gin-gonic/gin"
)

func MarketplaceRoutes(server *gin.Engine, requireAuth gin.HandlerFunc) {
	market := server.Group("/marketplace")
	{
		market.GET("", controllers.GetMarketplaceItems)
		market.GET("/:id", controllers.GetMarketplaceItem)
		market.POST("", requireAuth, controllers.CreateMarketplaceItem)
		market.PATCH("/:id", requireAuth, controllers.UpdateMarketplaceItem)
		market.DELETE("/:id", requireAuth, controllers.DeleteMarketplaceItem)
	}
}
