package routes

import (
	"github.com/Kariqs/agromarket-api/controllers"
	"github.com/gin-gonic/gin"
)

type listingHandlers interface {
	Entity() string
	List(*gin.Context)
	Get(*gin.Context)
	Mine(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func listingGroup(server *gin.Engine, requireAuth gin.HandlerFunc, c listingHandlers) {
	group := server.Group("/" + c.Entity())
	{
		group.GET("", c.List)
		group.GET("/mine", requireAuth, c.Mine)
		group.GET("/:id", c.Get)
		group.POST("", requireAuth, c.Create)
		group.PATCH("/:id", requireAuth, c.Update)
		group.DELETE("/:id", requireAuth, c.Delete)
	}
}

func ListingRoutes(server *gin.Engine, requireAuth gin.HandlerFunc) {
	listingGroup(server, requireAuth, controllers.EquipmentListings)
	listingGroup(server, requireAuth, controllers.AnimalListings)
	listingGroup(server, requireAuth, controllers.LandListings)
	listingGroup(server, requireAuth, controllers.NurseryListings)

	experts := server.Group("/experts")
	{
		experts.GET("", controllers.GetExperts)
		experts.GET("/:id", controllers.GetExpert)
		experts.POST("", requireAuth, controllers.CreateExpert)
		experts.DELETE("/:id", requireAuth, controllers.DeleteExpert)
	}
}
