package routes

import (
	"github.com/Kariqs/agromarket-api/config"
	"github.com/Kariqs/agromarket-api/initializers"
	"github.com/Kariqs/agromarket-api/middlewares"
	"github.com/gin-gonic/gin"
)

func Register(server *gin.Engine, cfg *config.Config) {
	requireAuth := middlewares.RequireAuth(cfg.JWT.Secret, cfg.Admin.SuperAdminEmail, middlewares.ProfileAdminCheck(initializers.DB))

	DefaultRoutes(server)
	AuthRoutes(server, requireAuth)
	ListingRoutes(server, requireAuth)
	MarketplaceRoutes(server, requireAuth)
	CartRoutes(server, requireAuth)
	OrderRoutes(server, requireAuth)
	AdminRoutes(server, requireAuth)
}
