package routes

import (
	"github.com/Kariqs/agromarket-api/controllers"
	"github.com/Kariqs/agromarket-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AdminRoutes(server *gin.Engine, requireAuth gin.HandlerFunc) {
	admin := server.Group("/api/admin", requireAuth, middlewares.RequireAdmin())
	{
		admin.POST("/add-admin", controllers.AddAdmin)
		admin.POST("/remove-admin", controllers.RemoveAdmin)
		admin.GET("/admins", controllers.ListAdmins)
		admin.GET("/dashboard", controllers.GetDashboard)
		admin.GET("/reports", controllers.GetReports)
		admin.GET("/users", controllers.GetUsers)
		admin.GET("/notifications", controllers.GetNotifications)
		admin.POST("/notifications/:id/read", controllers.MarkNotificationRead)
	}
}
