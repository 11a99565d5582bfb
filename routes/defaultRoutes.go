package routes

import (
	"github.com/Kariqs/agromarket-api/controllers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/health", controllers.GetHealth)
	server.GET("/metrics", gin.WrapH(promhttp.Handler()))
	server.POST("/contact", controllers.CreateContactMessage)
	server.POST("/wizards/:form/steps/:step/validate", controllers.ValidateWizardStep)
}
