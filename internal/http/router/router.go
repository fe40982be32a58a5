package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/fortune/internal/http/handler"
	"basegraph.app/fortune/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		fortuneHandler := handler.NewFortuneHandler(services.Fortunes())
		FortuneRouter(api.Group("/fortune"), fortuneHandler)
	}
}
