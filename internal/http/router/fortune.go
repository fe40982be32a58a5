package router

import (
	"basegraph.app/fortune/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func FortuneRouter(router *gin.RouterGroup, handler *handler.FortuneHandler) {
	router.POST("", handler.Create)
}
