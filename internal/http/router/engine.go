package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"basegraph.app/fortune/core/config"
	"basegraph.app/fortune/internal/http/dto"
	"basegraph.app/fortune/internal/http/middleware"
	"basegraph.app/fortune/internal/service"
)

// NewEngine builds the gin engine with the middleware chain and all routes.
func NewEngine(cfg config.Config, services *service.Services) (*gin.Engine, error) {
	corsMiddleware, err := middleware.CORS(cfg.CORS)
	if err != nil {
		return nil, fmt.Errorf("setting up cors: %w", err)
	}

	engine := gin.New()

	// Order matters: OTel span → request id → access log → Recovery, so a panic is still logged and traced
	if cfg.OTel.Enabled() {
		engine.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())
	engine.Use(middleware.Recovery(dto.FortuneErrorMessage))
	engine.Use(corsMiddleware)

	SetupRoutes(engine, services)

	return engine, nil
}
