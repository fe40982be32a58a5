package middleware

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"basegraph.app/fortune/core/config"
)

// CORS permits browser calls from the configured origins ("*" allows any origin).
func CORS(cfg config.CORSConfig) (gin.HandlerFunc, error) {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAll() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	if err := corsCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cors config: %w", err)
	}

	return cors.New(corsCfg), nil
}
