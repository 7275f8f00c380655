package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows every origin in development and only the configured list in production.
func CORS(production bool, origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if production {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AddAllowMethods("PATCH")
	cfg.AddAllowHeaders(RequestIDHeader, UserIDHeader, UserNameHeader)
	cfg.AddExposeHeaders(RequestIDHeader, "Retry-After")
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}
