// Package middleware provides the gin middleware the vault server mounts:
// CORS, auth, roles, tracing, metrics, request logging, rate limiting,
// response caching and context injection for storage and the scheduler.
package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/configs"
)

// CORSMiddleware builds the CORS policy. The vault UI is usually served from
// another origin in development, so debug mode allows everything.
func CORSMiddleware(cfg configs.ServerConfig) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}

	config.AllowWebSockets = true
	config.AllowFiles = true

	if cfg.Debug {
		config.AllowAllOrigins = true
	}

	return cors.New(config)
}
