package router

import (
	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/handle"
)

// RegisterHealthCheckRoute binds the per-component health routes.
func RegisterHealthCheckRoute(g *gin.RouterGroup) {
	health := g.Group("/health")
	{
		health.GET("/db", handle.HealthDB)
		health.GET("/blob", handle.HealthBlob)
		health.GET("/mq", handle.HealthMQ)
	}
}
