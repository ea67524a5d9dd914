package router

import (
	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/handle"
)

// RegisterStatsRoutes binds the statistics routes.
func RegisterStatsRoutes(g *gin.RouterGroup, mw ...gin.HandlerFunc) {
	stats := g.Group("/stats")
	stats.Use(mw...)
	{
		stats.GET("", handle.GetVaultStats)
		stats.GET("/orphans", handle.GetOrphanBlobs)
	}
}
