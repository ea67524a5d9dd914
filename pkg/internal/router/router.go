// Package router binds the vault API paths to their handlers. It only wires
// paths to gin; the handlers live in pkg/internal/handle.
package router

import (
	"github.com/gin-gonic/gin"
)

// Register binds every API route under the given group, normally
// r.Group("/api/v1"). Extra middleware is applied to the read-mostly
// stats routes, typically a response cache.
func Register(g *gin.RouterGroup, statsMW ...gin.HandlerFunc) {
	RegisterArtworksRoutes(g)
	RegisterGalleriesRoutes(g)
	RegisterProjectsRoutes(g)
	RegisterReferencesRoutes(g)
	RegisterTagsRoutes(g)
	RegisterBlobsRoutes(g)
	RegisterStatsRoutes(g, statsMW...)
	RegisterHealthCheckRoute(g)
	RegisterSchedulerRoutes(g)
}
