package router

import (
	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/handle"
	"github.com/artvault/artvault/pkg/middleware"
)

// RegisterBlobsRoutes binds the raw blob routes.
func RegisterBlobsRoutes(g *gin.RouterGroup) {
	blobs := g.Group("/blobs")
	{
		blobs.POST("/sweep", middleware.RequireOwner(), handle.SweepBlobs)
		blobs.GET("/:category/:key", handle.ServeBlob)
	}
}
