package router

import (
	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/handle"
)

// RegisterTagsRoutes binds the standalone tag routes. Creation and listing
// hang off the owning artwork; see RegisterArtworksRoutes.
func RegisterTagsRoutes(g *gin.RouterGroup) {
	g.DELETE("/tags/:tagId", handle.DeleteComponentTag)
}
