package router

import (
	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/handle"
)

// RegisterArtworksRoutes binds the artwork routes, including the per-artwork
// component tag routes.
func RegisterArtworksRoutes(g *gin.RouterGroup) {
	artworks := g.Group("/artworks")
	{
		artworks.POST("", handle.CreateArtwork)
		artworks.GET("", handle.ListArtworks)
		artworks.POST("/reorder", handle.ReorderArtworks)

		single := artworks.Group("/:id")
		{
			single.GET("", handle.GetArtwork)
			single.PUT("", handle.UpdateArtwork)
			single.DELETE("", handle.DeleteArtwork)

			single.POST("/tags", handle.CreateComponentTag)
			single.GET("/tags", handle.ListComponentTags)
		}
	}
}
