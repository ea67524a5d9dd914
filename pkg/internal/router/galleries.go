package router

import (
	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/handle"
)

// RegisterGalleriesRoutes binds the gallery and membership routes.
func RegisterGalleriesRoutes(g *gin.RouterGroup) {
	galleries := g.Group("/galleries")
	{
		galleries.POST("", handle.CreateGallery)
		galleries.GET("", handle.ListGalleries)
		galleries.POST("/reorder", handle.ReorderGalleries)

		single := galleries.Group("/:id")
		{
			single.GET("", handle.GetGallery)
			single.PUT("", handle.RenameGallery)
			single.DELETE("", handle.DeleteGallery)

			members := single.Group("/artworks")
			{
				members.GET("", handle.ListGalleryArtworks)
				members.POST("", handle.AddGalleryArtwork)
				members.POST("/reorder", handle.ReorderGalleryArtworks)
				members.DELETE("/:artworkId", handle.RemoveGalleryArtwork)
			}
		}
	}
}
