package router

import (
	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/handle"
)

// RegisterReferencesRoutes binds the reference image routes.
func RegisterReferencesRoutes(g *gin.RouterGroup) {
	references := g.Group("/references")
	{
		references.POST("", handle.AddReference)
		references.GET("/:id", handle.GetReference)
		references.DELETE("/:id", handle.DeleteReference)
	}
}
