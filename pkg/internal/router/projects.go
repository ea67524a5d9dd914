package router

import (
	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/handle"
)

// RegisterProjectsRoutes binds the project and timeline routes.
func RegisterProjectsRoutes(g *gin.RouterGroup) {
	projects := g.Group("/projects")
	{
		projects.POST("", handle.CreateProject)
		projects.GET("", handle.ListProjects)
		projects.POST("/wip", handle.SaveWorkInProgress)
		projects.DELETE("/updates/:updateId", handle.DeleteProjectUpdate)

		single := projects.Group("/:id")
		{
			single.GET("", handle.GetProject)
			single.PUT("", handle.UpdateProject)
			single.DELETE("", handle.DeleteProject)
			single.GET("/updates", handle.ListProjectUpdates)
		}
	}
}
