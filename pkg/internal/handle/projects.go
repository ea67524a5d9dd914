package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/service"
	"github.com/artvault/artvault/pkg/internal/types"
	"github.com/artvault/artvault/pkg/log"
)

// CreateProject creates a project shell with no timeline yet.
//
//	@Summary	Create a project
//	@Tags		projects
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	types.ProjectResponse
//	@Failure	400	{object}	map[string]string
//	@Router		/api/v1/projects [post]
func CreateProject(c *gin.Context) {
	var req types.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewProjectService(c.Request.Context())

	res, err := svc.CreateProject(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	log.Logger().Info().Str("project", res.ID).Str("name", res.Name).Msg("project created")
	c.JSON(http.StatusCreated, res)
}

// ListProjects returns every project, most recently active first.
//
//	@Summary	List projects
//	@Tags		projects
//	@Produce	json
//	@Success	200	{object}	types.ListProjectsResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/projects [get]
func ListProjects(c *gin.Context) {
	svc := service.NewProjectService(c.Request.Context())

	res, err := svc.ListProjects(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetProject returns one project with its derived activity date.
//
//	@Summary	Get a project
//	@Tags		projects
//	@Produce	json
//	@Param		id	path		string	true	"project id"
//	@Success	200	{object}	types.ProjectResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/projects/{id} [get]
func GetProject(c *gin.Context) {
	svc := service.NewProjectService(c.Request.Context())

	res, err := svc.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// UpdateProject merges a partial update into an existing project.
//
//	@Summary	Update a project
//	@Tags		projects
//	@Accept		json
//	@Produce	json
//	@Param		id	path		string	true	"project id"
//	@Success	200	{object}	types.ProjectResponse
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/api/v1/projects/{id} [put]
func UpdateProject(c *gin.Context) {
	var req types.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewProjectService(c.Request.Context())

	res, err := svc.UpdateProject(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DeleteProject removes the project, its timeline, its references and all
// blobs owned through them.
//
//	@Summary	Delete a project
//	@Tags		projects
//	@Produce	json
//	@Param		id	path		string	true	"project id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/projects/{id} [delete]
func DeleteProject(c *gin.Context) {
	svc := service.NewProjectService(c.Request.Context())

	if err := svc.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SaveWorkInProgress appends a timeline update to the named project, creating
// the project first when it does not exist. The snapshot image is optional.
//
//	@Summary	Save a work-in-progress snapshot
//	@Tags		projects
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		image	formData	file	false	"snapshot image"
//	@Success	201	{object}	types.ProjectUpdateResponse
//	@Failure	400	{object}	map[string]string
//	@Router		/api/v1/projects/wip [post]
func SaveWorkInProgress(c *gin.Context) {
	var form types.SaveWorkInProgressForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, ok := formImage(c, "image", false)
	if !ok {
		return
	}

	svc := service.NewProjectService(c.Request.Context())

	res, err := svc.SaveWorkInProgress(c.Request.Context(), &form, image)
	if err != nil {
		writeError(c, err)
		return
	}

	log.Logger().Info().
		Str("project", res.ProjectID).
		Str("update", res.ID).
		Msg("work in progress saved")
	c.JSON(http.StatusCreated, res)
}

// ListProjectUpdates returns the project's timeline, newest first.
//
//	@Summary	List a project's updates
//	@Tags		projects
//	@Produce	json
//	@Param		id	path		string	true	"project id"
//	@Success	200	{object}	types.ListProjectUpdatesResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/projects/{id}/updates [get]
func ListProjectUpdates(c *gin.Context) {
	svc := service.NewProjectService(c.Request.Context())

	res, err := svc.ListProjectUpdates(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DeleteProjectUpdate removes one timeline entry and recomputes the project's
// activity date.
//
//	@Summary	Delete a project update
//	@Tags		projects
//	@Produce	json
//	@Param		updateId	path	string	true	"update id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/projects/updates/{updateId} [delete]
func DeleteProjectUpdate(c *gin.Context) {
	svc := service.NewProjectService(c.Request.Context())

	if err := svc.DeleteProjectUpdate(c.Request.Context(), c.Param("updateId")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
