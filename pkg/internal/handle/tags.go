package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/service"
	"github.com/artvault/artvault/pkg/internal/types"
)

// CreateComponentTag pins an annotation to a point of an artwork's image. An
// optional close-up image travels in the same multipart form.
//
//	@Summary	Create a component tag
//	@Tags		tags
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id	path		string	true	"artwork id"
//	@Param		image	formData	file	false	"close-up image"
//	@Success	201	{object}	types.ComponentTagResponse
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/artworks/{id}/tags [post]
func CreateComponentTag(c *gin.Context) {
	var form types.CreateComponentTagForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, ok := formImage(c, "image", false)
	if !ok {
		return
	}

	svc := service.NewTagService(c.Request.Context())

	res, err := svc.CreateComponentTag(c.Request.Context(), c.Param("id"), &form, image)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// ListComponentTags returns an artwork's tags, newest first.
//
//	@Summary	List an artwork's component tags
//	@Tags		tags
//	@Produce	json
//	@Param		id	path		string	true	"artwork id"
//	@Success	200	{array}		types.ComponentTagResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/artworks/{id}/tags [get]
func ListComponentTags(c *gin.Context) {
	svc := service.NewTagService(c.Request.Context())

	res, err := svc.ListComponentTags(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DeleteComponentTag removes the tag and its close-up blob when present.
//
//	@Summary	Delete a component tag
//	@Tags		tags
//	@Produce	json
//	@Param		tagId	path	string	true	"tag id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/tags/{tagId} [delete]
func DeleteComponentTag(c *gin.Context) {
	svc := service.NewTagService(c.Request.Context())

	if err := svc.DeleteComponentTag(c.Request.Context(), c.Param("tagId")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
