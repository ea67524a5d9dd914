package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/service"
	"github.com/artvault/artvault/pkg/internal/types"
)

// AddReference attaches a reference image to exactly one owning artwork or
// project.
//
//	@Summary	Add a reference image
//	@Tags		references
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		image	formData	file	true	"reference image"
//	@Success	201	{object}	types.ReferenceResponse
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/references [post]
func AddReference(c *gin.Context) {
	var form types.AddReferenceForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, ok := formImage(c, "image", true)
	if !ok {
		return
	}

	svc := service.NewReferenceService(c.Request.Context())

	res, err := svc.AddReference(c.Request.Context(), &form, image)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// GetReference returns one reference.
//
//	@Summary	Get a reference
//	@Tags		references
//	@Produce	json
//	@Param		id	path		string	true	"reference id"
//	@Success	200	{object}	types.ReferenceResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/references/{id} [get]
func GetReference(c *gin.Context) {
	svc := service.NewReferenceService(c.Request.Context())

	res, err := svc.GetReference(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DeleteReference removes the reference and its image blob.
//
//	@Summary	Delete a reference
//	@Tags		references
//	@Produce	json
//	@Param		id	path	string	true	"reference id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/references/{id} [delete]
func DeleteReference(c *gin.Context) {
	svc := service.NewReferenceService(c.Request.Context())

	if err := svc.DeleteReference(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
