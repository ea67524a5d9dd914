package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/service"
	"github.com/artvault/artvault/pkg/internal/types"
	"github.com/artvault/artvault/pkg/log"
)

// CreateArtwork registers a new artwork from a multipart form. The primary
// image is required; a reference image is optional.
//
//	@Summary	Create an artwork
//	@Tags		artworks
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		image	formData	file	true	"primary image"
//	@Success	201	{object}	types.ArtworkResponse
//	@Failure	400	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/artworks [post]
func CreateArtwork(c *gin.Context) {
	var form types.CreateArtworkForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, ok := formImage(c, "image", true)
	if !ok {
		return
	}

	referenceImage, ok := formImage(c, "reference_image", false)
	if !ok {
		return
	}

	svc := service.NewArtworkService(c.Request.Context())

	res, err := svc.CreateArtwork(c.Request.Context(), &form, image, referenceImage)
	if err != nil {
		writeError(c, err)
		return
	}

	log.Logger().Info().Str("artwork", res.ID).Str("name", res.Name).Msg("artwork created")
	c.JSON(http.StatusCreated, res)
}

// GetArtwork returns one artwork with its tags and references.
//
//	@Summary	Get an artwork
//	@Tags		artworks
//	@Produce	json
//	@Param		id	path		string	true	"artwork id"
//	@Success	200	{object}	types.ArtworkResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/artworks/{id} [get]
func GetArtwork(c *gin.Context) {
	svc := service.NewArtworkService(c.Request.Context())

	res, err := svc.GetArtwork(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ListArtworks returns every artwork ordered by rank.
//
//	@Summary	List artworks
//	@Tags		artworks
//	@Produce	json
//	@Success	200	{object}	types.ListArtworksResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/artworks [get]
func ListArtworks(c *gin.Context) {
	svc := service.NewArtworkService(c.Request.Context())

	res, err := svc.ListArtworks(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// UpdateArtwork merges a partial update into an existing artwork.
//
//	@Summary	Update an artwork
//	@Tags		artworks
//	@Accept		json
//	@Produce	json
//	@Param		id	path		string	true	"artwork id"
//	@Success	200	{object}	types.ArtworkResponse
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/api/v1/artworks/{id} [put]
func UpdateArtwork(c *gin.Context) {
	var form types.UpdateArtworkForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewArtworkService(c.Request.Context())

	res, err := svc.UpdateArtwork(c.Request.Context(), c.Param("id"), &form)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DeleteArtwork removes the artwork, its tags, references, gallery
// memberships and its own image blobs.
//
//	@Summary	Delete an artwork
//	@Tags		artworks
//	@Produce	json
//	@Param		id	path		string	true	"artwork id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/artworks/{id} [delete]
func DeleteArtwork(c *gin.Context) {
	svc := service.NewArtworkService(c.Request.Context())

	if err := svc.DeleteArtwork(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReorderArtworks moves one artwork within the global ordering.
//
//	@Summary	Reorder artworks
//	@Tags		artworks
//	@Accept		json
//	@Produce	json
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/artworks/reorder [post]
func ReorderArtworks(c *gin.Context) {
	var req types.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewOrderingService(c.Request.Context())

	if err := svc.ReorderArtworks(c.Request.Context(), &req); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
