package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/service"
	"github.com/artvault/artvault/pkg/internal/types"
	"github.com/artvault/artvault/pkg/log"
)

// CreateGallery creates a named gallery. Names are unique case-sensitively;
// a clash answers 409.
//
//	@Summary	Create a gallery
//	@Tags		galleries
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	types.GalleryResponse
//	@Failure	400	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/api/v1/galleries [post]
func CreateGallery(c *gin.Context) {
	var req types.CreateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.CreateGallery(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	log.Logger().Info().Str("gallery", res.ID).Str("name", res.Name).Msg("gallery created")
	c.JSON(http.StatusCreated, res)
}

// ListGalleries returns every gallery ordered by rank.
//
//	@Summary	List galleries
//	@Tags		galleries
//	@Produce	json
//	@Success	200	{object}	types.ListGalleriesResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/galleries [get]
func ListGalleries(c *gin.Context) {
	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.ListGalleries(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetGallery returns one gallery.
//
//	@Summary	Get a gallery
//	@Tags		galleries
//	@Produce	json
//	@Param		id	path		string	true	"gallery id"
//	@Success	200	{object}	types.GalleryResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/galleries/{id} [get]
func GetGallery(c *gin.Context) {
	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.GetGallery(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// RenameGallery renames a gallery, keeping the uniqueness rule.
//
//	@Summary	Rename a gallery
//	@Tags		galleries
//	@Accept		json
//	@Produce	json
//	@Param		id	path		string	true	"gallery id"
//	@Success	200	{object}	types.GalleryResponse
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/api/v1/galleries/{id} [put]
func RenameGallery(c *gin.Context) {
	var req types.RenameGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.RenameGallery(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DeleteGallery removes the gallery and its membership edges. Member artworks
// survive.
//
//	@Summary	Delete a gallery
//	@Tags		galleries
//	@Produce	json
//	@Param		id	path		string	true	"gallery id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/galleries/{id} [delete]
func DeleteGallery(c *gin.Context) {
	svc := service.NewGalleryService(c.Request.Context())

	if err := svc.DeleteGallery(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddGalleryArtwork places an artwork into a gallery. Re-adding an existing
// member is a no-op.
//
//	@Summary	Add an artwork to a gallery
//	@Tags		galleries
//	@Accept		json
//	@Produce	json
//	@Param		id	path		string	true	"gallery id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/galleries/{id}/artworks [post]
func AddGalleryArtwork(c *gin.Context) {
	var req types.AddGalleryArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewGalleryService(c.Request.Context())

	if err := svc.AddArtwork(c.Request.Context(), c.Param("id"), &req); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveGalleryArtwork removes an artwork from a gallery without touching the
// artwork itself.
//
//	@Summary	Remove an artwork from a gallery
//	@Tags		galleries
//	@Produce	json
//	@Param		id		path	string	true	"gallery id"
//	@Param		artworkId	path	string	true	"artwork id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/galleries/{id}/artworks/{artworkId} [delete]
func RemoveGalleryArtwork(c *gin.Context) {
	svc := service.NewGalleryService(c.Request.Context())

	if err := svc.RemoveArtwork(c.Request.Context(), c.Param("id"), c.Param("artworkId")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListGalleryArtworks returns the gallery's member artworks in gallery order.
//
//	@Summary	List a gallery's artworks
//	@Tags		galleries
//	@Produce	json
//	@Param		id	path		string	true	"gallery id"
//	@Success	200	{object}	types.ListArtworksResponse
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/galleries/{id}/artworks [get]
func ListGalleryArtworks(c *gin.Context) {
	svc := service.NewGalleryService(c.Request.Context())

	res, err := svc.ListGalleryArtworks(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ReorderGalleries moves one gallery within the gallery ordering.
//
//	@Summary	Reorder galleries
//	@Tags		galleries
//	@Accept		json
//	@Produce	json
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/galleries/reorder [post]
func ReorderGalleries(c *gin.Context) {
	var req types.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewOrderingService(c.Request.Context())

	if err := svc.ReorderGalleries(c.Request.Context(), &req); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReorderGalleryArtworks moves one member within a gallery's ordering.
//
//	@Summary	Reorder a gallery's artworks
//	@Tags		galleries
//	@Accept		json
//	@Produce	json
//	@Param		id	path	string	true	"gallery id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/galleries/{id}/artworks/reorder [post]
func ReorderGalleryArtworks(c *gin.Context) {
	var req types.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewOrderingService(c.Request.Context())

	if err := svc.ReorderGalleryArtworks(c.Request.Context(), c.Param("id"), &req); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
