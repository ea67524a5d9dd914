package handle

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/configs"
	ctxPkg "github.com/artvault/artvault/pkg/context"
	"github.com/artvault/artvault/pkg/internal/jobs"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
)

// ServeBlob streams one stored image. The content type is sniffed from the
// bytes; identifiers are opaque so nothing about the type lives in the key.
//
//	@Summary	Serve a blob
//	@Tags		blobs
//	@Produce	octet-stream
//	@Param		category	path	string	true	"blob category"
//	@Param		key			path	string	true	"blob identifier"
//	@Success	200	{file}		binary
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/blobs/{category}/{key} [get]
func ServeBlob(c *gin.Context) {
	category, err := blobc.ParseCategory(c.Param("category"))
	if err != nil {
		writeError(c, err)
		return
	}

	store := ctxPkg.GetBlobClient(c.Request.Context())
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "blob store not initialized"})
		return
	}

	data, err := store.Get(c.Request.Context(), c.Param("key"), category)
	if err != nil {
		writeError(c, err)
		return
	}

	// Keys are immutable, so far-future caching is safe.
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

// SweepBlobs runs the orphan sweep on demand. A dry_run query parameter
// previews the pass without deleting anything; grace_hours overrides the
// configured grace period.
//
//	@Summary	Sweep orphaned blobs
//	@Tags		blobs
//	@Produce	json
//	@Param		dry_run	query		bool	false	"preview only"
//	@Success	200	{object}	jobs.SweepResult
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/blobs/sweep [post]
func SweepBlobs(c *gin.Context) {
	cfg := configs.GetConfig().Sweep

	dryRun := cfg.DryRun
	if raw, ok := c.GetQuery("dry_run"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dry_run must be a boolean"})
			return
		}

		dryRun = v
	}

	grace := time.Duration(cfg.GraceHours) * time.Hour
	if raw, ok := c.GetQuery("grace_hours"); ok {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "grace_hours must be a non-negative integer"})
			return
		}

		grace = time.Duration(hours) * time.Hour
	}

	result, err := jobs.SweepOrphanBlobs(c.Request.Context(), grace, dryRun)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
