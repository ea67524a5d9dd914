package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/internal/service"
)

// GetVaultStats returns entity counts and per-category blob usage.
//
//	@Summary	Vault statistics
//	@Tags		stats
//	@Produce	json
//	@Success	200	{object}	types.VaultStatsResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/stats [get]
func GetVaultStats(c *gin.Context) {
	svc := service.NewStatsService(c.Request.Context())

	res, err := svc.VaultStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetOrphanBlobs lists blobs no live entity references, per category.
//
//	@Summary	List orphaned blobs
//	@Tags		stats
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/stats/orphans [get]
func GetOrphanBlobs(c *gin.Context) {
	svc := service.NewStatsService(c.Request.Context())

	orphans, err := svc.OrphanBlobs(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orphans": orphans})
}
