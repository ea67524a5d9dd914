package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/context"
	"github.com/artvault/artvault/pkg/internal/storage"
)

// StorageMiddleware injects the storage manager into every request context so
// services can reach the DB, blob store, cache and broker.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
