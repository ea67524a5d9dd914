package storage

import (
	"context"

	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
)

type contextKey string

const managerKey contextKey = "storageManager"

// WithManager stores the Manager in the context.
func WithManager(ctx context.Context, mgr *Manager) context.Context {
	return context.WithValue(ctx, managerKey, mgr)
}

// GetManagerFromContext retrieves the Manager from the context.
func GetManagerFromContext(ctx context.Context) *Manager {
	if mgr, ok := ctx.Value(managerKey).(*Manager); ok {
		return mgr
	}

	return nil
}

// GetBlobClientFromContext retrieves the blob client from the context.
func GetBlobClientFromContext(ctx context.Context) *blobc.Client {
	if mgr := GetManagerFromContext(ctx); mgr != nil {
		return mgr.Blob
	}

	return nil
}
