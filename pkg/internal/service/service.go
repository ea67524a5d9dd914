// Package service implements the repository operations over the entity graph
// and the blob store. Every public method is one logical transaction: it may
// write blobs and graph rows, but the graph mutation commits atomically and
// blob writes always happen before the rows referencing them, so a reader
// can never observe a dangling blob identifier. Orphaned blobs (written but
// never referenced, or left behind by a failed commit) are tolerated and
// reclaimed by the sweep job.
//
// All mutations run under the storage manager's process-wide write lock.
// That single-writer discipline is what makes check-then-insert patterns
// (gallery name uniqueness, conflicting-delete detection) sound without
// store-level constraints.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/cache"
	ctxPkg "github.com/artvault/artvault/pkg/context"
	"github.com/artvault/artvault/pkg/internal/storage"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	"github.com/artvault/artvault/pkg/internal/storage/db"
	nlog "github.com/artvault/artvault/pkg/log"
)

// Read-side cache keys, dropped on every mutation of the matching domain.
const (
	cacheKeyGalleries = "av:list:galleries"
	cacheKeyArtworks  = "av:list:artworks"
	cacheKeyProjects  = "av:list:projects"
)

func cacheKeyGalleryMembers(galleryID string) string {
	return "av:gallery:" + galleryID + ":members"
}

var errStorageNotReady = errors.New("storage not initialized")

// base carries the clients every service needs. Services embed it and are
// constructed per request from the context the storage middleware populated.
type base struct {
	mgr      *storage.Manager
	dbc      *db.Client
	blobc    *blobc.Client
	cache    *cache.Cache
	notifier *notifier
}

func newBase(c context.Context) base {
	mgr := ctxPkg.GetManager(c)
	b := base{mgr: mgr}

	if mgr == nil {
		nlog.Logger().Warn().Msg("storage manager missing from context, service will reject operations")

		return b
	}

	b.dbc = mgr.GetDBClient()
	b.blobc = mgr.GetBlobClient()

	if kvc := mgr.GetKVClient(); kvc != nil {
		b.cache = cache.NewCache(kvc)
	}

	b.notifier = newNotifier(mgr.GetMQClient())

	return b
}

func (b *base) ready() error {
	if b.mgr == nil || b.dbc == nil || b.dbc.GetDB() == nil || b.blobc == nil {
		return errStorageNotReady
	}

	return nil
}

// db returns a context-bound read handle.
func (b *base) db(ctx context.Context) *gorm.DB {
	return b.dbc.GetDB().WithContext(ctx)
}

// write runs fn as one atomic mutation: the write lock serialises it against
// every other writer and the transaction rolls the graph back completely on
// failure. Errors come back as taxonomy types, wrapped as PersistenceError
// when they are not already.
func (b *base) write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if err := b.ready(); err != nil {
		return apperr.Persistence(op, err)
	}

	return b.mgr.Write(func() error {
		return apperr.Persistence(op, b.dbc.GetDB().WithContext(ctx).Transaction(fn))
	})
}

// invalidate drops read-side cache entries after a mutation. Best effort: a
// failed delete leaves the stale entry in place until its TTL expires, so
// reads may see pre-mutation data for up to listCacheTTL.
func (b *base) invalidate(ctx context.Context, keys ...string) {
	if b.cache == nil {
		return
	}

	for _, k := range keys {
		if err := b.cache.Delete(ctx, k); err != nil {
			nlog.Logger().Warn().Err(err).Str("key", k).Msg("cache invalidation failed, stale entry remains until TTL expiry")
		}
	}
}

// newID allocates a fresh entity identifier. Entity ids are UUIDs; blob
// identifiers are ULIDs allocated by the blob store itself.
func newID() string {
	return uuid.NewString()
}
