// Package blob implements the image blob store: opaque-identifier addressed
// binary storage namespaced by a closed set of categories.
//
// The contract is deliberately dumb. Put always allocates a fresh random
// identifier; storing identical bytes twice yields two independent files, so
// deleting one logical image can never reclaim bytes another entity still
// references. Get and Delete on an unknown identifier return a typed
// not-found, never a silent nil.
//
// Example:
//
//	store, err := blob.New(ctx)
//	key, err := store.Put(ctx, data, blob.CategoryArtwork)
//	data, err = store.Get(ctx, key, blob.CategoryArtwork)
package blob

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/configs"
)

// Category namespaces blobs by the kind of entity that owns them. The set is
// closed; every category maps to one subdirectory (or key prefix) under the
// store root.
type Category string

const (
	CategoryArtwork       Category = "artwork"
	CategoryReference     Category = "reference"
	CategoryProjectUpdate Category = "projectUpdate"
	CategoryComponent     Category = "component"
)

// Categories lists every valid category, in layout order.
var Categories = []Category{
	CategoryArtwork,
	CategoryReference,
	CategoryProjectUpdate,
	CategoryComponent,
}

// Valid reports whether c is one of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryArtwork, CategoryReference, CategoryProjectUpdate, CategoryComponent:
		return true
	}

	return false
}

// ParseCategory validates a raw string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", apperr.Validation("category", fmt.Sprintf("unknown blob category %q", s))
	}

	return c, nil
}

// Info describes one stored blob, for sweeps and stats.
type Info struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Store is the blob store contract. Implementations are safe for concurrent
// readers; writers follow the process-wide single-writer discipline of the
// repository layer.
type Store interface {
	// Put stores data under a freshly allocated identifier and returns it.
	Put(ctx context.Context, data []byte, category Category) (string, error)
	// Get returns the stored bytes, or a NotFoundError.
	Get(ctx context.Context, key string, category Category) ([]byte, error)
	// Delete removes the blob, or returns a NotFoundError.
	Delete(ctx context.Context, key string, category Category) error
	// Exists reports whether the identifier resolves in the category.
	Exists(ctx context.Context, key string, category Category) (bool, error)
	// List enumerates the category's blobs.
	List(ctx context.Context, category Category) ([]Info, error)
	// Close releases backend resources.
	Close() error
}

// Client wraps a Store; it exists so the storage manager can hold backends
// behind one concrete type the way the DB client does.
type Client struct {
	Store
}

// Factory builds a Store from the blob configuration.
type Factory func(ctx context.Context, cfg *configs.BlobConfig) (Store, error)

var factories = map[configs.BlobType]Factory{}

// RegisterFactory registers a backend factory.
func RegisterFactory(t configs.BlobType, f Factory) {
	factories[t] = f
}

// GetRegisteredBlobTypes returns the registered backend types.
func GetRegisteredBlobTypes() []configs.BlobType {
	types := make([]configs.BlobType, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}

	return types
}

// New builds the configured blob store backend.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().Blob

	factory, ok := factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported blob store type: %s", cfg.Type)
	}

	store, err := factory(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("init blob store (%s): %w", cfg.Type, err)
	}

	return &Client{Store: store}, nil
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(crand.Reader, 0)
)

// newKey allocates a fresh opaque identifier. ULIDs are random per call, so
// identical payloads stored twice never collide. Delete semantics depend on
// that no-dedup property.
func newKey() (string, error) {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", fmt.Errorf("allocate blob identifier: %w", err)
	}

	return id.String(), nil
}
