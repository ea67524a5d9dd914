// Package cache provides a typed cache layer over the key-value store.
//
// Values are serialized as JSON, so any marshalable type works. TTL
// handling and thread safety are delegated to the underlying KVStore.
//
// Basic usage:
//
//	c := cache.NewCache(kvStore)
//
//	err := cache.Set(ctx, c, "artwork:1", artwork, time.Hour)
//	got, err := cache.Get[Artwork](ctx, c, "artwork:1")
//
//	// fetch-through
//	got, err := cache.GetOrSet(ctx, c, "artwork:1", func() (Artwork, error) {
//	    return loadArtwork(1)
//	}, time.Hour)
//
// A cache miss surfaces as the KVStore's not-found error; callers that
// only want the fetch-through behavior should use GetOrSet.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/artvault/artvault/pkg/internal/storage/kv"
)

// Cache wraps a KVStore with typed get/set helpers.
type Cache struct {
	kvStore kv.KVStore
}

// NewCache creates a cache over the given store.
func NewCache(kvStore kv.KVStore) *Cache {
	return &Cache{
		kvStore: kvStore,
	}
}

// Get returns the cached value under key, decoded as T.
func Get[T any](ctx context.Context, c *Cache, key string) (T, error) {
	var zero T

	data, err := c.kvStore.Get(ctx, key)
	if err != nil {
		return zero, err
	}

	var value T
	if err := sonic.Unmarshal(data, &value); err != nil {
		return zero, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return value, nil
}

// Set stores value under key with the given TTL.
func Set[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return c.kvStore.Set(ctx, key, data, ttl)
}

// Delete removes a cached key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.kvStore.Delete(ctx, key)
}

// Exists reports whether a key is cached.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	return c.kvStore.Exists(ctx, key)
}

// GetOrSet returns the cached value, or runs getter and caches its result.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, getter func() (T, error), ttl time.Duration) (T, error) {
	var zero T

	if value, err := Get[T](ctx, c, key); err == nil {
		return value, nil
	}

	value, err := getter()
	if err != nil {
		return zero, err
	}

	// a failed cache write still returns the fresh value
	if setErr := Set(ctx, c, key, value, ttl); setErr != nil {
		return value, nil
	}

	return value, nil
}

// Clear deletes every key the backend reports.
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.kvStore.Keys(ctx, "*")
	if err != nil {
		return err
	}

	for _, key := range keys {
		if delErr := c.kvStore.Delete(ctx, key); delErr != nil {
			return delErr
		}
	}

	return nil
}
