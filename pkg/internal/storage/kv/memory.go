package kv

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryKV stores values in process memory. It is the default backend
// for a single-process vault and for tests.
type MemoryKV struct {
	data sync.Map
}

// NewMemoryKV creates an in-memory KV store. It takes no configuration.
func NewMemoryKV(ctx context.Context, config any) (KVStore, error) {
	return &MemoryKV{}, nil
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, exists := m.data.Load(key)
	if !exists {
		return nil, fmt.Errorf("key not found: %s", key)
	}

	data, ok := value.([]byte)
	if !ok {
		return nil, fmt.Errorf("invalid value type for key: %s", key)
	}

	result := make([]byte, len(data))
	copy(result, data)

	return result, nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value []byte, _ time.Duration) error {
	data := make([]byte, len(value))
	copy(data, value)

	m.data.Store(key, data)

	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.data.Delete(key)
	return nil
}

func (m *MemoryKV) Exists(ctx context.Context, key string) (bool, error) {
	_, exists := m.data.Load(key)
	return exists, nil
}

func (m *MemoryKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0)

	m.data.Range(func(key, value any) bool {
		k, ok := key.(string)
		if !ok {
			return true
		}

		if pattern == "" || k == pattern {
			keys = append(keys, k)
		}

		return true
	})

	return keys, nil
}

func (m *MemoryKV) Close() error {
	return nil
}

func init() {
	RegisterKVFactory(KVTypeMemory, NewMemoryKV)
}
