package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/artvault/artvault/pkg/cache"
)

type cachedPiece struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Medium string `json:"medium"`
}

// mockKVStore is an in-memory KVStore for the cache tests.
type mockKVStore struct {
	data map[string][]byte
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{
		data: make(map[string][]byte),
	}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, exists := m.data[key]; exists {
		return value, nil
	}

	return nil, fmt.Errorf("key not found")
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockKVStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockKVStore) Exists(ctx context.Context, key string) (bool, error) {
	_, exists := m.data[key]
	return exists, nil
}

func (m *mockKVStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}

	return keys, nil
}

func (m *mockKVStore) Close() error {
	return nil
}

func TestNewCache(t *testing.T) {
	mockStore := newMockKVStore()
	cache := cache.NewCache(mockStore)

	if cache == nil {
		t.Fatal("NewCache returned nil")
	}
}

func TestCache_Get(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	_, err := cache.Get[cachedPiece](ctx, c, "nonexistent")
	if err == nil {
		t.Error("Expected error for nonexistent key")
	}

	piece := cachedPiece{ID: 1, Title: "Morning Study", Medium: "oil"}

	err = cache.Set(ctx, c, "artwork:1", piece, 0)
	if err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	got, err := cache.Get[cachedPiece](ctx, c, "artwork:1")
	if err != nil {
		t.Fatalf("Failed to get cache: %v", err)
	}

	if got.ID != piece.ID || got.Title != piece.Title || got.Medium != piece.Medium {
		t.Errorf("Retrieved piece %+v does not match original %+v", got, piece)
	}
}

func TestCache_Set(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	piece := cachedPiece{ID: 2, Title: "Harbor at Dusk", Medium: "watercolor"}

	err := cache.Set(ctx, c, "artwork:2", piece, 0)
	if err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	data, exists := mockStore.data["artwork:2"]
	if !exists {
		t.Fatal("Data not stored in mock store")
	}

	if len(data) == 0 {
		t.Error("Stored data is empty")
	}
}

func TestCache_Delete(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	piece := cachedPiece{ID: 3, Title: "Untitled", Medium: "charcoal"}

	err := cache.Set(ctx, c, "artwork:3", piece, 0)
	if err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	exists, err := c.Exists(ctx, "artwork:3")
	if err != nil {
		t.Fatalf("Failed to check existence: %v", err)
	}

	if !exists {
		t.Error("Key should exist before deletion")
	}

	err = c.Delete(ctx, "artwork:3")
	if err != nil {
		t.Fatalf("Failed to delete cache: %v", err)
	}

	exists, err = c.Exists(ctx, "artwork:3")
	if err != nil {
		t.Fatalf("Failed to check existence after deletion: %v", err)
	}

	if exists {
		t.Error("Key should not exist after deletion")
	}
}

func TestCache_Exists(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	exists, err := c.Exists(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("Failed to check existence: %v", err)
	}

	if exists {
		t.Error("Nonexistent key should not exist")
	}

	piece := cachedPiece{ID: 4, Title: "Field Notes", Medium: "ink"}

	err = cache.Set(ctx, c, "artwork:4", piece, 0)
	if err != nil {
		t.Fatalf("Failed to set cache: %v", err)
	}

	exists, err = c.Exists(ctx, "artwork:4")
	if err != nil {
		t.Fatalf("Failed to check existence: %v", err)
	}

	if !exists {
		t.Error("Existing key should exist")
	}
}

func TestGetOrSet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	callCount := 0
	getter := func() (cachedPiece, error) {
		callCount++
		return cachedPiece{ID: 5, Title: "Window Light", Medium: "pastel"}, nil
	}

	first, err := cache.GetOrSet(ctx, c, "artwork:5", getter, 0)
	if err != nil {
		t.Fatalf("Failed to get or set: %v", err)
	}

	if callCount != 1 {
		t.Errorf("Expected getter to be called once, got %d", callCount)
	}

	second, err := cache.GetOrSet(ctx, c, "artwork:5", getter, 0)
	if err != nil {
		t.Fatalf("Failed to get or set: %v", err)
	}

	if callCount != 1 {
		t.Errorf("Expected getter to be called only once, got %d", callCount)
	}

	if first.ID != second.ID || first.Title != second.Title || first.Medium != second.Medium {
		t.Errorf("Results don't match: %+v vs %+v", first, second)
	}
}

func TestGetOrSet_GetterError(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	getter := func() (cachedPiece, error) {
		return cachedPiece{}, errors.New("getter error")
	}

	_, err := cache.GetOrSet(ctx, c, "artwork:error", getter, 0)
	if err == nil {
		t.Error("Expected error from getter")
	}

	if err.Error() != "getter error" {
		t.Errorf("Expected 'getter error', got '%s'", err.Error())
	}
}

func TestCache_Clear(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	pieces := []cachedPiece{
		{ID: 6, Title: "Study in Blue", Medium: "oil"},
		{ID: 7, Title: "Quarry", Medium: "graphite"},
		{ID: 8, Title: "First Snow", Medium: "gouache"},
	}

	for i, piece := range pieces {
		key := fmt.Sprintf("artwork:%d", piece.ID)

		err := cache.Set(ctx, c, key, piece, 0)
		if err != nil {
			t.Fatalf("Failed to set cache for piece %d: %v", i, err)
		}
	}

	if len(mockStore.data) != len(pieces) {
		t.Errorf("Expected %d items, got %d", len(pieces), len(mockStore.data))
	}

	err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Failed to clear cache: %v", err)
	}

	if len(mockStore.data) != 0 {
		t.Errorf("Expected 0 items after clear, got %d", len(mockStore.data))
	}
}

func TestCache_GenericTypes(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	err := cache.Set(ctx, c, "string:key", "hello world", 0)
	if err != nil {
		t.Fatalf("Failed to set string: %v", err)
	}

	str, err := cache.Get[string](ctx, c, "string:key")
	if err != nil {
		t.Fatalf("Failed to get string: %v", err)
	}

	if str != "hello world" {
		t.Errorf("Expected 'hello world', got '%s'", str)
	}

	err = cache.Set(ctx, c, "int:key", 42, 0)
	if err != nil {
		t.Fatalf("Failed to set int: %v", err)
	}

	num, err := cache.Get[int](ctx, c, "int:key")
	if err != nil {
		t.Fatalf("Failed to get int: %v", err)
	}

	if num != 42 {
		t.Errorf("Expected 42, got %d", num)
	}

	slice := []string{"a", "b", "c"}

	err = cache.Set(ctx, c, "slice:key", slice, 0)
	if err != nil {
		t.Fatalf("Failed to set slice: %v", err)
	}

	got, err := cache.Get[[]string](ctx, c, "slice:key")
	if err != nil {
		t.Fatalf("Failed to get slice: %v", err)
	}

	if len(got) != len(slice) {
		t.Errorf("Slice length mismatch: expected %d, got %d", len(slice), len(got))
	}

	for i, v := range slice {
		if got[i] != v {
			t.Errorf("Slice element %d mismatch: expected %s, got %s", i, v, got[i])
		}
	}
}
