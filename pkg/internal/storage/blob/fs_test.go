package blob_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/internal/storage/blob"
)

func newTestStore(t *testing.T) *blob.FSStore {
	t.Helper()

	store, err := blob.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}

	return store
}

func TestFSRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	data := []byte("not actually a png")

	key, err := store.Put(ctx, data, blob.CategoryArtwork)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if key == "" {
		t.Fatal("Put returned empty key")
	}

	got, err := store.Get(ctx, key, blob.CategoryArtwork)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if !bytes.Equal(got, data) {
		t.Errorf("Get returned %q, want %q", got, data)
	}
}

func TestFSDuplicateBytesGetDistinctKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	data := []byte("same bytes twice")

	k1, err := store.Put(ctx, data, blob.CategoryReference)
	if err != nil {
		t.Fatalf("first Put failed: %v", err)
	}

	k2, err := store.Put(ctx, data, blob.CategoryReference)
	if err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	if k1 == k2 {
		t.Fatalf("identical payloads shared a key: %s", k1)
	}

	// Deleting one copy must not touch the other.
	if err := store.Delete(ctx, k1, blob.CategoryReference); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Get(ctx, k2, blob.CategoryReference); err != nil {
		t.Errorf("surviving copy unreadable after sibling delete: %v", err)
	}
}

func TestFSGetUnknownKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV", blob.CategoryArtwork)
	if err == nil {
		t.Fatal("expected error for unknown key")
	}

	if !apperr.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestFSDeleteUnknownKey(t *testing.T) {
	store := newTestStore(t)

	err := store.Delete(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV", blob.CategoryComponent)
	if !apperr.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestFSCategoriesAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key, err := store.Put(ctx, []byte("artwork bytes"), blob.CategoryArtwork)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Same identifier resolves only inside its own category.
	if _, err := store.Get(ctx, key, blob.CategoryProjectUpdate); !apperr.IsNotFound(err) {
		t.Errorf("key leaked across categories, err = %v", err)
	}

	ok, err := store.Exists(ctx, key, blob.CategoryArtwork)
	if err != nil || !ok {
		t.Errorf("Exists(%s, artwork) = %v, %v; want true, nil", key, ok, err)
	}
}

func TestFSMalformedKeyRejected(t *testing.T) {
	store := newTestStore(t)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		_, err := store.Get(context.Background(), key, blob.CategoryArtwork)
		if !apperr.IsValidation(err) {
			t.Errorf("Get(%q) error = %v, want ValidationError", key, err)
		}
	}
}

func TestFSUnknownCategory(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Put(context.Background(), []byte("x"), blob.Category("thumbnails"))
	if !apperr.IsValidation(err) {
		t.Errorf("Put with unknown category error = %v, want ValidationError", err)
	}

	if _, err := blob.ParseCategory("thumbnails"); err == nil {
		t.Error("ParseCategory accepted unknown category")
	}

	if c, err := blob.ParseCategory("projectUpdate"); err != nil || c != blob.CategoryProjectUpdate {
		t.Errorf("ParseCategory(projectUpdate) = %v, %v", c, err)
	}
}

func TestFSList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	keys := map[string]bool{}

	for range 3 {
		k, err := store.Put(ctx, []byte("payload"), blob.CategoryComponent)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		keys[k] = true
	}

	infos, err := store.List(ctx, blob.CategoryComponent)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(infos) != 3 {
		t.Fatalf("List returned %d blobs, want 3", len(infos))
	}

	for _, info := range infos {
		if !keys[info.Key] {
			t.Errorf("List returned unexpected key %s", info.Key)
		}

		if info.Size != int64(len("payload")) {
			t.Errorf("List size = %d, want %d", info.Size, len("payload"))
		}
	}
}
