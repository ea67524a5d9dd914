package service_test

import (
	"testing"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/internal/service"
	"github.com/artvault/artvault/pkg/internal/types"
)

func galleryNames(t *testing.T, list *types.ListGalleriesResponse) []string {
	t.Helper()

	names := make([]string, 0, len(list.Galleries))
	for _, g := range list.Galleries {
		names = append(names, g.Name)
	}

	return names
}

func TestReorderGalleries(t *testing.T) {
	ctx := newTestContext(t)
	galleries := service.NewGalleryService(ctx)
	ordering := service.NewOrderingService(ctx)

	ids := map[string]string{}

	for _, name := range []string{"A", "B", "C", "D"} {
		g, err := galleries.CreateGallery(ctx, &types.CreateGalleryRequest{Name: name})
		if err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}

		ids[name] = g.ID
	}

	// Move D to the front.
	if err := ordering.ReorderGalleries(ctx, &types.ReorderRequest{MovedID: ids["D"], FromIndex: 3, ToIndex: 0}); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}

	list, err := galleries.ListGalleries(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := []string{"D", "A", "B", "C"}
	got := galleryNames(t, list)

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	// Ranks rewrite to contiguous 0-based positions.
	for i, g := range list.Galleries {
		if g.SortOrder != i {
			t.Errorf("%s sort order = %d, want %d", g.Name, g.SortOrder, i)
		}
	}
}

func TestReorderNoopKeepsRanks(t *testing.T) {
	ctx := newTestContext(t)
	galleries := service.NewGalleryService(ctx)
	ordering := service.NewOrderingService(ctx)

	var ids []string

	for _, name := range []string{"A", "B", "C"} {
		g, err := galleries.CreateGallery(ctx, &types.CreateGalleryRequest{Name: name})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		ids = append(ids, g.ID)
	}

	before, err := galleries.ListGalleries(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if err := ordering.ReorderGalleries(ctx, &types.ReorderRequest{MovedID: ids[1], FromIndex: 1, ToIndex: 1}); err != nil {
		t.Fatalf("no-op reorder failed: %v", err)
	}

	after, err := galleries.ListGalleries(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	for i := range before.Galleries {
		if after.Galleries[i].ID != before.Galleries[i].ID ||
			after.Galleries[i].SortOrder != before.Galleries[i].SortOrder {
			t.Errorf("no-op move changed position %d", i)
		}
	}
}

func TestReorderUnknownMember(t *testing.T) {
	ctx := newTestContext(t)
	galleries := service.NewGalleryService(ctx)
	ordering := service.NewOrderingService(ctx)

	if _, err := galleries.CreateGallery(ctx, &types.CreateGalleryRequest{Name: "A"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err := ordering.ReorderGalleries(ctx, &types.ReorderRequest{MovedID: "ghost", ToIndex: 0})
	if !apperr.IsNotFound(err) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestReorderGalleryArtworks(t *testing.T) {
	ctx := newTestContext(t)
	galleries := service.NewGalleryService(ctx)
	artworks := service.NewArtworkService(ctx)
	ordering := service.NewOrderingService(ctx)

	g, err := galleries.CreateGallery(ctx, &types.CreateGalleryRequest{Name: "Wall"})
	if err != nil {
		t.Fatalf("create gallery failed: %v", err)
	}

	ids := map[string]string{}

	for _, name := range []string{"First", "Second", "Third"} {
		a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: name, GalleryID: g.ID}, testImage, nil)
		if err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}

		ids[name] = a.ID
	}

	// Move Third between First and Second.
	if err := ordering.ReorderGalleryArtworks(ctx, g.ID, &types.ReorderRequest{
		MovedID: ids["Third"], FromIndex: 2, ToIndex: 1,
	}); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}

	list, err := galleries.ListGalleryArtworks(ctx, g.ID)
	if err != nil {
		t.Fatalf("list members failed: %v", err)
	}

	want := []string{"First", "Third", "Second"}
	for i, a := range list.Artworks {
		if a.Name != want[i] {
			t.Fatalf("member %d = %s, want %v", i, a.Name, want)
		}
	}

	// Clamped destination: far past the end lands last.
	if err := ordering.ReorderGalleryArtworks(ctx, g.ID, &types.ReorderRequest{
		MovedID: ids["First"], FromIndex: 0, ToIndex: 99,
	}); err != nil {
		t.Fatalf("clamped reorder failed: %v", err)
	}

	list, err = galleries.ListGalleryArtworks(ctx, g.ID)
	if err != nil {
		t.Fatalf("list members failed: %v", err)
	}

	if last := list.Artworks[len(list.Artworks)-1]; last.Name != "First" {
		t.Errorf("last member = %s, want First", last.Name)
	}
}

func TestReorderArtworksDomain(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)
	ordering := service.NewOrderingService(ctx)

	var ids []string

	for _, name := range []string{"A", "B", "C"} {
		a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: name}, testImage, nil)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		ids = append(ids, a.ID)
	}

	if err := ordering.ReorderArtworks(ctx, &types.ReorderRequest{MovedID: ids[0], FromIndex: 0, ToIndex: 2}); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}

	list, err := artworks.ListArtworks(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := []string{"B", "C", "A"}
	for i, a := range list.Artworks {
		if a.Name != want[i] {
			t.Fatalf("position %d = %s, want %v", i, a.Name, want)
		}

		if a.SortOrder != i {
			t.Errorf("%s sort order = %d, want %d", a.Name, a.SortOrder, i)
		}
	}
}
