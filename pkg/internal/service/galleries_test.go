package service_test

import (
	"errors"
	"testing"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/internal/service"
	"github.com/artvault/artvault/pkg/internal/types"
)

func TestCreateGalleryDuplicateName(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewGalleryService(ctx)

	if _, err := svc.CreateGallery(ctx, &types.CreateGalleryRequest{Name: "Landscapes"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.CreateGallery(ctx, &types.CreateGalleryRequest{Name: "Landscapes"})
	if !errors.Is(err, apperr.ErrDuplicateName) {
		t.Fatalf("second create error = %v, want ErrDuplicateName", err)
	}

	// Case-sensitive: a different casing is a different name.
	if _, err := svc.CreateGallery(ctx, &types.CreateGalleryRequest{Name: "landscapes"}); err != nil {
		t.Fatalf("case-variant create failed: %v", err)
	}

	list, err := svc.ListGalleries(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if list.Total != 2 {
		t.Errorf("gallery count = %d, want 2", list.Total)
	}
}

func TestCreateGalleryEmptyName(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewGalleryService(ctx)

	_, err := svc.CreateGallery(ctx, &types.CreateGalleryRequest{Name: ""})
	if !apperr.IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestListGalleriesOrder(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewGalleryService(ctx)

	for _, name := range []string{"Charcoal", "Acrylics", "Bronze"} {
		if _, err := svc.CreateGallery(ctx, &types.CreateGalleryRequest{Name: name}); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
	}

	list, err := svc.ListGalleries(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	// Creation order is insertion order: each new gallery ranks last.
	want := []string{"Charcoal", "Acrylics", "Bronze"}
	for i, g := range list.Galleries {
		if g.Name != want[i] {
			t.Errorf("position %d = %s, want %s", i, g.Name, want[i])
		}

		if g.SortOrder != i {
			t.Errorf("%s sort order = %d, want %d", g.Name, g.SortOrder, i)
		}
	}
}

func TestRenameGalleryConflicts(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewGalleryService(ctx)

	a, err := svc.CreateGallery(ctx, &types.CreateGalleryRequest{Name: "Sketches"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.CreateGallery(ctx, &types.CreateGalleryRequest{Name: "Studies"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.RenameGallery(ctx, a.ID, &types.RenameGalleryRequest{Name: "Studies"})
	if !errors.Is(err, apperr.ErrDuplicateName) {
		t.Fatalf("rename to taken name error = %v, want ErrDuplicateName", err)
	}

	renamed, err := svc.RenameGallery(ctx, a.ID, &types.RenameGalleryRequest{Name: "Field Sketches"})
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	if renamed.Name != "Field Sketches" {
		t.Errorf("renamed gallery name = %s", renamed.Name)
	}
}

func TestGalleryMembership(t *testing.T) {
	ctx := newTestContext(t)
	galleries := service.NewGalleryService(ctx)
	artworks := service.NewArtworkService(ctx)

	g, err := galleries.CreateGallery(ctx, &types.CreateGalleryRequest{Name: "Landscapes"})
	if err != nil {
		t.Fatalf("create gallery failed: %v", err)
	}

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Sunset"}, testImage, nil)
	if err != nil {
		t.Fatalf("create artwork failed: %v", err)
	}

	if err := galleries.AddArtwork(ctx, g.ID, &types.AddGalleryArtworkRequest{ArtworkID: a.ID}); err != nil {
		t.Fatalf("add artwork failed: %v", err)
	}

	// Duplicate membership is a no-op, not a second edge.
	if err := galleries.AddArtwork(ctx, g.ID, &types.AddGalleryArtworkRequest{ArtworkID: a.ID}); err != nil {
		t.Fatalf("re-add artwork failed: %v", err)
	}

	got, err := galleries.GetGallery(ctx, g.ID)
	if err != nil {
		t.Fatalf("get gallery failed: %v", err)
	}

	if got.ArtworkCount != 1 {
		t.Errorf("artwork count = %d, want 1", got.ArtworkCount)
	}

	if err := galleries.RemoveArtwork(ctx, g.ID, a.ID); err != nil {
		t.Fatalf("remove artwork failed: %v", err)
	}

	got, err = galleries.GetGallery(ctx, g.ID)
	if err != nil {
		t.Fatalf("get gallery failed: %v", err)
	}

	if got.ArtworkCount != 0 {
		t.Errorf("artwork count after removal = %d, want 0", got.ArtworkCount)
	}

	// Removing again reports the missing edge.
	if err := galleries.RemoveArtwork(ctx, g.ID, a.ID); !apperr.IsNotFound(err) {
		t.Errorf("second removal error = %v, want NotFoundError", err)
	}
}

func TestDeleteGalleryKeepsArtworks(t *testing.T) {
	ctx := newTestContext(t)
	galleries := service.NewGalleryService(ctx)
	artworks := service.NewArtworkService(ctx)

	g, err := galleries.CreateGallery(ctx, &types.CreateGalleryRequest{Name: "Oil Paintings"})
	if err != nil {
		t.Fatalf("create gallery failed: %v", err)
	}

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Harbor", GalleryID: g.ID}, testImage, nil)
	if err != nil {
		t.Fatalf("create artwork failed: %v", err)
	}

	if err := galleries.DeleteGallery(ctx, g.ID); err != nil {
		t.Fatalf("delete gallery failed: %v", err)
	}

	if _, err := galleries.GetGallery(ctx, g.ID); !apperr.IsNotFound(err) {
		t.Errorf("deleted gallery lookup error = %v, want NotFoundError", err)
	}

	// The member artwork survives the gallery.
	if _, err := artworks.GetArtwork(ctx, a.ID); err != nil {
		t.Errorf("member artwork gone after gallery delete: %v", err)
	}
}
