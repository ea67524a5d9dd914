package service_test

import (
	"errors"
	"testing"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/internal/service"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	"github.com/artvault/artvault/pkg/internal/types"
)

func TestCreateArtworkWithGallery(t *testing.T) {
	ctx := newTestContext(t)
	galleries := service.NewGalleryService(ctx)
	artworks := service.NewArtworkService(ctx)

	g, err := galleries.CreateGallery(ctx, &types.CreateGalleryRequest{Name: "Landscapes"})
	if err != nil {
		t.Fatalf("create gallery failed: %v", err)
	}

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{
		Name:          "Sunset",
		Medium:        "oil",
		DimensionType: "2d",
		Width:         40,
		Height:        30,
		Unit:          "cm",
		GalleryID:     g.ID,
	}, testImage, nil)
	if err != nil {
		t.Fatalf("create artwork failed: %v", err)
	}

	if a.ImageKey == "" {
		t.Fatal("artwork has no image key")
	}

	data, err := blobStore(t, ctx).Get(ctx, a.ImageKey, blobc.CategoryArtwork)
	if err != nil {
		t.Fatalf("image blob unreadable: %v", err)
	}

	if string(data) != string(testImage) {
		t.Error("stored image bytes differ from input")
	}

	got, err := galleries.GetGallery(ctx, g.ID)
	if err != nil {
		t.Fatalf("get gallery failed: %v", err)
	}

	if got.ArtworkCount != 1 {
		t.Errorf("gallery member count = %d, want 1", got.ArtworkCount)
	}
}

func TestCreateArtworkUnresolvableGalleryID(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)

	// A gallery id that resolves to nothing is skipped, not an error.
	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{
		Name:      "Adrift",
		GalleryID: "no-such-gallery",
	}, testImage, nil)
	if err != nil {
		t.Fatalf("create with unresolvable gallery id failed: %v", err)
	}

	galleries := service.NewGalleryService(ctx)

	list, err := galleries.ListGalleries(ctx)
	if err != nil {
		t.Fatalf("list galleries failed: %v", err)
	}

	if list.Total != 0 {
		t.Errorf("gallery count = %d, want 0", list.Total)
	}

	got, err := artworks.GetArtwork(ctx, a.ID)
	if err != nil {
		t.Fatalf("get artwork failed: %v", err)
	}

	if got.Name != "Adrift" {
		t.Errorf("artwork name = %s", got.Name)
	}
}

func TestCreateArtworkValidationBeforeIO(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)

	cases := []struct {
		name string
		form types.CreateArtworkForm
	}{
		{"empty name", types.CreateArtworkForm{}},
		{"negative width", types.CreateArtworkForm{Name: "X", Width: -1}},
		{"bad dimension type", types.CreateArtworkForm{Name: "X", DimensionType: "4d"}},
		{"bad unit", types.CreateArtworkForm{Name: "X", Unit: "furlong"}},
	}

	for _, tc := range cases {
		if _, err := artworks.CreateArtwork(ctx, &tc.form, testImage, nil); !apperr.IsValidation(err) {
			t.Errorf("%s: error = %v, want ValidationError", tc.name, err)
		}
	}

	// Validation failed before any blob write.
	infos, err := blobStore(t, ctx).List(ctx, blobc.CategoryArtwork)
	if err != nil {
		t.Fatalf("list blobs failed: %v", err)
	}

	if len(infos) != 0 {
		t.Errorf("validation failures left %d blobs behind", len(infos))
	}
}

func TestDeleteArtworkCascades(t *testing.T) {
	ctx := newTestContext(t)
	galleries := service.NewGalleryService(ctx)
	artworks := service.NewArtworkService(ctx)
	tags := service.NewTagService(ctx)
	refs := service.NewReferenceService(ctx)

	g, err := galleries.CreateGallery(ctx, &types.CreateGalleryRequest{Name: "Landscapes"})
	if err != nil {
		t.Fatalf("create gallery failed: %v", err)
	}

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Sunset", GalleryID: g.ID}, testImage, nil)
	if err != nil {
		t.Fatalf("create artwork failed: %v", err)
	}

	if _, err := tags.CreateComponentTag(ctx, a.ID, &types.CreateComponentTagForm{
		Type: "subject", Name: "sky", PrimaryRating: 4, SecondaryRating: 3,
		LocationX: 0.25, LocationY: 0.75,
	}, nil); err != nil {
		t.Fatalf("create tag failed: %v", err)
	}

	if _, err := refs.AddReference(ctx, &types.AddReferenceForm{Title: "photo", ArtworkID: a.ID}, testImage); err != nil {
		t.Fatalf("add reference failed: %v", err)
	}

	if err := artworks.DeleteArtwork(ctx, a.ID); err != nil {
		t.Fatalf("delete artwork failed: %v", err)
	}

	if _, err := artworks.GetArtwork(ctx, a.ID); !apperr.IsNotFound(err) {
		t.Errorf("deleted artwork lookup error = %v, want NotFoundError", err)
	}

	// The gallery survives with an empty membership.
	got, err := galleries.GetGallery(ctx, g.ID)
	if err != nil {
		t.Fatalf("get gallery failed: %v", err)
	}

	if got.ArtworkCount != 0 {
		t.Errorf("gallery member count = %d, want 0", got.ArtworkCount)
	}

	// Owned tags went with it.
	tagList, err := tags.ListComponentTags(ctx, a.ID)
	if err != nil {
		t.Fatalf("list tags failed: %v", err)
	}

	if len(tagList) != 0 {
		t.Errorf("tag count after delete = %d, want 0", len(tagList))
	}

	// The primary image stopped resolving.
	if _, err := blobStore(t, ctx).Get(ctx, a.ImageKey, blobc.CategoryArtwork); !apperr.IsNotFound(err) {
		t.Errorf("old image blob Get error = %v, want NotFoundError", err)
	}
}

func TestUpdateArtworkFieldMerge(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Harbor", Medium: "oil"}, testImage, nil)
	if err != nil {
		t.Fatalf("create artwork failed: %v", err)
	}

	newName := "Harbor at Dawn"

	updated, err := artworks.UpdateArtwork(ctx, a.ID, &types.UpdateArtworkForm{Name: &newName})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Name != newName {
		t.Errorf("name = %s, want %s", updated.Name, newName)
	}

	// Untouched fields keep their values.
	if updated.Medium != "oil" {
		t.Errorf("medium = %s, want oil", updated.Medium)
	}
}

func TestUpdateDeletedArtworkConflicts(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Harbor"}, testImage, nil)
	if err != nil {
		t.Fatalf("create artwork failed: %v", err)
	}

	// Never-existed id: plain not-found.
	name := "X"
	if _, err := artworks.UpdateArtwork(ctx, "missing", &types.UpdateArtworkForm{Name: &name}); !apperr.IsNotFound(err) {
		t.Errorf("update of unknown id error = %v, want NotFoundError", err)
	}

	if err := artworks.DeleteArtwork(ctx, a.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := artworks.UpdateArtwork(ctx, a.ID, &types.UpdateArtworkForm{Name: &name}); !apperr.IsNotFound(err) {
		t.Errorf("update of deleted id error = %v, want NotFoundError", err)
	}
}

func TestConcurrentWritesSerialize(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)

	done := make(chan error, 8)

	for i := range 8 {
		go func(n int) {
			_, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{
				Name: string(rune('A' + n)),
			}, testImage, nil)
			done <- err
		}(i)
	}

	for range 8 {
		if err := <-done; err != nil {
			t.Fatalf("concurrent create failed: %v", err)
		}
	}

	list, err := artworks.ListArtworks(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if list.Total != 8 {
		t.Errorf("artwork count = %d, want 8", list.Total)
	}

	// Every artwork got a distinct rank.
	seen := map[int]bool{}

	for _, a := range list.Artworks {
		if seen[a.SortOrder] {
			t.Errorf("duplicate sort order %d", a.SortOrder)
		}

		seen[a.SortOrder] = true
	}
}

func TestCreateArtworkRequiresImage(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)

	_, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Empty"}, nil, nil)
	if !apperr.IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}

	var ve *apperr.ValidationError
	if errors.As(err, &ve) && ve.Field != "image" {
		t.Errorf("validation field = %s, want image", ve.Field)
	}
}
