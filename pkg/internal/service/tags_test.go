package service_test

import (
	"testing"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/internal/service"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	"github.com/artvault/artvault/pkg/internal/types"
)

func TestCreateComponentTagKeepsLocationVerbatim(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)
	tags := service.NewTagService(ctx)

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Harbor"}, testImage, nil)
	if err != nil {
		t.Fatalf("create artwork failed: %v", err)
	}

	// Coordinates outside any plausible image extent stay as given; the
	// store never clamps or scales them.
	x, y := 4312.25, -17.5

	tag, err := tags.CreateComponentTag(ctx, a.ID, &types.CreateComponentTagForm{
		Type: "subject", Name: "lighthouse",
		PrimaryRating: 4, SecondaryRating: 2,
		LocationX: x, LocationY: y,
	}, nil)
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}

	if tag.LocationX != x || tag.LocationY != y {
		t.Fatalf("location = (%v, %v), want (%v, %v)", tag.LocationX, tag.LocationY, x, y)
	}

	list, err := tags.ListComponentTags(ctx, a.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(list) != 1 || list[0].LocationX != x || list[0].LocationY != y {
		t.Fatalf("read back = %+v", list)
	}
}

func TestCreateComponentTagValidation(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)
	tags := service.NewTagService(ctx)

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Harbor"}, testImage, nil)
	if err != nil {
		t.Fatalf("create artwork failed: %v", err)
	}

	bad := []*types.CreateComponentTagForm{
		{Type: "texture", Name: "x", PrimaryRating: 3, SecondaryRating: 3},
		{Type: "subject", Name: "", PrimaryRating: 3, SecondaryRating: 3},
		{Type: "subject", Name: "x", PrimaryRating: 0, SecondaryRating: 3},
		{Type: "process", Name: "x", PrimaryRating: 3, SecondaryRating: 6},
	}

	for i, form := range bad {
		if _, err := tags.CreateComponentTag(ctx, a.ID, form, nil); !apperr.IsValidation(err) {
			t.Errorf("form %d: err = %v, want ValidationError", i, err)
		}
	}
}

func TestCreateComponentTagUnknownArtwork(t *testing.T) {
	ctx := newTestContext(t)
	tags := service.NewTagService(ctx)

	_, err := tags.CreateComponentTag(ctx, "missing", &types.CreateComponentTagForm{
		Type: "subject", Name: "x", PrimaryRating: 1, SecondaryRating: 1,
	}, nil)
	if !apperr.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestDeleteComponentTagRemovesCloseUp(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)
	tags := service.NewTagService(ctx)

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Harbor"}, testImage, nil)
	if err != nil {
		t.Fatalf("create artwork failed: %v", err)
	}

	tag, err := tags.CreateComponentTag(ctx, a.ID, &types.CreateComponentTagForm{
		Type: "process", Name: "glazing", PrimaryRating: 5, SecondaryRating: 4,
		ProcessSteps: "thin layers over dry paint",
	}, testImage)
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}

	if tag.ImageKey == "" {
		t.Fatal("close-up key missing")
	}

	if err := tags.DeleteComponentTag(ctx, tag.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	store := blobStore(t, ctx)
	if _, err := store.Get(ctx, tag.ImageKey, blobc.CategoryComponent); !apperr.IsNotFound(err) {
		t.Errorf("close-up blob survives delete: %v", err)
	}

	list, err := tags.ListComponentTags(ctx, a.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(list) != 0 {
		t.Fatalf("tags = %+v after delete, want none", list)
	}
}
