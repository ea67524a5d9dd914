package service_test

import (
	"testing"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/internal/service"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	"github.com/artvault/artvault/pkg/internal/types"
)

func TestAddReferenceRequiresExactlyOneOwner(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)
	projects := service.NewProjectService(ctx)
	references := service.NewReferenceService(ctx)

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Still Life"}, testImage, nil)
	if err != nil {
		t.Fatalf("create artwork failed: %v", err)
	}

	p, err := projects.CreateProject(ctx, &types.CreateProjectRequest{Name: "Series"})
	if err != nil {
		t.Fatalf("create project failed: %v", err)
	}

	if _, err := references.AddReference(ctx, &types.AddReferenceForm{}, testImage); !apperr.IsValidation(err) {
		t.Fatalf("no owner: err = %v, want ValidationError", err)
	}

	if _, err := references.AddReference(ctx, &types.AddReferenceForm{
		ArtworkID: a.ID, ProjectID: p.ID,
	}, testImage); !apperr.IsValidation(err) {
		t.Fatalf("both owners: err = %v, want ValidationError", err)
	}

	ref, err := references.AddReference(ctx, &types.AddReferenceForm{
		Title: "Apples", ArtworkID: a.ID,
	}, testImage)
	if err != nil {
		t.Fatalf("single owner rejected: %v", err)
	}

	if ref.ArtworkID != a.ID || ref.ProjectID != "" {
		t.Errorf("owner fields = %+v", ref)
	}
}

func TestAddReferenceUnknownOwner(t *testing.T) {
	ctx := newTestContext(t)
	references := service.NewReferenceService(ctx)

	_, err := references.AddReference(ctx, &types.AddReferenceForm{ArtworkID: "missing"}, testImage)
	if !apperr.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestAddReferenceRequiresImage(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)
	references := service.NewReferenceService(ctx)

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Portrait"}, testImage, nil)
	if err != nil {
		t.Fatalf("create artwork failed: %v", err)
	}

	if _, err := references.AddReference(ctx, &types.AddReferenceForm{ArtworkID: a.ID}, nil); !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestDeleteReferenceRemovesBlob(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)
	references := service.NewReferenceService(ctx)

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Portrait"}, testImage, nil)
	if err != nil {
		t.Fatalf("create artwork failed: %v", err)
	}

	ref, err := references.AddReference(ctx, &types.AddReferenceForm{ArtworkID: a.ID}, testImage)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := references.DeleteReference(ctx, ref.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := references.GetReference(ctx, ref.ID); !apperr.IsNotFound(err) {
		t.Fatalf("get after delete = %v, want NotFoundError", err)
	}

	store := blobStore(t, ctx)
	if _, err := store.Get(ctx, ref.ImageKey, blobc.CategoryReference); !apperr.IsNotFound(err) {
		t.Errorf("blob survives delete: %v", err)
	}
}
