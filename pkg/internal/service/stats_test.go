package service_test

import (
	"testing"

	"github.com/artvault/artvault/pkg/internal/service"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	"github.com/artvault/artvault/pkg/internal/types"
)

func TestVaultStatsCountsOrphans(t *testing.T) {
	ctx := newTestContext(t)
	artworks := service.NewArtworkService(ctx)
	stats := service.NewStatsService(ctx)

	a, err := artworks.CreateArtwork(ctx, &types.CreateArtworkForm{Name: "Kept"}, testImage, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A blob written outside any entity is an orphan until swept.
	store := blobStore(t, ctx)

	orphanKey, err := store.Put(ctx, testImage, blobc.CategoryArtwork)
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := stats.VaultStats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if got.Artworks != 1 {
		t.Errorf("artwork count = %d, want 1", got.Artworks)
	}

	if got.OrphanBlobs != 1 {
		t.Errorf("orphan count = %d, want 1", got.OrphanBlobs)
	}

	orphans, err := stats.OrphanBlobs(ctx)
	if err != nil {
		t.Fatalf("orphans failed: %v", err)
	}

	keys := map[string]bool{}
	for _, info := range orphans[blobc.CategoryArtwork] {
		keys[info.Key] = true
	}

	if !keys[orphanKey] {
		t.Errorf("orphan %s not reported", orphanKey)
	}

	if keys[a.ImageKey] {
		t.Errorf("live blob %s reported as orphan", a.ImageKey)
	}
}
