package service

import (
	"context"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/internal/model"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	"github.com/artvault/artvault/pkg/internal/types"
)

// StatsService reports entity counts, blob usage and orphan blobs. The
// orphan listing is shared with the sweep job: a blob is an orphan when no
// live row in the graph carries its key.
type StatsService struct {
	base
}

// NewStatsService builds a StatsService from the request context.
func NewStatsService(c context.Context) *StatsService {
	return &StatsService{base: newBase(c)}
}

// referencedKeys collects every blob key a live entity references, per
// category. Category membership follows ownership: artwork images, the
// shared reference pool, update snapshots, tag close-ups.
func (s *StatsService) referencedKeys(ctx context.Context) (map[blobc.Category]map[string]bool, error) {
	keys := map[blobc.Category]map[string]bool{
		blobc.CategoryArtwork:       {},
		blobc.CategoryReference:     {},
		blobc.CategoryProjectUpdate: {},
		blobc.CategoryComponent:     {},
	}

	collect := func(mdl any, column string, cat blobc.Category) error {
		var vals []string
		if err := s.db(ctx).Model(mdl).Where(column+" <> ''").Pluck(column, &vals).Error; err != nil {
			return err
		}

		for _, v := range vals {
			keys[cat][v] = true
		}

		return nil
	}

	if err := collect(&model.Artwork{}, "image_key", blobc.CategoryArtwork); err != nil {
		return nil, err
	}

	if err := collect(&model.Artwork{}, "reference_image_key", blobc.CategoryReference); err != nil {
		return nil, err
	}

	if err := collect(&model.Reference{}, "image_key", blobc.CategoryReference); err != nil {
		return nil, err
	}

	if err := collect(&model.ProjectUpdate{}, "image_key", blobc.CategoryProjectUpdate); err != nil {
		return nil, err
	}

	if err := collect(&model.ComponentTag{}, "image_key", blobc.CategoryComponent); err != nil {
		return nil, err
	}

	return keys, nil
}

// OrphanBlobs lists, per category, the stored blobs no live entity
// references.
func (s *StatsService) OrphanBlobs(ctx context.Context) (map[blobc.Category][]blobc.Info, error) {
	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("orphanBlobs", err)
	}

	referenced, err := s.referencedKeys(ctx)
	if err != nil {
		return nil, apperr.Persistence("orphanBlobs", err)
	}

	orphans := map[blobc.Category][]blobc.Info{}

	for _, cat := range blobc.Categories {
		infos, err := s.blobc.List(ctx, cat)
		if err != nil {
			return nil, err
		}

		for _, info := range infos {
			if !referenced[cat][info.Key] {
				orphans[cat] = append(orphans[cat], info)
			}
		}
	}

	return orphans, nil
}

// VaultStats returns entity counts plus per-category blob usage.
func (s *StatsService) VaultStats(ctx context.Context) (*types.VaultStatsResponse, error) {
	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("vaultStats", err)
	}

	resp := &types.VaultStatsResponse{}

	count := func(mdl any, dst *int) error {
		var n int64
		if err := s.db(ctx).Model(mdl).Count(&n).Error; err != nil {
			return err
		}

		*dst = int(n)

		return nil
	}

	for _, c := range []struct {
		mdl any
		dst *int
	}{
		{&model.Artwork{}, &resp.Artworks},
		{&model.Gallery{}, &resp.Galleries},
		{&model.Project{}, &resp.Projects},
		{&model.ProjectUpdate{}, &resp.ProjectUpdates},
		{&model.Reference{}, &resp.References},
		{&model.ComponentTag{}, &resp.ComponentTags},
	} {
		if err := count(c.mdl, c.dst); err != nil {
			return nil, apperr.Persistence("vaultStats", err)
		}
	}

	for _, cat := range blobc.Categories {
		infos, err := s.blobc.List(ctx, cat)
		if err != nil {
			return nil, err
		}

		stat := types.BlobCategoryStats{Category: string(cat), Count: len(infos)}
		for _, info := range infos {
			stat.Bytes += info.Size
		}

		resp.Blobs = append(resp.Blobs, stat)
	}

	orphans, err := s.OrphanBlobs(ctx)
	if err != nil {
		return nil, err
	}

	for _, infos := range orphans {
		resp.OrphanBlobs += len(infos)
	}

	return resp, nil
}
