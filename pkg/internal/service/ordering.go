package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/internal/model"
	"github.com/artvault/artvault/pkg/internal/types"
)

// Ordering domains. Sort orders within one domain are totally ordered but
// not necessarily contiguous until a reorder rewrites them; reads always
// break ties by name.
const (
	DomainGalleries = "galleries"
	DomainArtworks  = "artworks"
)

// DomainGallery names the per-gallery membership ordering domain.
func DomainGallery(galleryID string) string {
	return "gallery:" + galleryID
}

// OrderingService implements manual reordering of the three ordering
// domains: all galleries, all artworks, and the artworks within one gallery.
type OrderingService struct {
	base
}

// NewOrderingService builds an OrderingService from the request context.
func NewOrderingService(c context.Context) *OrderingService {
	return &OrderingService{base: newBase(c)}
}

// nextSortOrder returns max(sort_order)+1 within the (optionally filtered)
// domain, so new members always rank last.
func nextSortOrder(tx *gorm.DB, mdl any, filter map[string]any) (int, error) {
	q := tx.Model(mdl)
	if filter != nil {
		q = q.Where(filter)
	}

	var next int
	if err := q.Select("COALESCE(MAX(sort_order)+1, 0)").Scan(&next).Error; err != nil {
		return 0, err
	}

	return next, nil
}

type domainMember struct {
	id        string
	sortOrder int
}

// placeAt returns the member ids in their new order with movedID at toIndex,
// plus movedID's previous index. A toIndex outside the domain clamps to its
// edges.
func placeAt(members []domainMember, movedID string, toIndex int) (ids []string, fromIndex int, err error) {
	fromIndex = -1

	for i, m := range members {
		if m.id == movedID {
			fromIndex = i
			break
		}
	}

	if fromIndex == -1 {
		return nil, 0, apperr.NotFound("orderingMember", movedID)
	}

	if toIndex < 0 {
		toIndex = 0
	}

	if toIndex > len(members)-1 {
		toIndex = len(members) - 1
	}

	ids = make([]string, 0, len(members))
	for _, m := range members {
		if m.id != movedID {
			ids = append(ids, m.id)
		}
	}

	ids = append(ids[:toIndex], append([]string{movedID}, ids[toIndex:]...)...)

	return ids, fromIndex, nil
}

// ReorderGalleries moves one gallery to a new 0-based position and rewrites
// every gallery's rank to its resulting index. A no-op move leaves every
// rank untouched.
func (s *OrderingService) ReorderGalleries(ctx context.Context, req *types.ReorderRequest) error {
	if req == nil || req.MovedID == "" {
		return apperr.Validation("moved_id", "moved id is required")
	}

	var size int

	err := s.write(ctx, "reorderGalleries", func(tx *gorm.DB) error {
		var galleries []model.Gallery
		if err := tx.Order("sort_order ASC, name ASC").Find(&galleries).Error; err != nil {
			return err
		}

		members := make([]domainMember, 0, len(galleries))
		for _, g := range galleries {
			members = append(members, domainMember{id: g.ID, sortOrder: g.SortOrder})
		}

		size = len(members)

		ids, fromIndex, err := placeAt(members, req.MovedID, req.ToIndex)
		if err != nil {
			return err
		}

		if fromIndex == req.ToIndex {
			return nil
		}

		for pos, id := range ids {
			if err := tx.Model(&model.Gallery{}).Where("id = ?", id).
				Update("sort_order", pos).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, cacheKeyGalleries)
	s.notifier.reorder(s.notifier.cfg.Ordering.Reordered, DomainGalleries, req.MovedID, req.FromIndex, req.ToIndex, size)

	return nil
}

// ReorderArtworks moves one artwork within the all-artworks listing.
func (s *OrderingService) ReorderArtworks(ctx context.Context, req *types.ReorderRequest) error {
	if req == nil || req.MovedID == "" {
		return apperr.Validation("moved_id", "moved id is required")
	}

	var size int

	err := s.write(ctx, "reorderArtworks", func(tx *gorm.DB) error {
		var artworks []model.Artwork
		if err := tx.Order("sort_order ASC, name ASC").Find(&artworks).Error; err != nil {
			return err
		}

		members := make([]domainMember, 0, len(artworks))
		for _, a := range artworks {
			members = append(members, domainMember{id: a.ID, sortOrder: a.SortOrder})
		}

		size = len(members)

		ids, fromIndex, err := placeAt(members, req.MovedID, req.ToIndex)
		if err != nil {
			return err
		}

		if fromIndex == req.ToIndex {
			return nil
		}

		for pos, id := range ids {
			if err := tx.Model(&model.Artwork{}).Where("id = ?", id).
				Update("sort_order", pos).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, cacheKeyArtworks)
	s.notifier.reorder(s.notifier.cfg.Ordering.Reordered, DomainArtworks, req.MovedID, req.FromIndex, req.ToIndex, size)

	return nil
}

// ReorderGalleryArtworks moves one member within a single gallery's
// membership ordering.
func (s *OrderingService) ReorderGalleryArtworks(ctx context.Context, galleryID string, req *types.ReorderRequest) error {
	if req == nil || req.MovedID == "" {
		return apperr.Validation("moved_id", "moved id is required")
	}

	var size int

	err := s.write(ctx, "reorderGalleryArtworks", func(tx *gorm.DB) error {
		var edges []model.GalleryArtwork
		if err := tx.
			Select("gallery_artworks.*").
			Joins("JOIN artworks ON artworks.id = gallery_artworks.artwork_id").
			Where("gallery_artworks.gallery_id = ?", galleryID).
			Order("gallery_artworks.sort_order ASC, artworks.name ASC").
			Find(&edges).Error; err != nil {
			return err
		}

		if len(edges) == 0 {
			return apperr.NotFound("gallery", galleryID)
		}

		members := make([]domainMember, 0, len(edges))
		for _, e := range edges {
			members = append(members, domainMember{id: e.ArtworkID, sortOrder: e.SortOrder})
		}

		size = len(members)

		ids, fromIndex, err := placeAt(members, req.MovedID, req.ToIndex)
		if err != nil {
			return err
		}

		if fromIndex == req.ToIndex {
			return nil
		}

		for pos, id := range ids {
			if err := tx.Model(&model.GalleryArtwork{}).
				Where("gallery_id = ? AND artwork_id = ?", galleryID, id).
				Update("sort_order", pos).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, cacheKeyGalleryMembers(galleryID))
	s.notifier.reorder(s.notifier.cfg.Ordering.Reordered, DomainGallery(galleryID), req.MovedID, req.FromIndex, req.ToIndex, size)

	return nil
}
