package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/cache"
	"github.com/artvault/artvault/pkg/internal/model"
	"github.com/artvault/artvault/pkg/internal/types"
	"github.com/artvault/artvault/pkg/queue"
)

const listCacheTTL = 30 * time.Second

// GalleryService implements gallery lifecycle and membership maintenance.
type GalleryService struct {
	base
}

// NewGalleryService builds a GalleryService from the request context.
func NewGalleryService(c context.Context) *GalleryService {
	return &GalleryService{base: newBase(c)}
}

// CreateGallery creates a gallery with a unique, case-sensitive name. The
// uniqueness check is an exact-match query immediately before insert, made
// safe by the write lock rather than a store constraint. New galleries rank
// last.
func (s *GalleryService) CreateGallery(ctx context.Context, req *types.CreateGalleryRequest) (*types.GalleryResponse, error) {
	if req == nil || req.Name == "" {
		return nil, apperr.Validation("name", "gallery name is required")
	}

	g := model.Gallery{
		ID:   newID(),
		Name: req.Name,
	}

	err := s.write(ctx, "createGallery", func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Gallery{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return apperr.ErrDuplicateName
		}

		next, err := nextSortOrder(tx, &model.Gallery{}, nil)
		if err != nil {
			return err
		}

		g.SortOrder = next

		return tx.Create(&g).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyGalleries)
	s.notifier.entity(queue.TopicGalleryCreated, s.notifier.cfg.Gallery.Created, "gallery", g.ID, g.Name)

	resp := galleryResponse(&g, 0)

	return &resp, nil
}

// GetGallery returns one gallery with its membership count.
func (s *GalleryService) GetGallery(ctx context.Context, id string) (*types.GalleryResponse, error) {
	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("getGallery", err)
	}

	var g model.Gallery
	if err := s.db(ctx).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("gallery", id)
		}

		return nil, apperr.Persistence("getGallery", err)
	}

	var count int64
	if err := s.db(ctx).Model(&model.GalleryArtwork{}).Where("gallery_id = ?", id).Count(&count).Error; err != nil {
		return nil, apperr.Persistence("getGallery", err)
	}

	resp := galleryResponse(&g, int(count))

	return &resp, nil
}

// ListGalleries returns every gallery ordered by manual rank, name breaking
// ties.
func (s *GalleryService) ListGalleries(ctx context.Context) (*types.ListGalleriesResponse, error) {
	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("listGalleries", err)
	}

	if s.cache != nil {
		resp, err := cache.GetOrSet(ctx, s.cache, cacheKeyGalleries, func() (*types.ListGalleriesResponse, error) {
			return s.listGalleries(ctx)
		}, listCacheTTL)
		if err == nil {
			return resp, nil
		}
	}

	return s.listGalleries(ctx)
}

func (s *GalleryService) listGalleries(ctx context.Context) (*types.ListGalleriesResponse, error) {
	var galleries []model.Gallery
	if err := s.db(ctx).Order("sort_order ASC, name ASC").Find(&galleries).Error; err != nil {
		return nil, apperr.Persistence("listGalleries", err)
	}

	counts := map[string]int{}

	type pair struct {
		GalleryID string
		N         int
	}

	var rows []pair
	if err := s.db(ctx).Model(&model.GalleryArtwork{}).
		Select("gallery_id, count(*) as n").Group("gallery_id").Scan(&rows).Error; err != nil {
		return nil, apperr.Persistence("listGalleries", err)
	}

	for _, r := range rows {
		counts[r.GalleryID] = r.N
	}

	resp := &types.ListGalleriesResponse{Galleries: make([]types.GalleryResponse, 0, len(galleries)), Total: len(galleries)}
	for i := range galleries {
		resp.Galleries = append(resp.Galleries, galleryResponse(&galleries[i], counts[galleries[i].ID]))
	}

	return resp, nil
}

// RenameGallery renames a gallery under the same uniqueness rule. A gallery
// that disappears between the lookup and the commit is reported as a
// conflicting delete, not recreated.
func (s *GalleryService) RenameGallery(ctx context.Context, id string, req *types.RenameGalleryRequest) (*types.GalleryResponse, error) {
	if req == nil || req.Name == "" {
		return nil, apperr.Validation("name", "gallery name is required")
	}

	g, err := s.GetGallery(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.write(ctx, "renameGallery", func(tx *gorm.DB) error {
		var current model.Gallery
		if err := tx.First(&current, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrConflictingDelete
			}

			return err
		}

		var count int64
		if err := tx.Model(&model.Gallery{}).
			Where("name = ? AND id <> ?", req.Name, id).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return apperr.ErrDuplicateName
		}

		return tx.Model(&current).Update("name", req.Name).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyGalleries)
	s.notifier.entity(queue.TopicGalleryUpdated, s.notifier.cfg.Gallery.Updated, "gallery", id, req.Name)

	g.Name = req.Name

	return g, nil
}

// DeleteGallery removes the gallery and its membership edges. Member
// artworks themselves are untouched.
func (s *GalleryService) DeleteGallery(ctx context.Context, id string) error {
	g, err := s.GetGallery(ctx, id)
	if err != nil {
		return err
	}

	err = s.write(ctx, "deleteGallery", func(tx *gorm.DB) error {
		if err := tx.Where("gallery_id = ?", id).Delete(&model.GalleryArtwork{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Gallery{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, cacheKeyGalleries, cacheKeyGalleryMembers(id))
	s.notifier.entity(queue.TopicGalleryDeleted, s.notifier.cfg.Gallery.Deleted, "gallery", id, g.Name)

	return nil
}

// AddArtwork appends an artwork to the gallery's membership, ranked last.
// Adding an existing member is a no-op, keeping the edge set free of
// duplicate pairs.
func (s *GalleryService) AddArtwork(ctx context.Context, galleryID string, req *types.AddGalleryArtworkRequest) error {
	if req == nil || req.ArtworkID == "" {
		return apperr.Validation("artwork_id", "artwork id is required")
	}

	var galleryName, artworkName string

	err := s.write(ctx, "addGalleryArtwork", func(tx *gorm.DB) error {
		var g model.Gallery
		if err := tx.First(&g, "id = ?", galleryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("gallery", galleryID)
			}

			return err
		}

		var a model.Artwork
		if err := tx.First(&a, "id = ?", req.ArtworkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("artwork", req.ArtworkID)
			}

			return err
		}

		galleryName, artworkName = g.Name, a.Name

		var count int64
		if err := tx.Model(&model.GalleryArtwork{}).
			Where("gallery_id = ? AND artwork_id = ?", galleryID, req.ArtworkID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			// Already a member.
			return nil
		}

		next, err := nextSortOrder(tx, &model.GalleryArtwork{}, map[string]any{"gallery_id": galleryID})
		if err != nil {
			return err
		}

		return tx.Create(&model.GalleryArtwork{
			GalleryID: galleryID,
			ArtworkID: req.ArtworkID,
			SortOrder: next,
		}).Error
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, cacheKeyGalleries, cacheKeyGalleryMembers(galleryID))
	s.notifier.membership(queue.TopicGalleryMemberAdded, s.notifier.cfg.Gallery.Updated,
		galleryID, galleryName, req.ArtworkID, artworkName)

	return nil
}

// RemoveArtwork drops an artwork from the gallery's membership.
func (s *GalleryService) RemoveArtwork(ctx context.Context, galleryID, artworkID string) error {
	err := s.write(ctx, "removeGalleryArtwork", func(tx *gorm.DB) error {
		res := tx.Where("gallery_id = ? AND artwork_id = ?", galleryID, artworkID).
			Delete(&model.GalleryArtwork{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return apperr.NotFound("galleryMembership", galleryID+"/"+artworkID)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, cacheKeyGalleries, cacheKeyGalleryMembers(galleryID))
	s.notifier.membership(queue.TopicGalleryMemberRemoved, s.notifier.cfg.Gallery.Updated,
		galleryID, "", artworkID, "")

	return nil
}

// ListGalleryArtworks returns the gallery's members ordered by their
// per-gallery rank, name breaking ties.
func (s *GalleryService) ListGalleryArtworks(ctx context.Context, galleryID string) (*types.ListArtworksResponse, error) {
	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("listGalleryArtworks", err)
	}

	if _, err := s.GetGallery(ctx, galleryID); err != nil {
		return nil, err
	}

	var artworks []model.Artwork
	if err := s.db(ctx).
		Joins("JOIN gallery_artworks ON gallery_artworks.artwork_id = artworks.id").
		Where("gallery_artworks.gallery_id = ?", galleryID).
		Order("gallery_artworks.sort_order ASC, artworks.name ASC").
		Find(&artworks).Error; err != nil {
		return nil, apperr.Persistence("listGalleryArtworks", err)
	}

	resp := &types.ListArtworksResponse{Artworks: make([]types.ArtworkResponse, 0, len(artworks)), Total: len(artworks)}
	for i := range artworks {
		resp.Artworks = append(resp.Artworks, artworkResponse(&artworks[i]))
	}

	return resp, nil
}

func galleryResponse(g *model.Gallery, artworkCount int) types.GalleryResponse {
	return types.GalleryResponse{
		ID:           g.ID,
		Name:         g.Name,
		SortOrder:    g.SortOrder,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
		ArtworkCount: artworkCount,
	}
}
