package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/cache"
	"github.com/artvault/artvault/pkg/internal/model"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	"github.com/artvault/artvault/pkg/internal/types"
	nlog "github.com/artvault/artvault/pkg/log"
	"github.com/artvault/artvault/pkg/queue"
)

// ArtworkService implements the artwork service layer: creation with image upload,
// reads, trump-merge updates and cascading deletes.
type ArtworkService struct {
	base
}

// NewArtworkService builds an ArtworkService from the request context.
func NewArtworkService(c context.Context) *ArtworkService {
	return &ArtworkService{base: newBase(c)}
}

func validateArtworkForm(form *types.CreateArtworkForm) error {
	if form == nil || form.Name == "" {
		return apperr.Validation("name", "artwork name is required")
	}

	if form.DimensionType != "" && form.DimensionType != model.Dimension2D && form.DimensionType != model.Dimension3D {
		return apperr.Validation("dimension_type", "must be 2d or 3d")
	}

	if form.Width < 0 || form.Height < 0 || form.Depth < 0 {
		return apperr.Validation("dimensions", "dimensions must not be negative")
	}

	switch form.Unit {
	case "", model.UnitInches, model.UnitCentimeters, model.UnitMillimeters, model.UnitPixels:
	default:
		return apperr.Validation("unit", "unknown measurement unit "+form.Unit)
	}

	return nil
}

// CreateArtwork stores the image (and optional reference image) in the blob
// store, then creates the artwork row and, when the form names a gallery,
// its membership edge, in one commit. Blob writes come first so a committed
// row never references a blob that is not on disk; a blob orphaned by a
// failed commit is left for the sweep.
//
// A gallery id that does not resolve is deliberately not an error: the
// artwork is created with no membership.
func (s *ArtworkService) CreateArtwork(ctx context.Context, form *types.CreateArtworkForm, image, referenceImage []byte) (*types.ArtworkResponse, error) {
	if err := validateArtworkForm(form); err != nil {
		return nil, err
	}

	if len(image) == 0 {
		return nil, apperr.Validation("image", "image bytes are required")
	}

	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("createArtwork", err)
	}

	imageKey, err := s.blobc.Put(ctx, image, blobc.CategoryArtwork)
	if err != nil {
		return nil, err
	}

	var refKey string
	if len(referenceImage) > 0 {
		refKey, err = s.blobc.Put(ctx, referenceImage, blobc.CategoryReference)
		if err != nil {
			return nil, err
		}
	}

	a := model.Artwork{
		ID:                newID(),
		Name:              form.Name,
		Medium:            form.Medium,
		CreationDate:      form.CreationDate,
		StartDate:         form.StartDate,
		CompletionDate:    form.CompletionDate,
		ImageKey:          imageKey,
		ReferenceImageKey: refKey,
		DimensionType:     form.DimensionType,
		Width:             form.Width,
		Height:            form.Height,
		Depth:             form.Depth,
		Unit:              form.Unit,
		IsPublic:          form.IsPublic,
		IsMuted:           form.IsMuted,
		Notes:             form.Notes,
	}

	err = s.write(ctx, "createArtwork", func(tx *gorm.DB) error {
		next, err := nextSortOrder(tx, &model.Artwork{}, nil)
		if err != nil {
			return err
		}

		a.SortOrder = next

		if err := tx.Create(&a).Error; err != nil {
			return err
		}

		if form.GalleryID == "" {
			return nil
		}

		var g model.Gallery
		if err := tx.First(&g, "id = ?", form.GalleryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Unresolvable gallery id: skip membership, keep the
				// artwork.
				nlog.Logger().Debug().Str("gallery_id", form.GalleryID).
					Str("artwork_id", a.ID).Msg("gallery id did not resolve, artwork created without membership")

				return nil
			}

			return err
		}

		next, err = nextSortOrder(tx, &model.GalleryArtwork{}, map[string]any{"gallery_id": g.ID})
		if err != nil {
			return err
		}

		return tx.Create(&model.GalleryArtwork{
			GalleryID: g.ID,
			ArtworkID: a.ID,
			SortOrder: next,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyArtworks, cacheKeyGalleries)

	if form.GalleryID != "" {
		s.invalidate(ctx, cacheKeyGalleryMembers(form.GalleryID))
	}

	s.notifier.entity(queue.TopicArtworkCreated, s.notifier.cfg.Artwork.Created, "artwork", a.ID, a.Name)
	s.notifier.blob(queue.TopicBlobStored, s.notifier.cfg.Blob.Stored, string(blobc.CategoryArtwork), imageKey,
		&queue.EntityRef{Kind: "artwork", ID: a.ID, Name: a.Name})

	resp := artworkResponse(&a)

	return &resp, nil
}

// GetArtwork returns one artwork with its component tags and references.
func (s *ArtworkService) GetArtwork(ctx context.Context, id string) (*types.ArtworkResponse, error) {
	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("getArtwork", err)
	}

	var a model.Artwork
	if err := s.db(ctx).Preload("Tags").Preload("References").
		First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("artwork", id)
		}

		return nil, apperr.Persistence("getArtwork", err)
	}

	resp := artworkResponse(&a)

	return &resp, nil
}

// ListArtworks returns every artwork ordered by manual rank, name breaking
// ties.
func (s *ArtworkService) ListArtworks(ctx context.Context) (*types.ListArtworksResponse, error) {
	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("listArtworks", err)
	}

	if s.cache != nil {
		resp, err := cache.GetOrSet(ctx, s.cache, cacheKeyArtworks, func() (*types.ListArtworksResponse, error) {
			return s.listArtworks(ctx)
		}, listCacheTTL)
		if err == nil {
			return resp, nil
		}
	}

	return s.listArtworks(ctx)
}

func (s *ArtworkService) listArtworks(ctx context.Context) (*types.ListArtworksResponse, error) {
	var artworks []model.Artwork
	if err := s.db(ctx).Order("sort_order ASC, name ASC").Find(&artworks).Error; err != nil {
		return nil, apperr.Persistence("listArtworks", err)
	}

	resp := &types.ListArtworksResponse{Artworks: make([]types.ArtworkResponse, 0, len(artworks)), Total: len(artworks)}
	for i := range artworks {
		resp.Artworks = append(resp.Artworks, artworkResponse(&artworks[i]))
	}

	return resp, nil
}

// UpdateArtwork applies the form's non-nil fields over the stored row.
// Local values win field by field, but an artwork that was deleted between
// the lookup and the commit is reported as a conflicting delete rather than
// resurrected.
func (s *ArtworkService) UpdateArtwork(ctx context.Context, id string, form *types.UpdateArtworkForm) (*types.ArtworkResponse, error) {
	if form == nil {
		return nil, apperr.Validation("form", "update form is required")
	}

	if form.Name != nil && *form.Name == "" {
		return nil, apperr.Validation("name", "artwork name must not be empty")
	}

	if _, err := s.GetArtwork(ctx, id); err != nil {
		return nil, err
	}

	var updated model.Artwork

	err := s.write(ctx, "updateArtwork", func(tx *gorm.DB) error {
		var a model.Artwork
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrConflictingDelete
			}

			return err
		}

		applyArtworkForm(&a, form)

		if a.Width < 0 || a.Height < 0 || a.Depth < 0 {
			return apperr.Validation("dimensions", "dimensions must not be negative")
		}

		if err := tx.Save(&a).Error; err != nil {
			return err
		}

		updated = a

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyArtworks)
	s.notifier.entity(queue.TopicArtworkUpdated, s.notifier.cfg.Artwork.Updated, "artwork", id, updated.Name)

	resp := artworkResponse(&updated)

	return &resp, nil
}

func applyArtworkForm(a *model.Artwork, form *types.UpdateArtworkForm) {
	if form.Name != nil {
		a.Name = *form.Name
	}

	if form.Medium != nil {
		a.Medium = *form.Medium
	}

	if form.CreationDate != nil {
		a.CreationDate = form.CreationDate
	}

	if form.StartDate != nil {
		a.StartDate = form.StartDate
	}

	if form.CompletionDate != nil {
		a.CompletionDate = form.CompletionDate
	}

	if form.DimensionType != nil {
		a.DimensionType = *form.DimensionType
	}

	if form.Width != nil {
		a.Width = *form.Width
	}

	if form.Height != nil {
		a.Height = *form.Height
	}

	if form.Depth != nil {
		a.Depth = *form.Depth
	}

	if form.Unit != nil {
		a.Unit = *form.Unit
	}

	if form.IsPublic != nil {
		a.IsPublic = *form.IsPublic
	}

	if form.IsMuted != nil {
		a.IsMuted = *form.IsMuted
	}

	if form.Notes != nil {
		a.Notes = *form.Notes
	}
}

// DeleteArtwork cascades: component tags and references go, every gallery
// membership edge goes, the galleries themselves stay. After the commit the
// artwork's own blobs are removed so its old image identifier stops
// resolving; blobs of deleted references are left to the sweep.
func (s *ArtworkService) DeleteArtwork(ctx context.Context, id string) error {
	var a model.Artwork

	err := s.write(ctx, "deleteArtwork", func(tx *gorm.DB) error {
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("artwork", id)
			}

			return err
		}

		if err := tx.Where("artwork_id = ?", id).Delete(&model.ComponentTag{}).Error; err != nil {
			return err
		}

		if err := tx.Where("artwork_id = ?", id).Delete(&model.Reference{}).Error; err != nil {
			return err
		}

		if err := tx.Where("artwork_id = ?", id).Delete(&model.GalleryArtwork{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Artwork{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	if err := s.deleteBlob(ctx, blobc.CategoryArtwork, a.ImageKey); err != nil {
		return err
	}

	if a.ReferenceImageKey != "" {
		if err := s.deleteBlob(ctx, blobc.CategoryReference, a.ReferenceImageKey); err != nil {
			return err
		}
	}

	s.invalidate(ctx, cacheKeyArtworks, cacheKeyGalleries)
	s.notifier.entity(queue.TopicArtworkDeleted, s.notifier.cfg.Artwork.Deleted, "artwork", id, a.Name)
	s.notifier.blob(queue.TopicBlobDeleted, s.notifier.cfg.Blob.Deleted, string(blobc.CategoryArtwork), a.ImageKey,
		&queue.EntityRef{Kind: "artwork", ID: id, Name: a.Name})

	return nil
}

// deleteBlob deletes a blob after its owning row is gone. An already
// missing blob is fine; any other failure is surfaced, the graph commit
// stands either way.
func (s *ArtworkService) deleteBlob(ctx context.Context, category blobc.Category, key string) error {
	if key == "" {
		return nil
	}

	if err := s.blobc.Delete(ctx, key, category); err != nil && !apperr.IsNotFound(err) {
		return err
	}

	return nil
}

func artworkResponse(a *model.Artwork) types.ArtworkResponse {
	resp := types.ArtworkResponse{
		ID:                a.ID,
		Name:              a.Name,
		Medium:            a.Medium,
		CreationDate:      a.CreationDate,
		StartDate:         a.StartDate,
		CompletionDate:    a.CompletionDate,
		ImageKey:          a.ImageKey,
		ReferenceImageKey: a.ReferenceImageKey,
		DimensionType:     a.DimensionType,
		Width:             a.Width,
		Height:            a.Height,
		Depth:             a.Depth,
		Unit:              a.Unit,
		SortOrder:         a.SortOrder,
		IsPublic:          a.IsPublic,
		IsMuted:           a.IsMuted,
		Notes:             a.Notes,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}

	for i := range a.Tags {
		resp.Tags = append(resp.Tags, tagResponse(&a.Tags[i]))
	}

	for i := range a.References {
		resp.References = append(resp.References, referenceResponse(&a.References[i]))
	}

	return resp
}
