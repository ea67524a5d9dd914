package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/internal/model"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	"github.com/artvault/artvault/pkg/internal/types"
	"github.com/artvault/artvault/pkg/queue"
)

// ReferenceService implements reference images and their exactly-one-owner
// rule: a reference hangs off an artwork or a project, never both, never
// neither.
type ReferenceService struct {
	base
}

// NewReferenceService builds a ReferenceService from the request context.
func NewReferenceService(c context.Context) *ReferenceService {
	return &ReferenceService{base: newBase(c)}
}

// AddReference validates the owner, stores the image, then creates the
// reference row pointing at exactly one owner. Unlike gallery membership on
// artwork creation, a missing owner here is an error: the caller named it
// explicitly.
func (s *ReferenceService) AddReference(ctx context.Context, form *types.AddReferenceForm, image []byte) (*types.ReferenceResponse, error) {
	if form == nil {
		return nil, apperr.Validation("form", "reference form is required")
	}

	hasArtwork := form.ArtworkID != ""
	hasProject := form.ProjectID != ""

	if hasArtwork == hasProject {
		return nil, apperr.Validation("owner", "exactly one of artwork_id and project_id must be set")
	}

	if len(image) == 0 {
		return nil, apperr.Validation("image", "image bytes are required")
	}

	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("addReference", err)
	}

	imageKey, err := s.blobc.Put(ctx, image, blobc.CategoryReference)
	if err != nil {
		return nil, err
	}

	r := model.Reference{
		ID:       newID(),
		Title:    form.Title,
		Notes:    form.Notes,
		ImageKey: imageKey,
	}

	err = s.write(ctx, "addReference", func(tx *gorm.DB) error {
		if hasArtwork {
			var a model.Artwork
			if err := tx.First(&a, "id = ?", form.ArtworkID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("artwork", form.ArtworkID)
				}

				return err
			}

			r.ArtworkID = &a.ID
		} else {
			var p model.Project
			if err := tx.First(&p, "id = ?", form.ProjectID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("project", form.ProjectID)
				}

				return err
			}

			r.ProjectID = &p.ID
		}

		return tx.Create(&r).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.entity(queue.TopicReferenceAdded, s.notifier.cfg.Artwork.Updated, "reference", r.ID, r.Title)

	resp := referenceResponse(&r)

	return &resp, nil
}

// GetReference returns one reference.
func (s *ReferenceService) GetReference(ctx context.Context, id string) (*types.ReferenceResponse, error) {
	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("getReference", err)
	}

	var r model.Reference
	if err := s.db(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("reference", id)
		}

		return nil, apperr.Persistence("getReference", err)
	}

	resp := referenceResponse(&r)

	return &resp, nil
}

// DeleteReference removes the reference row and its blob.
func (s *ReferenceService) DeleteReference(ctx context.Context, id string) error {
	var r model.Reference

	err := s.write(ctx, "deleteReference", func(tx *gorm.DB) error {
		if err := tx.First(&r, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("reference", id)
			}

			return err
		}

		return tx.Delete(&model.Reference{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	if r.ImageKey != "" {
		if err := s.blobc.Delete(ctx, r.ImageKey, blobc.CategoryReference); err != nil && !apperr.IsNotFound(err) {
			return err
		}
	}

	s.notifier.entity(queue.TopicReferenceRemoved, s.notifier.cfg.Artwork.Updated, "reference", id, r.Title)

	return nil
}

func referenceResponse(r *model.Reference) types.ReferenceResponse {
	resp := types.ReferenceResponse{
		ID:        r.ID,
		Title:     r.Title,
		Notes:     r.Notes,
		ImageKey:  r.ImageKey,
		CreatedAt: r.CreatedAt,
	}

	if r.ArtworkID != nil {
		resp.ArtworkID = *r.ArtworkID
	}

	if r.ProjectID != nil {
		resp.ProjectID = *r.ProjectID
	}

	return resp
}
