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

// TagService implements component tags: annotations pinned to normalized
// points of an artwork's image.
type TagService struct {
	base
}

// NewTagService builds a TagService from the request context.
func NewTagService(c context.Context) *TagService {
	return &TagService{base: newBase(c)}
}

func validateTagForm(form *types.CreateComponentTagForm) error {
	if form == nil {
		return apperr.Validation("form", "tag form is required")
	}

	if form.Type != model.TagTypeSubject && form.Type != model.TagTypeProcess {
		return apperr.Validation("type", "tag type must be subject or process")
	}

	if form.Name == "" {
		return apperr.Validation("name", "tag name is required")
	}

	if form.PrimaryRating < 1 || form.PrimaryRating > 5 {
		return apperr.Validation("primary_rating", "rating must be between 1 and 5")
	}

	if form.SecondaryRating < 1 || form.SecondaryRating > 5 {
		return apperr.Validation("secondary_rating", "rating must be between 1 and 5")
	}

	return nil
}

// CreateComponentTag pins a tag to the artwork. The supplied coordinates are
// stored exactly as given: they live in the unscaled image's own coordinate
// space and the store neither clamps nor validates them against the image
// bounds. An optional close-up image is stored first, like every other
// blob-then-row write.
func (s *TagService) CreateComponentTag(ctx context.Context, artworkID string, form *types.CreateComponentTagForm, image []byte) (*types.ComponentTagResponse, error) {
	if err := validateTagForm(form); err != nil {
		return nil, err
	}

	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("createComponentTag", err)
	}

	var imageKey string

	if len(image) > 0 {
		key, err := s.blobc.Put(ctx, image, blobc.CategoryComponent)
		if err != nil {
			return nil, err
		}

		imageKey = key
	}

	t := model.ComponentTag{
		ID:              newID(),
		ArtworkID:       artworkID,
		Type:            form.Type,
		Name:            form.Name,
		PrimaryRating:   form.PrimaryRating,
		SecondaryRating: form.SecondaryRating,
		Notes:           form.Notes,
		ProcessSteps:    form.ProcessSteps,
		ImageKey:        imageKey,
		LocationX:       form.LocationX,
		LocationY:       form.LocationY,
	}

	err := s.write(ctx, "createComponentTag", func(tx *gorm.DB) error {
		var a model.Artwork
		if err := tx.First(&a, "id = ?", artworkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("artwork", artworkID)
			}

			return err
		}

		return tx.Create(&t).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyArtworks)
	s.notifier.entity(queue.TopicTagCreated, s.notifier.cfg.Artwork.Updated, "componentTag", t.ID, t.Name)

	resp := tagResponse(&t)

	return &resp, nil
}

// ListComponentTags returns an artwork's tags, newest first.
func (s *TagService) ListComponentTags(ctx context.Context, artworkID string) ([]types.ComponentTagResponse, error) {
	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("listComponentTags", err)
	}

	var tags []model.ComponentTag
	if err := s.db(ctx).Where("artwork_id = ?", artworkID).
		Order("created_at DESC").Find(&tags).Error; err != nil {
		return nil, apperr.Persistence("listComponentTags", err)
	}

	out := make([]types.ComponentTagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, tagResponse(&tags[i]))
	}

	return out, nil
}

// DeleteComponentTag removes one tag and its optional close-up blob.
func (s *TagService) DeleteComponentTag(ctx context.Context, id string) error {
	var t model.ComponentTag

	err := s.write(ctx, "deleteComponentTag", func(tx *gorm.DB) error {
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("componentTag", id)
			}

			return err
		}

		return tx.Delete(&model.ComponentTag{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	if t.ImageKey != "" {
		if err := s.blobc.Delete(ctx, t.ImageKey, blobc.CategoryComponent); err != nil && !apperr.IsNotFound(err) {
			return err
		}
	}

	s.invalidate(ctx, cacheKeyArtworks)
	s.notifier.entity(queue.TopicTagDeleted, s.notifier.cfg.Artwork.Updated, "componentTag", id, t.Name)

	return nil
}

func tagResponse(t *model.ComponentTag) types.ComponentTagResponse {
	return types.ComponentTagResponse{
		ID:              t.ID,
		ArtworkID:       t.ArtworkID,
		Type:            t.Type,
		Name:            t.Name,
		PrimaryRating:   t.PrimaryRating,
		SecondaryRating: t.SecondaryRating,
		Notes:           t.Notes,
		ProcessSteps:    t.ProcessSteps,
		ImageKey:        t.ImageKey,
		LocationX:       t.LocationX,
		LocationY:       t.LocationY,
		CreatedAt:       t.CreatedAt,
	}
}
