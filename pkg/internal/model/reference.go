package model

import (
	"time"
)

// Reference is an inspiration or source image attached to exactly one owner,
// either an artwork or a project. The two owner columns are nullable so the
// row can carry either edge; the service layer rejects rows where both or
// neither are set before anything is persisted.
type Reference struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Title string `gorm:"size:255"           json:"title"`
	Notes string `gorm:"type:text"          json:"notes"`

	// ImageKey addresses the reference image blob (category reference).
	ImageKey string `gorm:"size:64" json:"image_key"`

	ArtworkID *string `gorm:"size:36;index" json:"artwork_id,omitempty"`
	ProjectID *string `gorm:"size:36;index" json:"project_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// OwnedByArtwork reports whether the reference hangs off an artwork.
func (r *Reference) OwnedByArtwork() bool {
	return r.ArtworkID != nil && *r.ArtworkID != ""
}

// OwnedByProject reports whether the reference hangs off a project.
func (r *Reference) OwnedByProject() bool {
	return r.ProjectID != nil && *r.ProjectID != ""
}
