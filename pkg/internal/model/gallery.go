package model

import (
	"time"
)

// Gallery is a named, manually ordered collection of artworks. Name
// uniqueness is case-sensitive and enforced by the service layer's
// check-then-insert under the write lock, not by a database constraint.
type Gallery struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"size:255;index"     json:"name"`

	// SortOrder is the gallery's manual rank among all galleries.
	SortOrder int `gorm:"index" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GalleryArtwork is the explicit membership edge between a gallery and an
// artwork. The unique pair index makes duplicate membership impossible;
// SortOrder ranks the artwork inside this gallery only.
type GalleryArtwork struct {
	ID        uint   `gorm:"primaryKey"                              json:"id"`
	GalleryID string `gorm:"size:36;index:idx_gallery_member,unique" json:"gallery_id"`
	ArtworkID string `gorm:"size:36;index:idx_gallery_member,unique;index" json:"artwork_id"`

	SortOrder int `gorm:"index" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
}
