// Package model defines the entity graph persisted in the vault database:
// artworks, galleries, projects, project updates, references and component
// tags, plus the explicit join table carrying per-gallery ordering.
//
// Entities are only ever created and mutated through the service layer, so
// the models stay plain data: no hooks, no validation logic here.
package model

import (
	"time"
)

// DimensionType distinguishes flat works from sculptural ones.
const (
	Dimension2D = "2d"
	Dimension3D = "3d"
)

// Measurement units for artwork dimensions.
const (
	UnitInches      = "in"
	UnitCentimeters = "cm"
	UnitMillimeters = "mm"
	UnitPixels      = "px"
)

// Artwork is a single finished or in-progress piece. The image and optional
// reference image live in the blob store; only their identifiers are stored
// here. An artwork may appear in any number of galleries through
// GalleryArtwork rows and owns its references and component tags outright.
type Artwork struct {
	ID     string `gorm:"primaryKey;size:36"          json:"id"`
	Name   string `gorm:"size:255;index"              json:"name"`
	Medium string `gorm:"size:255"                    json:"medium"`

	// Optional lifecycle dates supplied by the user, not derived.
	CreationDate   *time.Time `json:"creation_date,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`

	// ImageKey addresses the primary image blob (category artwork).
	ImageKey string `gorm:"size:64;index" json:"image_key"`
	// ReferenceImageKey addresses an optional second blob (category
	// reference); empty when the artwork has none.
	ReferenceImageKey string `gorm:"size:64" json:"reference_image_key,omitempty"`

	DimensionType string  `gorm:"size:8"  json:"dimension_type"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Depth         float64 `json:"depth"`
	Unit          string  `gorm:"size:8"  json:"unit"`

	// SortOrder is the artwork's manual rank in the all-artworks listing.
	SortOrder int `gorm:"index" json:"sort_order"`

	IsPublic bool   `json:"is_public"`
	IsMuted  bool   `json:"is_muted"`
	Notes    string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owned associations, deleted with the artwork.
	Tags       []ComponentTag `gorm:"foreignKey:ArtworkID" json:"tags,omitempty"`
	References []Reference    `gorm:"foreignKey:ArtworkID" json:"references,omitempty"`
}
