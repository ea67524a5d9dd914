package model

import (
	"time"
)

// Component tag kinds.
const (
	TagTypeSubject = "subject"
	TagTypeProcess = "process"
)

// ComponentTag is an annotation pinned to a point of an artwork's image.
// LocationX and LocationY are normalized to the full-resolution image's own
// coordinate space; whatever the caller supplies is stored and returned
// verbatim, with no clamping or bounds checks. The screen-to-image
// conversion happens in the capture layer before the tag reaches the store.
type ComponentTag struct {
	ID        string `gorm:"primaryKey;size:36"     json:"id"`
	ArtworkID string `gorm:"size:36;index;not null" json:"artwork_id"`

	// Type selects which rating semantics apply: subject tags rate the
	// depicted element, process tags rate the technique.
	Type string `gorm:"size:16"  json:"type"`
	Name string `gorm:"size:255" json:"name"`

	// Two 1-5 ratings whose meaning depends on Type.
	PrimaryRating   int `json:"primary_rating"`
	SecondaryRating int `json:"secondary_rating"`

	Notes string `gorm:"type:text" json:"notes"`
	// ProcessSteps is only meaningful for process tags.
	ProcessSteps string `gorm:"type:text" json:"process_steps,omitempty"`

	// ImageKey addresses an optional close-up blob (category component).
	ImageKey string `gorm:"size:64" json:"image_key,omitempty"`

	LocationX float64 `json:"location_x"`
	LocationY float64 `json:"location_y"`

	CreatedAt time.Time `json:"created_at"`
}
