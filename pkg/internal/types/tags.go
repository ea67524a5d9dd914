package types

import "time"

// CreateComponentTagForm pins an annotation to a point of an artwork's
// image. LocationX and LocationY are in the unscaled image's own coordinate
// space; the caller does the screen-to-image conversion and the store keeps
// the values verbatim. An optional close-up image travels as a multipart
// file.
type CreateComponentTagForm struct {
	Type string `binding:"required,oneof=subject process" form:"type" json:"type"`
	Name string `binding:"required"                       form:"name" json:"name"`

	PrimaryRating   int `binding:"min=1,max=5" form:"primary_rating"   json:"primary_rating"`
	SecondaryRating int `binding:"min=1,max=5" form:"secondary_rating" json:"secondary_rating"`

	Notes        string `form:"notes"         json:"notes"`
	ProcessSteps string `form:"process_steps" json:"process_steps"`

	LocationX float64 `form:"location_x" json:"location_x"`
	LocationY float64 `form:"location_y" json:"location_y"`
}

// ComponentTagResponse is the component tag read model.
type ComponentTagResponse struct {
	ID        string `json:"id"`
	ArtworkID string `json:"artwork_id"`

	Type string `json:"type"`
	Name string `json:"name"`

	PrimaryRating   int `json:"primary_rating"`
	SecondaryRating int `json:"secondary_rating"`

	Notes        string `json:"notes"`
	ProcessSteps string `json:"process_steps,omitempty"`
	ImageKey     string `json:"image_key,omitempty"`

	LocationX float64 `json:"location_x"`
	LocationY float64 `json:"location_y"`

	CreatedAt time.Time `json:"created_at"`
}
