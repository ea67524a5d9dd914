package types

import "time"

// AddReferenceForm attaches a reference image to exactly one owner. Exactly
// one of ArtworkID and ProjectID must be set; the image travels as a
// multipart file.
type AddReferenceForm struct {
	Title string `form:"title" json:"title"`
	Notes string `form:"notes" json:"notes"`

	ArtworkID string `form:"artwork_id" json:"artwork_id,omitempty"`
	ProjectID string `form:"project_id" json:"project_id,omitempty"`
}

// ReferenceResponse is the reference read model.
type ReferenceResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Notes    string `json:"notes"`
	ImageKey string `json:"image_key"`

	ArtworkID string `json:"artwork_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
