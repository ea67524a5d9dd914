// Package types defines the request and response shapes exchanged between
// the HTTP handlers and the service layer.
package types

import "time"

// CreateArtworkForm carries the metadata half of an artwork creation; the
// image bytes travel separately as multipart files. GalleryID is optional
// and permissive: an id that does not resolve to a gallery simply yields an
// artwork with no membership, not an error.
type CreateArtworkForm struct {
	Name   string `binding:"required" form:"name"   json:"name"`
	Medium string `form:"medium"                    json:"medium"`

	CreationDate   *time.Time `form:"creation_date"   json:"creation_date,omitempty"   time_format:"2006-01-02"`
	StartDate      *time.Time `form:"start_date"      json:"start_date,omitempty"      time_format:"2006-01-02"`
	CompletionDate *time.Time `form:"completion_date" json:"completion_date,omitempty" time_format:"2006-01-02"`

	DimensionType string  `form:"dimension_type" json:"dimension_type"`
	Width         float64 `form:"width"          json:"width"`
	Height        float64 `form:"height"         json:"height"`
	Depth         float64 `form:"depth"          json:"depth"`
	Unit          string  `form:"unit"           json:"unit"`

	GalleryID string `form:"gallery_id" json:"gallery_id,omitempty"`

	IsPublic bool   `form:"is_public" json:"is_public"`
	IsMuted  bool   `form:"is_muted"  json:"is_muted"`
	Notes    string `form:"notes"     json:"notes"`
}

// UpdateArtworkForm carries a partial artwork update; nil fields are left
// untouched.
type UpdateArtworkForm struct {
	Name   *string `form:"name"   json:"name,omitempty"`
	Medium *string `form:"medium" json:"medium,omitempty"`

	CreationDate   *time.Time `form:"creation_date"   json:"creation_date,omitempty"   time_format:"2006-01-02"`
	StartDate      *time.Time `form:"start_date"      json:"start_date,omitempty"      time_format:"2006-01-02"`
	CompletionDate *time.Time `form:"completion_date" json:"completion_date,omitempty" time_format:"2006-01-02"`

	DimensionType *string  `form:"dimension_type" json:"dimension_type,omitempty"`
	Width         *float64 `form:"width"          json:"width,omitempty"`
	Height        *float64 `form:"height"         json:"height,omitempty"`
	Depth         *float64 `form:"depth"          json:"depth,omitempty"`
	Unit          *string  `form:"unit"           json:"unit,omitempty"`

	IsPublic *bool   `form:"is_public" json:"is_public,omitempty"`
	IsMuted  *bool   `form:"is_muted"  json:"is_muted,omitempty"`
	Notes    *string `form:"notes"     json:"notes,omitempty"`
}

// ArtworkResponse is the artwork read model.
type ArtworkResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Medium string `json:"medium"`

	CreationDate   *time.Time `json:"creation_date,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`

	ImageKey          string `json:"image_key"`
	ReferenceImageKey string `json:"reference_image_key,omitempty"`

	DimensionType string  `json:"dimension_type"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Depth         float64 `json:"depth"`
	Unit          string  `json:"unit"`

	SortOrder int    `json:"sort_order"`
	IsPublic  bool   `json:"is_public"`
	IsMuted   bool   `json:"is_muted"`
	Notes     string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tags       []ComponentTagResponse `json:"tags,omitempty"`
	References []ReferenceResponse    `json:"references,omitempty"`
}

// ListArtworksResponse wraps an ordered artwork listing.
type ListArtworksResponse struct {
	Artworks []ArtworkResponse `json:"artworks"`
	Total    int               `json:"total"`
}
