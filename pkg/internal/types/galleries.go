package types

import "time"

// CreateGalleryRequest creates a named gallery. Names are unique
// case-sensitively; a clash is reported, not silently deduplicated.
type CreateGalleryRequest struct {
	Name string `binding:"required" json:"name"`
}

// RenameGalleryRequest renames an existing gallery, subject to the same
// uniqueness rule.
type RenameGalleryRequest struct {
	Name string `binding:"required" json:"name"`
}

// AddGalleryArtworkRequest appends an artwork to a gallery's membership.
type AddGalleryArtworkRequest struct {
	ArtworkID string `binding:"required" json:"artwork_id"`
}

// ReorderRequest moves one member of an ordering domain from its current
// 0-based index to a new one. The whole domain is re-ranked to contiguous
// 0-based positions as a side effect.
type ReorderRequest struct {
	MovedID   string `binding:"required" json:"moved_id"`
	FromIndex int    `json:"from_index"`
	ToIndex   int    `json:"to_index"`
}

// GalleryResponse is the gallery read model.
type GalleryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ArtworkCount is the membership size; the members themselves are
	// fetched through the gallery artworks listing.
	ArtworkCount int `json:"artwork_count"`
}

// ListGalleriesResponse wraps the ordered gallery listing.
type ListGalleriesResponse struct {
	Galleries []GalleryResponse `json:"galleries"`
	Total     int               `json:"total"`
}
