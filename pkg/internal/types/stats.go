package types

// BlobCategoryStats summarises one blob category.
type BlobCategoryStats struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Bytes    int64  `json:"bytes"`
}

// VaultStatsResponse is the health/statistics read model: entity counts plus
// per-category blob usage. Orphans counts blobs no live entity references;
// they are soft garbage until the sweep reclaims them.
type VaultStatsResponse struct {
	Artworks       int `json:"artworks"`
	Galleries      int `json:"galleries"`
	Projects       int `json:"projects"`
	ProjectUpdates int `json:"project_updates"`
	References     int `json:"references"`
	ComponentTags  int `json:"component_tags"`

	Blobs       []BlobCategoryStats `json:"blobs"`
	OrphanBlobs int                 `json:"orphan_blobs"`
}
