package model

import (
	"fmt"

	"gorm.io/gorm"
)

// AllModels lists every persisted entity, in migration order.
func AllModels() []any {
	return []any{
		&Gallery{},
		&Artwork{},
		&GalleryArtwork{},
		&Project{},
		&ProjectUpdate{},
		&Reference{},
		&ComponentTag{},
	}
}

// Migrate creates or updates the schema for the whole entity graph.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("migrate entity schema: %w", err)
	}

	return nil
}
