package model

import (
	"time"
)

// Project time-estimate buckets.
const (
	EstimateDays   = "days"
	EstimateWeeks  = "weeks"
	EstimateMonths = "months"
	EstimateYears  = "years"
)

// Project priority levels.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Project is an in-progress body of work with a timeline of updates.
// LastActivityDate is derived state: always the max of the project's update
// dates, recomputed whenever an update is added or removed, never written
// directly.
type Project struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	Name   string `gorm:"size:255;index"     json:"name"`
	Medium string `gorm:"size:255"           json:"medium"`

	StartDate        *time.Time `json:"start_date,omitempty"`
	LastActivityDate *time.Time `gorm:"index" json:"last_activity_date,omitempty"`

	Inspiration  string `gorm:"type:text" json:"inspiration"`
	Skills       string `gorm:"type:text" json:"skills"`
	TimeEstimate string `gorm:"size:16"   json:"time_estimate"`
	Priority     string `gorm:"size:16"   json:"priority"`
	IsCompleted  bool   `json:"is_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owned associations, deleted with the project together with their
	// blobs.
	Updates    []ProjectUpdate `gorm:"foreignKey:ProjectID" json:"updates,omitempty"`
	References []Reference     `gorm:"foreignKey:ProjectID" json:"references,omitempty"`
}

// ProjectUpdate is one timeline entry on a project. The back-reference is
// mandatory; an update never exists without its project.
type ProjectUpdate struct {
	ID        string `gorm:"primaryKey;size:36"    json:"id"`
	ProjectID string `gorm:"size:36;index;not null" json:"project_id"`

	Title     string `gorm:"size:255"  json:"title"`
	Changes   string `gorm:"type:text" json:"changes"`
	TodoNotes string `gorm:"type:text" json:"todo_notes"`
	IsPublic  bool   `json:"is_public"`

	// ImageKey addresses the update's snapshot blob (category
	// projectUpdate); empty when the update has no image.
	ImageKey string `gorm:"size:64" json:"image_key,omitempty"`

	// Date is the user-facing timeline date, distinct from CreatedAt.
	Date time.Time `gorm:"index" json:"date"`

	CreatedAt time.Time `json:"created_at"`
}
