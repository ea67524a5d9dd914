package types

import "time"

// CreateProjectRequest creates a project shell with no updates yet.
type CreateProjectRequest struct {
	Name   string `binding:"required" json:"name"`
	Medium string `json:"medium"`

	StartDate *time.Time `json:"start_date,omitempty" time_format:"2006-01-02"`

	Inspiration  string `json:"inspiration"`
	Skills       string `json:"skills"`
	TimeEstimate string `json:"time_estimate"`
	Priority     string `json:"priority"`
}

// UpdateProjectRequest carries a partial project update; nil fields are left
// untouched. LastActivityDate is absent on purpose: it is derived from the
// update timeline and never written directly.
type UpdateProjectRequest struct {
	Name   *string `json:"name,omitempty"`
	Medium *string `json:"medium,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty" time_format:"2006-01-02"`

	Inspiration  *string `json:"inspiration,omitempty"`
	Skills       *string `json:"skills,omitempty"`
	TimeEstimate *string `json:"time_estimate,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	IsCompleted  *bool   `json:"is_completed,omitempty"`
}

// SaveWorkInProgressForm appends a timeline update to the named project,
// creating the project first when no project with that name exists. The
// snapshot image travels as a multipart file alongside this form.
type SaveWorkInProgressForm struct {
	ProjectName string `binding:"required" form:"project_name" json:"project_name"`
	Medium      string `form:"medium" json:"medium"`

	Title     string `form:"title"      json:"title"`
	Changes   string `form:"changes"    json:"changes"`
	TodoNotes string `form:"todo_notes" json:"todo_notes"`
	IsPublic  bool   `form:"is_public"  json:"is_public"`

	// Date defaults to now when omitted.
	Date *time.Time `form:"date" json:"date,omitempty" time_format:"2006-01-02"`
}

// ProjectResponse is the project read model.
type ProjectResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Medium string `json:"medium"`

	StartDate        *time.Time `json:"start_date,omitempty"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`

	Inspiration  string `json:"inspiration"`
	Skills       string `json:"skills"`
	TimeEstimate string `json:"time_estimate"`
	Priority     string `json:"priority"`
	IsCompleted  bool   `json:"is_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UpdateCount int `json:"update_count"`
}

// ProjectUpdateResponse is one timeline entry read model.
type ProjectUpdateResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Changes   string    `json:"changes"`
	TodoNotes string    `json:"todo_notes"`
	IsPublic  bool      `json:"is_public"`
	ImageKey  string    `json:"image_key,omitempty"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// ListProjectsResponse wraps the project listing.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
}

// ListProjectUpdatesResponse wraps a project's timeline, newest first.
type ListProjectUpdatesResponse struct {
	Updates []ProjectUpdateResponse `json:"updates"`
	Total   int                     `json:"total"`
}
