package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/cache"
	"github.com/artvault/artvault/pkg/internal/model"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	"github.com/artvault/artvault/pkg/internal/types"
	"github.com/artvault/artvault/pkg/queue"
)

// ProjectService implements the project service layer: lifecycle, the work-in-
// progress timeline and the derived last-activity date.
type ProjectService struct {
	base
}

// NewProjectService builds a ProjectService from the request context.
func NewProjectService(c context.Context) *ProjectService {
	return &ProjectService{base: newBase(c)}
}

func validateProjectEnums(timeEstimate, priority string) error {
	switch timeEstimate {
	case "", model.EstimateDays, model.EstimateWeeks, model.EstimateMonths, model.EstimateYears:
	default:
		return apperr.Validation("time_estimate", "unknown time estimate "+timeEstimate)
	}

	switch priority {
	case "", model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
	default:
		return apperr.Validation("priority", "unknown priority "+priority)
	}

	return nil
}

// CreateProject creates a project shell with no timeline yet.
func (s *ProjectService) CreateProject(ctx context.Context, req *types.CreateProjectRequest) (*types.ProjectResponse, error) {
	if req == nil || req.Name == "" {
		return nil, apperr.Validation("name", "project name is required")
	}

	if err := validateProjectEnums(req.TimeEstimate, req.Priority); err != nil {
		return nil, err
	}

	p := model.Project{
		ID:           newID(),
		Name:         req.Name,
		Medium:       req.Medium,
		StartDate:    req.StartDate,
		Inspiration:  req.Inspiration,
		Skills:       req.Skills,
		TimeEstimate: req.TimeEstimate,
		Priority:     req.Priority,
	}

	err := s.write(ctx, "createProject", func(tx *gorm.DB) error {
		return tx.Create(&p).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyProjects)
	s.notifier.entity(queue.TopicProjectCreated, s.notifier.cfg.Project.Created, "project", p.ID, p.Name)

	resp := projectResponse(&p, 0)

	return &resp, nil
}

// GetProject returns one project with its update count.
func (s *ProjectService) GetProject(ctx context.Context, id string) (*types.ProjectResponse, error) {
	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("getProject", err)
	}

	var p model.Project
	if err := s.db(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("project", id)
		}

		return nil, apperr.Persistence("getProject", err)
	}

	var count int64
	if err := s.db(ctx).Model(&model.ProjectUpdate{}).Where("project_id = ?", id).Count(&count).Error; err != nil {
		return nil, apperr.Persistence("getProject", err)
	}

	resp := projectResponse(&p, int(count))

	return &resp, nil
}

// ListProjects returns every project, most recently active first.
func (s *ProjectService) ListProjects(ctx context.Context) (*types.ListProjectsResponse, error) {
	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("listProjects", err)
	}

	if s.cache != nil {
		resp, err := cache.GetOrSet(ctx, s.cache, cacheKeyProjects, func() (*types.ListProjectsResponse, error) {
			return s.listProjects(ctx)
		}, listCacheTTL)
		if err == nil {
			return resp, nil
		}
	}

	return s.listProjects(ctx)
}

func (s *ProjectService) listProjects(ctx context.Context) (*types.ListProjectsResponse, error) {
	var projects []model.Project
	if err := s.db(ctx).Order("last_activity_date DESC, name ASC").Find(&projects).Error; err != nil {
		return nil, apperr.Persistence("listProjects", err)
	}

	counts := map[string]int{}

	type pair struct {
		ProjectID string
		N         int
	}

	var rows []pair
	if err := s.db(ctx).Model(&model.ProjectUpdate{}).
		Select("project_id, count(*) as n").Group("project_id").Scan(&rows).Error; err != nil {
		return nil, apperr.Persistence("listProjects", err)
	}

	for _, r := range rows {
		counts[r.ProjectID] = r.N
	}

	resp := &types.ListProjectsResponse{Projects: make([]types.ProjectResponse, 0, len(projects)), Total: len(projects)}
	for i := range projects {
		resp.Projects = append(resp.Projects, projectResponse(&projects[i], counts[projects[i].ID]))
	}

	return resp, nil
}

// UpdateProject applies the request's non-nil fields. The derived
// last-activity date is never writable here. A project deleted between
// lookup and commit is a conflicting delete.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, req *types.UpdateProjectRequest) (*types.ProjectResponse, error) {
	if req == nil {
		return nil, apperr.Validation("form", "update form is required")
	}

	if req.Name != nil && *req.Name == "" {
		return nil, apperr.Validation("name", "project name must not be empty")
	}

	if req.TimeEstimate != nil || req.Priority != nil {
		te, pr := "", ""
		if req.TimeEstimate != nil {
			te = *req.TimeEstimate
		}

		if req.Priority != nil {
			pr = *req.Priority
		}

		if err := validateProjectEnums(te, pr); err != nil {
			return nil, err
		}
	}

	existing, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated model.Project

	err = s.write(ctx, "updateProject", func(tx *gorm.DB) error {
		var p model.Project
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrConflictingDelete
			}

			return err
		}

		applyProjectForm(&p, req)

		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		// A changed start date can shift the derived activity floor.
		if req.StartDate != nil {
			if err := recomputeLastActivity(tx, &p); err != nil {
				return err
			}
		}

		updated = p

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyProjects)
	s.notifier.entity(queue.TopicProjectUpdated, s.notifier.cfg.Project.Updated, "project", id, updated.Name)

	resp := projectResponse(&updated, existing.UpdateCount)

	return &resp, nil
}

func applyProjectForm(p *model.Project, req *types.UpdateProjectRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}

	if req.Medium != nil {
		p.Medium = *req.Medium
	}

	if req.StartDate != nil {
		p.StartDate = req.StartDate
	}

	if req.Inspiration != nil {
		p.Inspiration = *req.Inspiration
	}

	if req.Skills != nil {
		p.Skills = *req.Skills
	}

	if req.TimeEstimate != nil {
		p.TimeEstimate = *req.TimeEstimate
	}

	if req.Priority != nil {
		p.Priority = *req.Priority
	}

	if req.IsCompleted != nil {
		p.IsCompleted = *req.IsCompleted
	}
}

// DeleteProject cascades: every update and reference row goes, and so do
// all their blobs.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	var (
		name       string
		updateKeys []string
		refKeys    []string
	)

	err := s.write(ctx, "deleteProject", func(tx *gorm.DB) error {
		var p model.Project
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("project", id)
			}

			return err
		}

		name = p.Name

		if err := tx.Model(&model.ProjectUpdate{}).Where("project_id = ? AND image_key <> ''", id).
			Pluck("image_key", &updateKeys).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Reference{}).Where("project_id = ? AND image_key <> ''", id).
			Pluck("image_key", &refKeys).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectUpdate{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&model.Reference{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Project{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	for _, key := range updateKeys {
		if err := s.deleteOwnedBlob(ctx, blobc.CategoryProjectUpdate, key); err != nil {
			return err
		}
	}

	for _, key := range refKeys {
		if err := s.deleteOwnedBlob(ctx, blobc.CategoryReference, key); err != nil {
			return err
		}
	}

	s.invalidate(ctx, cacheKeyProjects)
	s.notifier.entity(queue.TopicProjectDeleted, s.notifier.cfg.Project.Deleted, "project", id, name)

	return nil
}

func (s *ProjectService) deleteOwnedBlob(ctx context.Context, category blobc.Category, key string) error {
	if key == "" {
		return nil
	}

	if err := s.blobc.Delete(ctx, key, category); err != nil && !apperr.IsNotFound(err) {
		return err
	}

	return nil
}

// SaveWorkInProgress appends a timeline update to the named project,
// creating the project first when the name is new. The optional snapshot
// image is written to the blob store before the rows commit, and the
// project's last-activity date is recomputed from the full timeline.
func (s *ProjectService) SaveWorkInProgress(ctx context.Context, form *types.SaveWorkInProgressForm, image []byte) (*types.ProjectUpdateResponse, error) {
	if form == nil || form.ProjectName == "" {
		return nil, apperr.Validation("project_name", "project name is required")
	}

	if err := s.ready(); err != nil {
		return nil, apperr.Persistence("saveWorkInProgress", err)
	}

	var imageKey string

	if len(image) > 0 {
		key, err := s.blobc.Put(ctx, image, blobc.CategoryProjectUpdate)
		if err != nil {
			return nil, err
		}

		imageKey = key
	}

	date := time.Now().UTC()
	if form.Date != nil {
		date = *form.Date
	}

	u := model.ProjectUpdate{
		ID:        newID(),
		Title:     form.Title,
		Changes:   form.Changes,
		TodoNotes: form.TodoNotes,
		IsPublic:  form.IsPublic,
		ImageKey:  imageKey,
		Date:      date,
	}

	var (
		projectID    string
		projectName  string
		lastActivity *time.Time
	)

	err := s.write(ctx, "saveWorkInProgress", func(tx *gorm.DB) error {
		var p model.Project

		err := tx.First(&p, "name = ?", form.ProjectName).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			p = model.Project{
				ID:     newID(),
				Name:   form.ProjectName,
				Medium: form.Medium,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		u.ProjectID = p.ID

		if err := tx.Create(&u).Error; err != nil {
			return err
		}

		if err := recomputeLastActivity(tx, &p); err != nil {
			return err
		}

		projectID, projectName, lastActivity = p.ID, p.Name, p.LastActivityDate

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyProjects)
	s.notifier.timeline(queue.TopicProjectUpdateAdded, s.notifier.cfg.Project.Updated,
		projectID, projectName, u.ID, u.Date, lastActivity)

	resp := projectUpdateResponse(&u)

	return &resp, nil
}

// ListProjectUpdates returns the project's timeline, newest first.
func (s *ProjectService) ListProjectUpdates(ctx context.Context, projectID string) (*types.ListProjectUpdatesResponse, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	var updates []model.ProjectUpdate
	if err := s.db(ctx).Where("project_id = ?", projectID).
		Order("date DESC, created_at DESC").Find(&updates).Error; err != nil {
		return nil, apperr.Persistence("listProjectUpdates", err)
	}

	resp := &types.ListProjectUpdatesResponse{Updates: make([]types.ProjectUpdateResponse, 0, len(updates)), Total: len(updates)}
	for i := range updates {
		resp.Updates = append(resp.Updates, projectUpdateResponse(&updates[i]))
	}

	return resp, nil
}

// DeleteProjectUpdate removes one timeline entry, its blob, and recomputes
// the owning project's last-activity date from what remains.
func (s *ProjectService) DeleteProjectUpdate(ctx context.Context, updateID string) error {
	var (
		u            model.ProjectUpdate
		projectID    string
		projectName  string
		lastActivity *time.Time
	)

	err := s.write(ctx, "deleteProjectUpdate", func(tx *gorm.DB) error {
		if err := tx.First(&u, "id = ?", updateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("projectUpdate", updateID)
			}

			return err
		}

		if err := tx.Delete(&model.ProjectUpdate{}, "id = ?", updateID).Error; err != nil {
			return err
		}

		var p model.Project
		if err := tx.First(&p, "id = ?", u.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Update outlived its project somehow; nothing to
				// recompute.
				return nil
			}

			return err
		}

		if err := recomputeLastActivity(tx, &p); err != nil {
			return err
		}

		projectID, projectName, lastActivity = p.ID, p.Name, p.LastActivityDate

		return nil
	})
	if err != nil {
		return err
	}

	if u.ImageKey != "" {
		if err := s.deleteOwnedBlob(ctx, blobc.CategoryProjectUpdate, u.ImageKey); err != nil {
			return err
		}
	}

	s.invalidate(ctx, cacheKeyProjects)
	s.notifier.timeline(queue.TopicProjectUpdateRemoved, s.notifier.cfg.Project.Updated,
		projectID, projectName, updateID, u.Date, lastActivity)

	return nil
}

// recomputeLastActivity derives the project's last-activity date as the max
// of its updates' dates, floored at the start date so the invariant
// lastActivity >= startDate holds whenever any update exists. With no
// updates left the field clears. The max is read off the latest row so the
// date round-trips through the driver as a ProjectUpdate field, not as a
// raw aggregate column.
func recomputeLastActivity(tx *gorm.DB, p *model.Project) error {
	var latest model.ProjectUpdate

	err := tx.Where("project_id = ?", p.ID).Order("date DESC").First(&latest).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p.LastActivityDate = nil
	case err != nil:
		return err
	default:
		last := latest.Date
		if p.StartDate != nil && last.Before(*p.StartDate) {
			last = *p.StartDate
		}

		p.LastActivityDate = &last
	}

	return tx.Model(&model.Project{}).Where("id = ?", p.ID).
		Update("last_activity_date", p.LastActivityDate).Error
}

func projectResponse(p *model.Project, updateCount int) types.ProjectResponse {
	return types.ProjectResponse{
		ID:               p.ID,
		Name:             p.Name,
		Medium:           p.Medium,
		StartDate:        p.StartDate,
		LastActivityDate: p.LastActivityDate,
		Inspiration:      p.Inspiration,
		Skills:           p.Skills,
		TimeEstimate:     p.TimeEstimate,
		Priority:         p.Priority,
		IsCompleted:      p.IsCompleted,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		UpdateCount:      updateCount,
	}
}

func projectUpdateResponse(u *model.ProjectUpdate) types.ProjectUpdateResponse {
	return types.ProjectUpdateResponse{
		ID:        u.ID,
		ProjectID: u.ProjectID,
		Title:     u.Title,
		Changes:   u.Changes,
		TodoNotes: u.TodoNotes,
		IsPublic:  u.IsPublic,
		ImageKey:  u.ImageKey,
		Date:      u.Date,
		CreatedAt: u.CreatedAt,
	}
}
