package service_test

import (
	"testing"
	"time"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/internal/service"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	"github.com/artvault/artvault/pkg/internal/types"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", value, err)
	}

	return d
}

func TestLastActivityFollowsTimeline(t *testing.T) {
	ctx := newTestContext(t)
	projects := service.NewProjectService(ctx)

	t1 := day(t, "2026-03-01")
	t2 := day(t, "2026-05-20")

	p, err := projects.CreateProject(ctx, &types.CreateProjectRequest{Name: "Mural"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if p.LastActivityDate != nil {
		t.Fatalf("fresh project has activity date %v", p.LastActivityDate)
	}

	u1, err := projects.SaveWorkInProgress(ctx, &types.SaveWorkInProgressForm{
		ProjectName: "Mural", Title: "Blocking in", Date: &t1,
	}, nil)
	if err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	u2, err := projects.SaveWorkInProgress(ctx, &types.SaveWorkInProgressForm{
		ProjectName: "Mural", Title: "Details", Date: &t2,
	}, nil)
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}

	got, err := projects.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if got.LastActivityDate == nil || !got.LastActivityDate.Equal(t2) {
		t.Fatalf("activity date = %v, want %v", got.LastActivityDate, t2)
	}

	if got.UpdateCount != 2 {
		t.Errorf("update count = %d, want 2", got.UpdateCount)
	}

	// Dropping the newest update rolls the activity date back.
	if err := projects.DeleteProjectUpdate(ctx, u2.ID); err != nil {
		t.Fatalf("delete update failed: %v", err)
	}

	got, err = projects.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if got.LastActivityDate == nil || !got.LastActivityDate.Equal(t1) {
		t.Fatalf("activity date = %v, want %v", got.LastActivityDate, t1)
	}

	if err := projects.DeleteProjectUpdate(ctx, u1.ID); err != nil {
		t.Fatalf("delete update failed: %v", err)
	}

	got, err = projects.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if got.LastActivityDate != nil {
		t.Fatalf("activity date = %v after clearing the timeline, want nil", got.LastActivityDate)
	}
}

func TestLastActivityFlooredAtStartDate(t *testing.T) {
	ctx := newTestContext(t)
	projects := service.NewProjectService(ctx)

	start := day(t, "2026-06-01")
	before := day(t, "2026-01-15")

	p, err := projects.CreateProject(ctx, &types.CreateProjectRequest{Name: "Tapestry", StartDate: &start})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := projects.SaveWorkInProgress(ctx, &types.SaveWorkInProgressForm{
		ProjectName: "Tapestry", Title: "Sketch", Date: &before,
	}, nil); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := projects.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if got.LastActivityDate == nil || !got.LastActivityDate.Equal(start) {
		t.Fatalf("activity date = %v, want floor at %v", got.LastActivityDate, start)
	}
}

func TestSaveWorkInProgressCreatesProject(t *testing.T) {
	ctx := newTestContext(t)
	projects := service.NewProjectService(ctx)

	u, err := projects.SaveWorkInProgress(ctx, &types.SaveWorkInProgressForm{
		ProjectName: "Sudden Idea", Medium: "oil", Title: "Start",
	}, testImage)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if u.ImageKey == "" {
		t.Fatal("update has no image key")
	}

	store := blobStore(t, ctx)
	if _, err := store.Get(ctx, u.ImageKey, blobc.CategoryProjectUpdate); err != nil {
		t.Fatalf("snapshot blob missing: %v", err)
	}

	list, err := projects.ListProjects(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if list.Total != 1 || list.Projects[0].Name != "Sudden Idea" {
		t.Fatalf("projects = %+v, want one named Sudden Idea", list.Projects)
	}

	if list.Projects[0].Medium != "oil" {
		t.Errorf("medium = %q, want oil", list.Projects[0].Medium)
	}

	// A second save against the same name reuses the project.
	if _, err := projects.SaveWorkInProgress(ctx, &types.SaveWorkInProgressForm{
		ProjectName: "Sudden Idea", Title: "Continue",
	}, nil); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	list, err = projects.ListProjects(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if list.Total != 1 {
		t.Fatalf("project count = %d after second save, want 1", list.Total)
	}

	updates, err := projects.ListProjectUpdates(ctx, list.Projects[0].ID)
	if err != nil {
		t.Fatalf("list updates failed: %v", err)
	}

	if updates.Total != 2 {
		t.Fatalf("update count = %d, want 2", updates.Total)
	}
}

func TestDeleteProjectRemovesOwnedBlobs(t *testing.T) {
	ctx := newTestContext(t)
	projects := service.NewProjectService(ctx)
	references := service.NewReferenceService(ctx)

	u, err := projects.SaveWorkInProgress(ctx, &types.SaveWorkInProgressForm{
		ProjectName: "Fresco", Title: "Plaster",
	}, testImage)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	ref, err := references.AddReference(ctx, &types.AddReferenceForm{
		Title: "Ceiling study", ProjectID: u.ProjectID,
	}, testImage)
	if err != nil {
		t.Fatalf("add reference failed: %v", err)
	}

	if err := projects.DeleteProject(ctx, u.ProjectID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := projects.GetProject(ctx, u.ProjectID); !apperr.IsNotFound(err) {
		t.Fatalf("get after delete = %v, want NotFoundError", err)
	}

	store := blobStore(t, ctx)
	if _, err := store.Get(ctx, u.ImageKey, blobc.CategoryProjectUpdate); !apperr.IsNotFound(err) {
		t.Errorf("update blob survives delete: %v", err)
	}

	if _, err := store.Get(ctx, ref.ImageKey, blobc.CategoryReference); !apperr.IsNotFound(err) {
		t.Errorf("reference blob survives delete: %v", err)
	}
}

func TestUpdateProjectFieldMerge(t *testing.T) {
	ctx := newTestContext(t)
	projects := service.NewProjectService(ctx)

	p, err := projects.CreateProject(ctx, &types.CreateProjectRequest{
		Name: "Relief", Medium: "clay", Priority: "low",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	priority := "high"
	completed := true

	got, err := projects.UpdateProject(ctx, p.ID, &types.UpdateProjectRequest{
		Priority: &priority, IsCompleted: &completed,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if got.Priority != "high" || !got.IsCompleted {
		t.Errorf("merge result = %+v", got)
	}

	if got.Name != "Relief" || got.Medium != "clay" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestUpdateDeletedProjectConflicts(t *testing.T) {
	ctx := newTestContext(t)
	projects := service.NewProjectService(ctx)

	p, err := projects.CreateProject(ctx, &types.CreateProjectRequest{Name: "Ghost"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := projects.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	name := "Renamed"
	if _, err := projects.UpdateProject(ctx, p.ID, &types.UpdateProjectRequest{Name: &name}); !apperr.IsNotFound(err) {
		t.Fatalf("update after delete = %v, want NotFoundError", err)
	}
}
