package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mholloway/cadence/internal/errors"
	"github.com/mholloway/cadence/internal/models"
	"github.com/mholloway/cadence/internal/schedule"
	"github.com/mholloway/cadence/internal/storage/sqlite"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "catalog.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	svc := New(store)
	svc.Now = func() time.Time {
		return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func addCategory(t *testing.T, svc *Service, name string) models.RoutineCategory {
	t.Helper()
	cat, err := svc.CreateCategory(models.RoutineCategory{Name: name})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return cat
}

func TestCreateTask(t *testing.T) {
	svc := setupService(t)
	cat := addCategory(t, svc, "Morning")

	task, err := svc.CreateTask(models.RoutineTask{
		CategoryID:     cat.ID,
		Name:           "Meditation",
		ScheduledStart: "06:30",
		DurationMin:    20,
		Days:           schedule.EveryDay(),
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.ID == "" {
		t.Error("expected generated task ID")
	}
	if !task.Active {
		t.Error("new task should be active")
	}

	got, err := svc.GetTask(task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Name != "Meditation" || got.Days != schedule.EveryDay() {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestCreateTaskUnknownCategory(t *testing.T) {
	svc := setupService(t)

	_, err := svc.CreateTask(models.RoutineTask{
		CategoryID: "nope",
		Name:       "Stretch",
		Days:       schedule.EveryDay(),
	})
	if !errors.IsNotFound(err) {
		t.Errorf("expected not-found for unknown category, got %v", err)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc := setupService(t)
	cat := addCategory(t, svc, "Morning")

	_, err := svc.CreateTask(models.RoutineTask{CategoryID: cat.ID})
	if !errors.IsValidation(err) {
		t.Errorf("expected validation error for empty task, got %v", err)
	}
}

func TestUpdateTaskPreservesCreatedAt(t *testing.T) {
	svc := setupService(t)
	cat := addCategory(t, svc, "Morning")

	task, err := svc.CreateTask(models.RoutineTask{
		CategoryID: cat.ID,
		Name:       "Journal",
		Days:       schedule.NewWeekdaySet(time.Monday, time.Wednesday),
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	task.Name = "Morning pages"
	task.CreatedAt = time.Time{}
	updated, err := svc.UpdateTask(task)
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.CreatedAt.IsZero() {
		t.Error("update should preserve original created_at")
	}
	if updated.Name != "Morning pages" {
		t.Errorf("name = %q", updated.Name)
	}
}

func TestDeleteAndRestoreTask(t *testing.T) {
	svc := setupService(t)
	cat := addCategory(t, svc, "Evening")

	task, err := svc.CreateTask(models.RoutineTask{
		CategoryID: cat.ID,
		Name:       "Read",
		Days:       schedule.EveryDay(),
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := svc.DeleteTask(task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := svc.GetTask(task.ID); !errors.IsNotFound(err) {
		t.Errorf("deleted task should be not-found, got %v", err)
	}

	restored, err := svc.RestoreTask(task.ID)
	if err != nil {
		t.Fatalf("restore task: %v", err)
	}
	if restored.DeletedAt != nil {
		t.Error("restored task should have nil deleted_at")
	}
}

func TestListTasksByCategory(t *testing.T) {
	svc := setupService(t)
	morning := addCategory(t, svc, "Morning")
	evening := addCategory(t, svc, "Evening")

	for _, tc := range []struct {
		cat  models.RoutineCategory
		name string
	}{
		{morning, "Meditation"},
		{morning, "Stretch"},
		{evening, "Journal"},
	} {
		if _, err := svc.CreateTask(models.RoutineTask{
			CategoryID: tc.cat.ID,
			Name:       tc.name,
			Days:       schedule.EveryDay(),
		}); err != nil {
			t.Fatalf("create %q: %v", tc.name, err)
		}
	}

	tasks, err := svc.ListTasksByCategory(morning.ID)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 morning tasks, got %d", len(tasks))
	}

	if _, err := svc.ListTasksByCategory("nope"); !errors.IsNotFound(err) {
		t.Errorf("expected not-found for unknown category, got %v", err)
	}
}
