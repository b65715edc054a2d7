package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	config "task-tracker.com/task-tracker/internal/configs"
	"task-tracker.com/task-tracker/internal/constants"
	model "task-tracker.com/task-tracker/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.NewDatabaseClient(config.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func statusPtr(s constants.TaskStatus) *constants.TaskStatus {
	return &s
}

func newRepos(db *gorm.DB) (*TaskRepository, *TaskLogRepository, *MemberRepository) {
	logs := NewTaskLogRepository(db)
	return NewTaskRepository(db, logs), logs, NewMemberRepository(db)
}

func TestTaskRepository_CreateWritesCreationLog(t *testing.T) {
	db := setupTestDB(t)
	tasks, logs, _ := newRepos(db)
	ctx := context.Background()

	task := &model.Task{Title: "Write proposal", Status: constants.StatusInProgress}
	if err := tasks.CreateTask(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if task.ID == 0 {
		t.Fatal("expected task ID to be set")
	}
	if task.Version != 1 {
		t.Errorf("expected version 1, got %d", task.Version)
	}

	entries, err := logs.ListByTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to list logs: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 log, got %d", len(entries))
	}
	if entries[0].OldStatus != nil {
		t.Errorf("expected nil old status, got %v", *entries[0].OldStatus)
	}
	if entries[0].NewStatus != constants.StatusInProgress {
		t.Errorf("expected new status %s, got %s", constants.StatusInProgress, entries[0].NewStatus)
	}
}

func TestTaskRepository_CreateRollsBackWhenLogFails(t *testing.T) {
	db := setupTestDB(t)
	tasks, _, _ := newRepos(db)
	ctx := context.Background()

	if err := db.Migrator().DropTable(&model.TaskLog{}); err != nil {
		t.Fatalf("failed to drop logs table: %v", err)
	}

	task := &model.Task{Title: "Doomed", Status: constants.StatusNotStarted}
	if err := tasks.CreateTask(ctx, task); err == nil {
		t.Fatal("expected create to fail without a logs table")
	}

	var count int64
	db.Model(&model.Task{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no task to persist after rollback, found %d", count)
	}
}

func TestTaskRepository_UpdateLogsOnlyStatusChanges(t *testing.T) {
	db := setupTestDB(t)
	tasks, logs, _ := newRepos(db)
	ctx := context.Background()

	task := &model.Task{Title: "Review", Status: constants.StatusNotStarted}
	if err := tasks.CreateTask(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if _, err := tasks.Update(ctx, task.ID, map[string]any{"title": "Review PR"}); err != nil {
		t.Fatalf("failed to update title: %v", err)
	}
	if _, err := tasks.Update(ctx, task.ID, map[string]any{"status": constants.StatusNotStarted}); err != nil {
		t.Fatalf("failed to resubmit status: %v", err)
	}

	entries, _ := logs.ListByTask(ctx, task.ID)
	if len(entries) != 1 {
		t.Fatalf("expected no new logs for unchanged status, got %d logs", len(entries))
	}

	updated, err := tasks.Update(ctx, task.ID, map[string]any{"status": constants.StatusDone})
	if err != nil {
		t.Fatalf("failed to change status: %v", err)
	}
	if updated.Status != constants.StatusDone {
		t.Errorf("expected status %s, got %s", constants.StatusDone, updated.Status)
	}
	if updated.Title != "Review PR" {
		t.Errorf("expected title to survive, got %q", updated.Title)
	}
	if updated.Version != 4 {
		t.Errorf("expected version 4 after three updates, got %d", updated.Version)
	}

	if len(updated.Logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(updated.Logs))
	}
	last := updated.Logs[1]
	if last.OldStatus == nil || *last.OldStatus != constants.StatusNotStarted || last.NewStatus != constants.StatusDone {
		t.Errorf("unexpected transition log %+v", last)
	}
}

func TestTaskRepository_UpdateClearsNullableFields(t *testing.T) {
	db := setupTestDB(t)
	tasks, _, members := newRepos(db)
	ctx := context.Background()

	member := &model.Member{Name: "Alice"}
	if err := members.Create(ctx, member); err != nil {
		t.Fatalf("failed to create member: %v", err)
	}

	end := time.Now().Add(48 * time.Hour)
	desc := "details"
	task := &model.Task{Title: "T", Description: &desc, MemberID: &member.ID, EndDate: &end, Status: constants.StatusNotStarted}
	if err := tasks.CreateTask(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	updated, err := tasks.Update(ctx, task.ID, map[string]any{
		"member_id":   (*uint)(nil),
		"description": (*string)(nil),
		"end_date":    (*time.Time)(nil),
	})
	if err != nil {
		t.Fatalf("failed to update: %v", err)
	}

	if updated.MemberID != nil || updated.Description != nil || updated.EndDate != nil {
		t.Errorf("expected cleared fields, got member=%v desc=%v end=%v", updated.MemberID, updated.Description, updated.EndDate)
	}
}

func TestTaskRepository_UpdateMissingTask(t *testing.T) {
	db := setupTestDB(t)
	tasks, _, _ := newRepos(db)

	_, err := tasks.Update(context.Background(), 42, map[string]any{"title": "x"})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_DeleteCascadesLogs(t *testing.T) {
	db := setupTestDB(t)
	tasks, logs, _ := newRepos(db)
	ctx := context.Background()

	task := &model.Task{Title: "Short lived", Status: constants.StatusNotStarted}
	if err := tasks.CreateTask(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := tasks.Update(ctx, task.ID, map[string]any{"status": constants.StatusInProgress}); err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	if err := tasks.Delete(ctx, task.ID); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}

	entries, _ := logs.ListByTask(ctx, task.ID)
	if len(entries) != 0 {
		t.Errorf("expected logs to be removed, found %d", len(entries))
	}

	if _, err := tasks.FindByID(ctx, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
	}
	if err := tasks.Delete(ctx, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound on second delete, got %v", err)
	}
}

func TestTaskRepository_ListFiltersAndOrders(t *testing.T) {
	db := setupTestDB(t)
	tasks, _, _ := newRepos(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	step := 0
	tasks.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}

	for i, status := range []constants.TaskStatus{
		constants.StatusNotStarted,
		constants.StatusDone,
		constants.StatusNotStarted,
	} {
		task := &model.Task{Title: fmt.Sprintf("task %d", i), Status: status}
		if err := tasks.CreateTask(ctx, task); err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
	}

	all, err := tasks.List(ctx, nil)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(all))
	}
	if all[0].Title != "task 2" || all[2].Title != "task 0" {
		t.Errorf("expected newest first, got %q..%q", all[0].Title, all[2].Title)
	}

	notStarted, _ := tasks.List(ctx, statusPtr(constants.StatusNotStarted))
	if len(notStarted) != 2 {
		t.Errorf("expected 2 not started tasks, got %d", len(notStarted))
	}

	none, _ := tasks.List(ctx, statusPtr("Unknown"))
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil list, got %v", none)
	}
}

func TestMemberRepository_NameUniqueness(t *testing.T) {
	db := setupTestDB(t)
	_, _, members := newRepos(db)
	ctx := context.Background()

	alice := &model.Member{Name: "Alice"}
	if err := members.Create(ctx, alice); err != nil {
		t.Fatalf("failed to create member: %v", err)
	}

	if err := members.Create(ctx, &model.Member{Name: "Alice"}); !errors.Is(err, ErrMemberNameTaken) {
		t.Errorf("expected ErrMemberNameTaken, got %v", err)
	}

	bob := &model.Member{Name: "Bob"}
	if err := members.Create(ctx, bob); err != nil {
		t.Fatalf("failed to create member: %v", err)
	}

	if _, err := members.Update(ctx, bob.ID, map[string]any{"name": "Alice"}); !errors.Is(err, ErrMemberNameTaken) {
		t.Errorf("expected ErrMemberNameTaken on rename, got %v", err)
	}

	renamed, err := members.Update(ctx, alice.ID, map[string]any{"name": "Alice"})
	if err != nil {
		t.Fatalf("renaming to own name should succeed: %v", err)
	}
	if renamed.Name != "Alice" {
		t.Errorf("unexpected name %q", renamed.Name)
	}
}

func TestMemberRepository_DeleteBlockedByTasks(t *testing.T) {
	db := setupTestDB(t)
	tasks, _, members := newRepos(db)
	ctx := context.Background()

	member := &model.Member{Name: "Alice"}
	if err := members.Create(ctx, member); err != nil {
		t.Fatalf("failed to create member: %v", err)
	}
	task := &model.Task{Title: "Assigned", MemberID: &member.ID, Status: constants.StatusNotStarted}
	if err := tasks.CreateTask(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	blocked, err := members.Delete(ctx, member.ID)
	if !errors.Is(err, ErrMemberHasTasks) {
		t.Fatalf("expected ErrMemberHasTasks, got %v", err)
	}
	if blocked == nil || blocked.Name != "Alice" {
		t.Errorf("expected blocked member to be returned, got %+v", blocked)
	}

	still, err := members.FindByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("member should still exist: %v", err)
	}
	if len(still.Tasks) != 1 {
		t.Errorf("expected member to keep 1 task, got %d", len(still.Tasks))
	}

	if err := tasks.Delete(ctx, task.ID); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}
	if _, err := members.Delete(ctx, member.ID); err != nil {
		t.Fatalf("expected delete to succeed once unassigned: %v", err)
	}
	if _, err := members.Delete(ctx, member.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestUserRepository_SaveUpserts(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	created, err := users.Save(ctx, "admin", "hash-1")
	if err != nil {
		t.Fatalf("failed to save user: %v", err)
	}

	updated, err := users.Save(ctx, "admin", "hash-2")
	if err != nil {
		t.Fatalf("failed to update user: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("expected same user, got ids %d and %d", created.ID, updated.ID)
	}

	found, err := users.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if found.HashedPassword != "hash-2" {
		t.Errorf("expected updated hash, got %q", found.HashedPassword)
	}

	if _, err := users.FindByUsername(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
