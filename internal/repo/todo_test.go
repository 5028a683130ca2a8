// internal/repo/todo_test.go
package repo

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salauddinmajumder/Task-Manager/internal/model"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatal(err)
	}

	// Очистка
	pool.Exec(context.Background(), "TRUNCATE tasks, users RESTART IDENTITY CASCADE")

	return pool
}

func TestTodoRepo_GetOrCreateUser(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTodoRepo(pool)
	ctx := context.Background()

	first, err := repo.GetOrCreateUser(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if first == 0 {
		t.Error("expected non-zero user id")
	}

	second, err := repo.GetOrCreateUser(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Errorf("expected same id for same username, got %d and %d", first, second)
	}
}

func TestTodoRepo_CreateTask_SortOrder(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTodoRepo(pool)
	ctx := context.Background()

	userID, err := repo.GetOrCreateUser(ctx, "bob")
	if err != nil {
		t.Fatal(err)
	}

	first, err := repo.CreateTask(ctx, userID, "first", "medium")
	if err != nil {
		t.Fatal(err)
	}
	if first.SortOrder != 0 {
		t.Errorf("expected sort_order=0 for first task, got %d", first.SortOrder)
	}

	second, err := repo.CreateTask(ctx, userID, "second", "high")
	if err != nil {
		t.Fatal(err)
	}
	if second.SortOrder != 1 {
		t.Errorf("expected sort_order=1 for second task, got %d", second.SortOrder)
	}
	if second.Completed {
		t.Error("new task should not be completed")
	}
}

func TestTodoRepo_UpdateTask_CompletedAt(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTodoRepo(pool)
	ctx := context.Background()

	userID, err := repo.GetOrCreateUser(ctx, "carol")
	if err != nil {
		t.Fatal(err)
	}
	task, err := repo.CreateTask(ctx, userID, "finish report", "medium")
	if err != nil {
		t.Fatal(err)
	}

	completed := true
	if err := repo.UpdateTask(ctx, userID, task.ID, model.TaskPatch{Completed: &completed}); err != nil {
		t.Fatal(err)
	}

	tasks, err := repo.ListTasks(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if !tasks[0].Completed || tasks[0].CompletedAt == nil {
		t.Error("expected completed=true with completed_at set")
	}

	completed = false
	if err := repo.UpdateTask(ctx, userID, task.ID, model.TaskPatch{Completed: &completed}); err != nil {
		t.Fatal(err)
	}

	tasks, _ = repo.ListTasks(ctx, userID)
	if tasks[0].Completed || tasks[0].CompletedAt != nil {
		t.Error("expected completed=false with completed_at cleared")
	}
}

func TestTodoRepo_OwnershipFilter(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTodoRepo(pool)
	ctx := context.Background()

	owner, _ := repo.GetOrCreateUser(ctx, "owner")
	stranger, _ := repo.GetOrCreateUser(ctx, "stranger")

	task, err := repo.CreateTask(ctx, owner, "private task", "medium")
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.DeleteTask(ctx, stranger, task.ID); err != ErrorNotFound {
		t.Errorf("expected ErrorNotFound for foreign delete, got %v", err)
	}

	text := "hijacked"
	if err := repo.UpdateTask(ctx, stranger, task.ID, model.TaskPatch{Text: &text}); err != ErrorNotFound {
		t.Errorf("expected ErrorNotFound for foreign update, got %v", err)
	}

	// Строка осталась нетронутой
	tasks, _ := repo.ListTasks(ctx, owner)
	if len(tasks) != 1 || tasks[0].Text != "private task" {
		t.Error("foreign requests must not touch the row")
	}
}

func TestTodoRepo_ReorderTasks(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTodoRepo(pool)
	ctx := context.Background()

	userID, _ := repo.GetOrCreateUser(ctx, "dave")

	a, _ := repo.CreateTask(ctx, userID, "a", "medium")
	b, _ := repo.CreateTask(ctx, userID, "b", "medium")
	c, _ := repo.CreateTask(ctx, userID, "c", "medium")

	if err := repo.ReorderTasks(ctx, userID, []int64{b.ID, a.ID, c.ID}); err != nil {
		t.Fatal(err)
	}

	tasks, err := repo.ListTasks(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{b.ID, a.ID, c.ID}
	for i, task := range tasks {
		if task.ID != want[i] {
			t.Errorf("position %d: expected task %d, got %d", i, want[i], task.ID)
		}
		if task.SortOrder != i {
			t.Errorf("position %d: expected sort_order=%d, got %d", i, i, task.SortOrder)
		}
	}
}
