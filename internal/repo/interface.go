package repo

import (
	"context"

	"github.com/salauddinmajumder/Task-Manager/internal/model"
)

// TodoRepository определяет интерфейс для работы с пользователями и задачами
type TodoRepository interface {
	GetOrCreateUser(ctx context.Context, username string) (int64, error)
	ListTasks(ctx context.Context, userID int64) ([]model.Task, error)
	CreateTask(ctx context.Context, userID int64, text, priority string) (model.Task, error)
	UpdateTask(ctx context.Context, userID, taskID int64, patch model.TaskPatch) error
	ReorderTasks(ctx context.Context, userID int64, orderedIDs []int64) error
	DeleteTask(ctx context.Context, userID, taskID int64) error
	DeleteAllTasks(ctx context.Context, userID int64) (int64, error)
}
