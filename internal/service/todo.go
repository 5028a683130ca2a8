package service

import (
	"context"
	"errors"
	"strings"

	"github.com/salauddinmajumder/Task-Manager/internal/model"
	"github.com/salauddinmajumder/Task-Manager/internal/repo"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyText     = errors.New("task text cannot be empty")
	ErrNoFields      = errors.New("no valid update fields")
)

type TodoService struct {
	repo repo.TodoRepository
}

func NewTodoService(repo repo.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// ResolveUser находит или создает пользователя по имени. Имя обрезается,
// пустое после обрезки — ошибка валидации.
func (s *TodoService) ResolveUser(ctx context.Context, username string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, ErrEmptyUsername
	}
	return s.repo.GetOrCreateUser(ctx, username)
}

func (s *TodoService) ListTasks(ctx context.Context, userID int64) ([]model.Task, error) {
	return s.repo.ListTasks(ctx, userID)
}

func (s *TodoService) AddTask(ctx context.Context, userID int64, text, priority string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}
	// Невалидный приоритет молча заменяется на medium
	if !model.ValidPriority(priority) {
		priority = model.PriorityMedium
	}
	return s.repo.CreateTask(ctx, userID, text, priority)
}

// UpdateTask чистит patch по правилам частичного обновления: пустой текст —
// ошибка, невалидный приоритет и отрицательный sort_order молча
// отбрасываются, полностью пустой patch — ошибка.
func (s *TodoService) UpdateTask(ctx context.Context, userID, taskID int64, patch model.TaskPatch) error {
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return ErrEmptyText
		}
		patch.Text = &text
	}
	if patch.Priority != nil && !model.ValidPriority(*patch.Priority) {
		patch.Priority = nil
	}
	if patch.SortOrder != nil && *patch.SortOrder < 0 {
		patch.SortOrder = nil
	}
	if patch.Empty() {
		return ErrNoFields
	}
	return s.repo.UpdateTask(ctx, userID, taskID, patch)
}

func (s *TodoService) ReorderTasks(ctx context.Context, userID int64, orderedIDs []int64) error {
	return s.repo.ReorderTasks(ctx, userID, orderedIDs)
}

func (s *TodoService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	return s.repo.DeleteTask(ctx, userID, taskID)
}

func (s *TodoService) DeleteAllTasks(ctx context.Context, userID int64) (int64, error) {
	return s.repo.DeleteAllTasks(ctx, userID)
}
