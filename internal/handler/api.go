package handler

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/salauddinmajumder/Task-Manager/internal/model"
	"github.com/salauddinmajumder/Task-Manager/internal/repo"
	"github.com/salauddinmajumder/Task-Manager/internal/service"
	"github.com/salauddinmajumder/Task-Manager/pkg/respond"
)

type TodoHandler struct {
	service *service.TodoService
	logger  *zap.Logger
}

func NewTodoHandler(srv *service.TodoService, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		service: srv,
		logger:  logger,
	}
}

// Dispatch — единственная точка входа API: разбирает запрос и выбирает
// операцию по имени action.
func (h *TodoHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	p := parseRequest(r)
	action, _ := p.Str("action")

	switch action {
	case "getUserAndTasks":
		h.getUserAndTasks(w, r)
	case "addTask":
		h.addTask(w, r, p)
	case "updateTask":
		h.updateTask(w, r, p)
	case "reorderTasks":
		h.reorderTasks(w, r, p)
	case "deleteTask":
		h.deleteTask(w, r, p)
	case "deleteAllUserTasks":
		h.deleteAllUserTasks(w, r, p)
	default:
		respond.Error(w, r, http.StatusBadRequest, "Invalid action specified.")
	}
}

// getUserAndTasks берет username только из query — так ходит клиент.
func (h *TodoHandler) getUserAndTasks(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		respond.Error(w, r, http.StatusBadRequest, "Username is required.")
		return
	}

	userID, err := h.service.ResolveUser(r.Context(), username)
	if err != nil {
		h.logger.Error("get or create user failed", zap.String("username", username), zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "Could not retrieve or create user.")
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), userID)
	if err != nil {
		h.logger.Error("fetch tasks failed", zap.Int64("user_id", userID), zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "Error fetching tasks.")
		return
	}

	respond.Success(w, r, respond.Envelope{"userId": userID, "tasks": tasks})
}

func (h *TodoHandler) addTask(w http.ResponseWriter, r *http.Request, p params) {
	userID, ok := h.requireUserID(w, r, p)
	if !ok {
		return
	}
	text, _ := p.Str("text")
	priority, _ := p.Str("priority")

	task, err := h.service.AddTask(r.Context(), userID, text, priority)
	switch {
	case errors.Is(err, service.ErrEmptyText):
		respond.Error(w, r, http.StatusBadRequest, "Task text cannot be empty.")
	case err != nil:
		h.logger.Error("add task failed", zap.Int64("user_id", userID), zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "Error adding task.")
	default:
		respond.Success(w, r, respond.Envelope{"task": task})
	}
}

func (h *TodoHandler) updateTask(w http.ResponseWriter, r *http.Request, p params) {
	userID, ok := h.requireUserID(w, r, p)
	if !ok {
		return
	}
	taskID, ok := h.requireTaskID(w, r, p)
	if !ok {
		return
	}

	var patch model.TaskPatch
	if v, ok := p.Str("text"); ok {
		patch.Text = &v
	}
	if v, ok := p.Str("priority"); ok {
		patch.Priority = &v
	}
	if v, ok := p.Bool("completed"); ok {
		patch.Completed = &v
	}
	if v, ok := p.Int("sortOrder"); ok {
		patch.SortOrder = &v
	}

	err := h.service.UpdateTask(r.Context(), userID, taskID, patch)
	switch {
	case errors.Is(err, service.ErrEmptyText):
		respond.Error(w, r, http.StatusBadRequest, "Task text cannot be empty.")
	case errors.Is(err, service.ErrNoFields):
		respond.Error(w, r, http.StatusBadRequest, "No valid update fields provided.")
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "Task not found or no changes detected.")
	case err != nil:
		h.logger.Error("update task failed", zap.Int64("task_id", taskID), zap.Int64("user_id", userID), zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "Error updating task.")
	default:
		respond.Success(w, r, respond.Envelope{"message": "Task updated successfully."})
	}
}

func (h *TodoHandler) reorderTasks(w http.ResponseWriter, r *http.Request, p params) {
	userID, ok := h.requireUserID(w, r, p)
	if !ok {
		return
	}
	raw, ok := p.List("orderedIds")
	if !ok || len(raw) == 0 {
		respond.Error(w, r, http.StatusBadRequest, "Valid ordered task IDs array required.")
		return
	}

	// Невалидные элементы пропускаются, их позиция остается нулевым id,
	// который репозиторий игнорирует.
	ids := make([]int64, len(raw))
	for i, v := range raw {
		id, ok := toInt64(v)
		if !ok || id <= 0 {
			h.logger.Warn("skipping invalid task id in reorder",
				zap.Any("value", v), zap.Int64("user_id", userID))
			continue
		}
		ids[i] = id
	}

	if err := h.service.ReorderTasks(r.Context(), userID, ids); err != nil {
		h.logger.Error("reorder tasks failed", zap.Int64("user_id", userID), zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "Error reordering tasks.")
		return
	}
	respond.Success(w, r, respond.Envelope{"message": "Tasks reordered successfully."})
}

func (h *TodoHandler) deleteTask(w http.ResponseWriter, r *http.Request, p params) {
	userID, ok := h.requireUserID(w, r, p)
	if !ok {
		return
	}
	taskID, ok := h.requireTaskID(w, r, p)
	if !ok {
		return
	}

	err := h.service.DeleteTask(r.Context(), userID, taskID)
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "Task not found or already deleted.")
	case err != nil:
		h.logger.Error("delete task failed", zap.Int64("task_id", taskID), zap.Int64("user_id", userID), zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "Error deleting task.")
	default:
		respond.Success(w, r, respond.Envelope{"message": "Task deleted successfully."})
	}
}

func (h *TodoHandler) deleteAllUserTasks(w http.ResponseWriter, r *http.Request, p params) {
	userID, ok := h.requireUserID(w, r, p)
	if !ok {
		return
	}

	count, err := h.service.DeleteAllTasks(r.Context(), userID)
	if err != nil {
		h.logger.Error("delete all tasks failed", zap.Int64("user_id", userID), zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "Error deleting all user tasks.")
		return
	}
	respond.Success(w, r, respond.Envelope{
		"message":      "All tasks for user deleted.",
		"deletedCount": count,
	})
}

func (h *TodoHandler) requireUserID(w http.ResponseWriter, r *http.Request, p params) (int64, bool) {
	userID, ok := p.Int64("userId")
	if !ok || userID <= 0 {
		respond.Error(w, r, http.StatusBadRequest, "User ID required.")
		return 0, false
	}
	return userID, true
}

func (h *TodoHandler) requireTaskID(w http.ResponseWriter, r *http.Request, p params) (int64, bool) {
	taskID, ok := p.Int64("taskId")
	if !ok || taskID <= 0 {
		respond.Error(w, r, http.StatusBadRequest, "Task ID required.")
		return 0, false
	}
	return taskID, true
}
