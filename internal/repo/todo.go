package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salauddinmajumder/Task-Manager/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
)

type TodoRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTodoRepo(pool *pgxpool.Pool) *TodoRepo { // Конструктор
	return &TodoRepo{
		pool: pool,
	}
}

// GetOrCreateUser возвращает id пользователя, создавая строку при первом
// обращении. Upsert атомарный: два одновременных запроса с новым именем
// получают один и тот же id.
func (r *TodoRepo) GetOrCreateUser(ctx context.Context, username string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username) VALUES ($1)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING user_id
	`, username).Scan(&id)
	return id, err
}

func (r *TodoRepo) ListTasks(ctx context.Context, userID int64) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT task_id, text, priority, completed, created_at, completed_at, sort_order
		FROM tasks
		WHERE user_id = $1
		ORDER BY sort_order ASC, created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Priority, &t.Completed, &t.CreatedAt, &t.CompletedAt, &t.SortOrder); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateTask вставляет задачу в хвост списка пользователя. Вычисление
// sort_order и вставка идут одним запросом, и строка возвращается из него
// же — отдельного повторного чтения нет.
func (r *TodoRepo) CreateTask(ctx context.Context, userID int64, text, priority string) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (user_id, text, priority, sort_order)
		VALUES ($1, $2, $3,
			(SELECT COALESCE(MAX(sort_order) + 1, 0) FROM tasks WHERE user_id = $1))
		RETURNING task_id, text, priority, completed, created_at, completed_at, sort_order
	`, userID, text, priority).Scan(
		&t.ID, &t.Text, &t.Priority, &t.Completed, &t.CreatedAt, &t.CompletedAt, &t.SortOrder,
	)
	return t, err
}

// UpdateTask применяет только заполненные поля patch. Владелец проверяется
// прямо в WHERE, без предварительного чтения.
func (r *TodoRepo) UpdateTask(ctx context.Context, userID, taskID int64, patch model.TaskPatch) error {
	sets := make([]string, 0, 5)
	args := []interface{}{taskID, userID}

	if patch.Text != nil {
		args = append(args, *patch.Text)
		sets = append(sets, fmt.Sprintf("text = $%d", len(args)))
	}
	if patch.Priority != nil {
		args = append(args, *patch.Priority)
		sets = append(sets, fmt.Sprintf("priority = $%d", len(args)))
	}
	if patch.Completed != nil {
		args = append(args, *patch.Completed)
		sets = append(sets, fmt.Sprintf("completed = $%d", len(args)))
		if *patch.Completed {
			sets = append(sets, "completed_at = now()")
		} else {
			sets = append(sets, "completed_at = NULL")
		}
	}
	if patch.SortOrder != nil {
		args = append(args, *patch.SortOrder)
		sets = append(sets, fmt.Sprintf("sort_order = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE task_id = $1 AND user_id = $2"
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

// ReorderTasks переписывает sort_order по позиции id в списке. Все
// обновления в одной транзакции: либо применяются целиком, либо никак.
// Нулевой id — пропущенный элемент, позиция за ним сохраняется; чужие
// задачи просто не совпадают с WHERE и не трогаются.
func (r *TodoRepo) ReorderTasks(ctx context.Context, userID int64, orderedIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i, taskID := range orderedIDs {
		if taskID == 0 {
			continue
		}
		if _, err := tx.Exec(ctx, `
			UPDATE tasks SET sort_order = $1 WHERE task_id = $2 AND user_id = $3
		`, i, taskID, userID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *TodoRepo) DeleteTask(ctx context.Context, userID, taskID int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE task_id = $1 AND user_id = $2", taskID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TodoRepo) DeleteAllTasks(ctx context.Context, userID int64) (int64, error) {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE user_id = $1", userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
