package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/task-management/internal/domain"
)

const taskColumns = `t.id, t.title, t.description, t.due_date, t.status, t.created_at, t.updated_at, t.user_id, t.project_id`

// joinedTaskQuery выбирает задачи вместе с исполнителем и проектом
const joinedTaskQuery = `
	SELECT ` + taskColumns + `,
		u.id, u.name, u.email,
		p.id, p.name, p.description, p.start_date, p.end_date
	FROM tasks t
	INNER JOIN users u ON u.id = t.user_id
	INNER JOIN projects p ON p.id = t.project_id
`

// TaskRepository реализует repository.TaskRepository для PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository создает новый экземпляр TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create сохраняет новую задачу и проставляет ID и CreatedAt
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (title, description, due_date, status, user_id, project_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		task.Title, task.Description, task.DueDate, task.Status, task.UserID, task.ProjectID,
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// GetByID получает задачу вместе с исполнителем и проектом.
// Нечисловой идентификатор просто не найдётся.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := joinedTaskQuery + ` WHERE t.id::text = $1`

	task, err := scanJoinedTask(r.db.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return task, nil
}

// GetAll возвращает все задачи с исполнителями и проектами
func (r *TaskRepository) GetAll(ctx context.Context) ([]*domain.Task, error) {
	return r.queryJoined(ctx, joinedTaskQuery+` ORDER BY t.id`)
}

// GetByUserID возвращает задачи пользователя
func (r *TaskRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return r.queryJoined(ctx, joinedTaskQuery+` WHERE t.user_id = $1 ORDER BY t.id`, userID)
}

// GetByProjectID возвращает задачи проекта
func (r *TaskRepository) GetByProjectID(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	return r.queryJoined(ctx, joinedTaskQuery+` WHERE t.project_id = $1 ORDER BY t.id`, projectID)
}

// Update сохраняет изменённую задачу и проставляет UpdatedAt
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, status = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		task.Title, task.Description, task.DueDate, task.Status, task.ID,
	).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return nil
}

// Delete удаляет задачу
func (r *TaskRepository) Delete(ctx context.Context, taskID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	return err
}

// Search возвращает страницу задач, подходящих под фильтр
func (r *TaskRepository) Search(ctx context.Context, filter domain.TaskFilter, offset, limit int) ([]*domain.Task, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return []*domain.Task{}, nil
	}

	var conditions []string
	var args []any

	if filter.Keyword != "" {
		args = append(args, filter.Keyword)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(strpos(t.title, $%d) > 0 OR strpos(t.description, $%d) > 0)", n, n))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if filter.DueBefore != nil {
		args = append(args, *filter.DueBefore)
		conditions = append(conditions, fmt.Sprintf("t.due_date <= $%d", len(args)))
	}

	query := joinedTaskQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, offset, limit)
	query += fmt.Sprintf(" ORDER BY t.id OFFSET $%d LIMIT $%d", len(args)-1, len(args))

	return r.queryJoined(ctx, query, args...)
}

func (r *TaskRepository) queryJoined(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanJoinedTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// scanTask читает колонки taskColumns, затем дополнительные колонки в extra
func scanTask(row pgx.Row, extra ...any) (*domain.Task, error) {
	var t domain.Task
	dest := append([]any{
		&t.ID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.UserID,
		&t.ProjectID,
	}, extra...)
	err := row.Scan(dest...)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// scanJoinedTask читает строку joinedTaskQuery
func scanJoinedTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	var u domain.User
	var p domain.Project
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.UserID,
		&t.ProjectID,
		&u.ID, &u.Name, &u.Email,
		&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate,
	)
	if err != nil {
		return nil, err
	}
	t.User = &u
	t.Project = &p
	return &t, nil
}
