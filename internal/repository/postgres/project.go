package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/task-management/internal/domain"
)

// ProjectRepository реализует repository.ProjectRepository для PostgreSQL
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository создает новый экземпляр ProjectRepository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create сохраняет новый проект с пустым списком участников
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO projects (name, description, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		project.Name, project.Description, project.StartDate, project.EndDate,
	).Scan(&project.ID)
	if err != nil {
		return err
	}

	project.Members = []*domain.User{}
	project.Tasks = []*domain.Task{}
	return nil
}

// GetByID получает проект вместе с участниками и задачами
func (r *ProjectRepository) GetByID(ctx context.Context, projectID int64) (*domain.Project, error) {
	query := `
		SELECT id, name, description, start_date, end_date
		FROM projects
		WHERE id = $1
	`

	var p domain.Project
	err := r.db.QueryRow(ctx, query, projectID).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.StartDate,
		&p.EndDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	projects := []*domain.Project{&p}
	if err := r.loadMembers(ctx, projects); err != nil {
		return nil, err
	}
	if err := r.loadTasks(ctx, projects); err != nil {
		return nil, err
	}

	return &p, nil
}

// GetAll возвращает все проекты с участниками и задачами
func (r *ProjectRepository) GetAll(ctx context.Context) ([]*domain.Project, error) {
	query := `
		SELECT id, name, description, start_date, end_date
		FROM projects
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(projects) == 0 {
		return projects, nil
	}
	if err := r.loadMembers(ctx, projects); err != nil {
		return nil, err
	}
	if err := r.loadTasks(ctx, projects); err != nil {
		return nil, err
	}

	return projects, nil
}

// Update целиком заменяет поля проекта и список участников
func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore error as it will fail if transaction was committed
	}()

	query := `
		UPDATE projects
		SET name = $1, description = $2, start_date = $3, end_date = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := tx.Exec(ctx, query,
		project.Name, project.Description, project.StartDate, project.EndDate, project.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	// Replace the member set as a whole
	if _, err := tx.Exec(ctx, `DELETE FROM project_members WHERE project_id = $1`, project.ID); err != nil {
		return err
	}

	memberQuery := `
		INSERT INTO project_members (project_id, user_id, position)
		VALUES ($1, $2, $3)
	`
	for i, member := range project.Members {
		if _, err := tx.Exec(ctx, memberQuery, project.ID, member.ID, i); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
				return domain.ErrNotFound
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete удаляет проект вместе со связями участников и задачами
func (r *ProjectRepository) Delete(ctx context.Context, projectID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	return err
}

// loadMembers заполняет Members у переданных проектов
func (r *ProjectRepository) loadMembers(ctx context.Context, projects []*domain.Project) error {
	byID, ids := indexProjects(projects)
	for _, p := range projects {
		p.Members = []*domain.User{}
	}

	query := `
		SELECT pm.project_id, u.id, u.name, u.email
		FROM project_members pm
		INNER JOIN users u ON u.id = pm.user_id
		WHERE pm.project_id = ANY($1)
		ORDER BY pm.project_id, pm.position
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var projectID int64
		var user domain.User
		if err := rows.Scan(&projectID, &user.ID, &user.Name, &user.Email); err != nil {
			return err
		}
		p := byID[projectID]
		p.Members = append(p.Members, &user)
	}

	return rows.Err()
}

// loadTasks заполняет Tasks у переданных проектов вместе с исполнителями
func (r *ProjectRepository) loadTasks(ctx context.Context, projects []*domain.Project) error {
	byID, ids := indexProjects(projects)
	for _, p := range projects {
		p.Tasks = []*domain.Task{}
	}

	query := `
		SELECT ` + taskColumns + `, u.id, u.name, u.email
		FROM tasks t
		INNER JOIN users u ON u.id = t.user_id
		WHERE t.project_id = ANY($1)
		ORDER BY t.id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var user domain.User
		task, err := scanTask(rows, &user.ID, &user.Name, &user.Email)
		if err != nil {
			return err
		}
		task.User = &user
		p := byID[task.ProjectID]
		p.Tasks = append(p.Tasks, task)
	}

	return rows.Err()
}

func indexProjects(projects []*domain.Project) (map[int64]*domain.Project, []int64) {
	byID := make(map[int64]*domain.Project, len(projects))
	ids := make([]int64, 0, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	return byID, ids
}
