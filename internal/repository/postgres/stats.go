package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/task-management/internal/domain"
)

const userStatsQuery = `
	SELECT
		u.id,
		u.name,
		(SELECT COUNT(*) FROM project_members pm WHERE pm.user_id = u.id) AS projects,
		COUNT(t.id) AS assigned_tasks,
		COUNT(CASE WHEN t.status = 'Pending' THEN 1 END) AS pending_tasks,
		COUNT(CASE WHEN t.status = 'Completed' THEN 1 END) AS completed_tasks
	FROM users u
	LEFT JOIN tasks t ON t.user_id = u.id
`

// StatsRepository реализует repository.StatsRepository для PostgreSQL
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository создает новый экземпляр StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Overview возвращает общую статистику и статистику по каждому пользователю
func (r *StatsRepository) Overview(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{
		UserStats: []domain.UserStats{},
		TaskStats: domain.TaskStats{ByStatus: map[string]int{}},
	}

	rows, err := r.db.Query(ctx, userStatsQuery+`
		GROUP BY u.id, u.name
		ORDER BY assigned_tasks DESC, u.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var us domain.UserStats
		if err := rows.Scan(&us.UserID, &us.Name, &us.Projects, &us.AssignedTasks, &us.PendingTasks, &us.CompletedTasks); err != nil {
			return nil, err
		}
		stats.UserStats = append(stats.UserStats, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	statusRows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer statusRows.Close()

	for statusRows.Next() {
		var status string
		var count int
		if err := statusRows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.TaskStats.ByStatus[status] = count
		stats.TaskStats.TotalTasks += count
	}
	if err := statusRows.Err(); err != nil {
		return nil, err
	}

	stats.TaskStats.PendingTasks = stats.TaskStats.ByStatus[domain.TaskStatusPending]
	stats.TaskStats.CompletedTasks = stats.TaskStats.ByStatus[domain.TaskStatusCompleted]

	totalsQuery := `
		SELECT
			(SELECT COUNT(*) FROM projects) AS total_projects,
			(SELECT COUNT(*) FROM users) AS total_users
	`
	if err := r.db.QueryRow(ctx, totalsQuery).Scan(
		&stats.TaskStats.TotalProjects,
		&stats.TaskStats.TotalUsers,
	); err != nil {
		return nil, err
	}

	return stats, nil
}

// UserStats возвращает статистику пользователя
func (r *StatsRepository) UserStats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	query := userStatsQuery + `
		WHERE u.id = $1
		GROUP BY u.id, u.name
	`

	var us domain.UserStats
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&us.UserID,
		&us.Name,
		&us.Projects,
		&us.AssignedTasks,
		&us.PendingTasks,
		&us.CompletedTasks,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &us, nil
}
