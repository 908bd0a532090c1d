package repository

import (
	"context"

	"github.com/aidar/task-management/internal/domain"
)

// Отсутствие сущности репозитории сообщают ошибкой domain.ErrNotFound.

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// Create сохраняет нового пользователя и проставляет ему ID
	Create(ctx context.Context, user *domain.User) error

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID int64) (*domain.User, error)

	// GetAll возвращает всех пользователей, упорядоченных по ID
	GetAll(ctx context.Context) ([]*domain.User, error)

	// Update перезаписывает имя и email пользователя
	Update(ctx context.Context, user *domain.User) error

	// Delete удаляет пользователя
	Delete(ctx context.Context, userID int64) error
}

// ProjectRepository определяет методы для работы с данными проектов
type ProjectRepository interface {
	// Create сохраняет новый проект с пустым списком участников и проставляет ему ID
	Create(ctx context.Context, project *domain.Project) error

	// GetByID получает проект вместе с участниками (в порядке добавления) и задачами
	GetByID(ctx context.Context, projectID int64) (*domain.Project, error)

	// GetAll возвращает все проекты с участниками и задачами
	GetAll(ctx context.Context) ([]*domain.Project, error)

	// Update целиком заменяет поля проекта и список участников
	Update(ctx context.Context, project *domain.Project) error

	// Delete удаляет проект
	Delete(ctx context.Context, projectID int64) error
}

// TaskRepository определяет методы для работы с данными задач
type TaskRepository interface {
	// Create сохраняет новую задачу и проставляет ID и CreatedAt
	Create(ctx context.Context, task *domain.Task) error

	// GetByID получает задачу вместе с исполнителем и проектом.
	// Идентификатор сравнивается со строковым представлением ID.
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)

	// GetAll возвращает все задачи с исполнителями и проектами
	GetAll(ctx context.Context) ([]*domain.Task, error)

	// GetByUserID возвращает задачи пользователя
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Task, error)

	// GetByProjectID возвращает задачи проекта
	GetByProjectID(ctx context.Context, projectID int64) ([]*domain.Task, error)

	// Update сохраняет изменённую задачу и проставляет UpdatedAt
	Update(ctx context.Context, task *domain.Task) error

	// Delete удаляет задачу
	Delete(ctx context.Context, taskID int64) error

	// Search возвращает страницу задач, подходящих под фильтр, упорядоченных по ID.
	// Отрицательный offset считается нулём, limit <= 0 даёт пустую страницу.
	Search(ctx context.Context, filter domain.TaskFilter, offset, limit int) ([]*domain.Task, error)
}

// StatsRepository определяет методы для получения статистики
type StatsRepository interface {
	// Overview возвращает общую статистику и статистику по каждому пользователю
	Overview(ctx context.Context) (*domain.Stats, error)

	// UserStats возвращает статистику пользователя
	UserStats(ctx context.Context, userID int64) (*domain.UserStats, error)
}
