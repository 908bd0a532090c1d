package memory

import (
	"context"

	"github.com/aidar/task-management/internal/domain"
)

// TaskRepository реализует repository.TaskRepository в памяти
type TaskRepository struct {
	store *Store
}

// NewTaskRepository создает новый экземпляр TaskRepository
func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

// Create сохраняет новую задачу и проставляет ID и CreatedAt
func (r *TaskRepository) Create(_ context.Context, task *domain.Task) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[task.UserID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.projects[task.ProjectID]; !ok {
		return domain.ErrNotFound
	}

	s.lastTaskID++
	task.ID = s.lastTaskID
	task.CreatedAt = s.now()
	task.UpdatedAt = nil
	s.tasks[task.ID] = stripRelations(*task)
	return nil
}

// GetByID получает задачу по строковому представлению ID
func (r *TaskRepository) GetByID(_ context.Context, taskID string) (*domain.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, t := range s.tasks {
		if domain.TaskKey(id) == taskID {
			return s.taskLocked(t), nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetAll возвращает все задачи с исполнителями и проектами
func (r *TaskRepository) GetAll(_ context.Context) ([]*domain.Task, error) {
	return r.collect(func(*domain.Task) bool { return true }), nil
}

// GetByUserID возвращает задачи пользователя
func (r *TaskRepository) GetByUserID(_ context.Context, userID int64) ([]*domain.Task, error) {
	return r.collect(func(t *domain.Task) bool { return t.UserID == userID }), nil
}

// GetByProjectID возвращает задачи проекта
func (r *TaskRepository) GetByProjectID(_ context.Context, projectID int64) ([]*domain.Task, error) {
	return r.collect(func(t *domain.Task) bool { return t.ProjectID == projectID }), nil
}

// Update сохраняет изменённую задачу и проставляет UpdatedAt
func (r *TaskRepository) Update(_ context.Context, task *domain.Task) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tasks[task.ID]
	if !ok {
		return domain.ErrNotFound
	}

	now := s.now()
	task.UpdatedAt = &now

	// Исполнитель, проект и дата создания не меняются
	updated := stripRelations(*task)
	updated.UserID = stored.UserID
	updated.ProjectID = stored.ProjectID
	updated.CreatedAt = stored.CreatedAt
	s.tasks[task.ID] = updated
	return nil
}

// Delete удаляет задачу
func (r *TaskRepository) Delete(_ context.Context, taskID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, taskID)
	return nil
}

// Search возвращает страницу задач, подходящих под фильтр
func (r *TaskRepository) Search(_ context.Context, filter domain.TaskFilter, offset, limit int) ([]*domain.Task, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return []*domain.Task{}, nil
	}

	matched := r.collect(filter.Match)
	if offset >= len(matched) {
		return []*domain.Task{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *TaskRepository) collect(keep func(*domain.Task) bool) []*domain.Task {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := []*domain.Task{}
	for _, t := range s.sortedTasksLocked() {
		task := t
		if keep(&task) {
			tasks = append(tasks, s.taskLocked(task))
		}
	}
	return tasks
}

func stripRelations(t domain.Task) domain.Task {
	t.User = nil
	t.Project = nil
	return t
}
