package memory

import (
	"context"

	"github.com/aidar/task-management/internal/domain"
)

// ProjectRepository реализует repository.ProjectRepository в памяти
type ProjectRepository struct {
	store *Store
}

// NewProjectRepository создает новый экземпляр ProjectRepository
func NewProjectRepository(store *Store) *ProjectRepository {
	return &ProjectRepository{store: store}
}

// Create сохраняет новый проект с пустым списком участников
func (r *ProjectRepository) Create(_ context.Context, project *domain.Project) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastProjectID++
	project.ID = s.lastProjectID
	project.Members = []*domain.User{}
	project.Tasks = []*domain.Task{}

	rec := &projectRecord{project: *project}
	rec.project.Members = nil
	rec.project.Tasks = nil
	s.projects[project.ID] = rec
	return nil
}

// GetByID получает проект вместе с участниками и задачами
func (r *ProjectRepository) GetByID(_ context.Context, projectID int64) (*domain.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.projectLocked(projectID)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetAll возвращает все проекты с участниками и задачами
func (r *ProjectRepository) GetAll(_ context.Context) ([]*domain.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]*domain.Project, 0, len(s.projects))
	for _, id := range sortedKeys(s.projects) {
		projects = append(projects, s.projectLocked(id))
	}
	return projects, nil
}

// Update целиком заменяет поля проекта и список участников
func (r *ProjectRepository) Update(_ context.Context, project *domain.Project) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[project.ID]; !ok {
		return domain.ErrNotFound
	}

	members := make([]int64, 0, len(project.Members))
	seen := make(map[int64]struct{}, len(project.Members))
	for _, m := range project.Members {
		if _, ok := s.users[m.ID]; !ok {
			return domain.ErrNotFound
		}
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		members = append(members, m.ID)
	}

	rec := &projectRecord{project: *project, members: members}
	rec.project.Members = nil
	rec.project.Tasks = nil
	s.projects[project.ID] = rec
	return nil
}

// Delete удаляет проект вместе с его задачами
func (r *ProjectRepository) Delete(_ context.Context, projectID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.projects, projectID)
	for id, t := range s.tasks {
		if t.ProjectID == projectID {
			delete(s.tasks, id)
		}
	}
	return nil
}
