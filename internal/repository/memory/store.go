// Package memory реализует репозитории в памяти процесса.
// Используется драйвером хранилища "memory" и в тестах.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/aidar/task-management/internal/domain"
)

// projectRecord хранит проект без связей и ID участников в порядке добавления
type projectRecord struct {
	project domain.Project
	members []int64
}

// Store хранит все сущности. Репозитории возвращают копии, а не внутренние указатели.
type Store struct {
	mu sync.RWMutex

	users    map[int64]domain.User
	projects map[int64]*projectRecord
	tasks    map[int64]domain.Task

	lastUserID    int64
	lastProjectID int64
	lastTaskID    int64

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		users:    make(map[int64]domain.User),
		projects: make(map[int64]*projectRecord),
		tasks:    make(map[int64]domain.Task),
		now:      time.Now,
	}
}

// userLocked возвращает копию пользователя. Вызывать под блокировкой.
func (s *Store) userLocked(id int64) *domain.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &u
}

// projectLocked собирает проект с участниками и задачами. Вызывать под блокировкой.
func (s *Store) projectLocked(id int64) *domain.Project {
	rec, ok := s.projects[id]
	if !ok {
		return nil
	}

	p := rec.project
	p.Members = make([]*domain.User, 0, len(rec.members))
	for _, userID := range rec.members {
		if u := s.userLocked(userID); u != nil {
			p.Members = append(p.Members, u)
		}
	}

	p.Tasks = []*domain.Task{}
	for _, t := range s.sortedTasksLocked() {
		if t.ProjectID == id {
			task := t
			task.User = s.userLocked(t.UserID)
			p.Tasks = append(p.Tasks, &task)
		}
	}

	return &p
}

// taskLocked возвращает задачу с исполнителем и проектом. Вызывать под блокировкой.
func (s *Store) taskLocked(t domain.Task) *domain.Task {
	t.User = s.userLocked(t.UserID)
	if rec, ok := s.projects[t.ProjectID]; ok {
		p := rec.project
		t.Project = &p
	}
	return &t
}

// sortedTasksLocked возвращает задачи в порядке ID. Вызывать под блокировкой.
func (s *Store) sortedTasksLocked() []domain.Task {
	tasks := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
