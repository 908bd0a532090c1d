package memory

import (
	"context"

	"github.com/aidar/task-management/internal/domain"
)

// UserRepository реализует repository.UserRepository в памяти
type UserRepository struct {
	store *Store
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create сохраняет нового пользователя и проставляет ему ID
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUserID++
	user.ID = s.lastUserID
	s.users[user.ID] = *user
	return nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(_ context.Context, userID int64) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.userLocked(userID)
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// GetAll возвращает всех пользователей, упорядоченных по ID
func (r *UserRepository) GetAll(_ context.Context) ([]*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, id := range sortedKeys(s.users) {
		users = append(users, s.userLocked(id))
	}
	return users, nil
}

// Update перезаписывает имя и email пользователя
func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	s.users[user.ID] = *user
	return nil
}

// Delete удаляет пользователя вместе с его участием в проектах и задачами
func (r *UserRepository) Delete(_ context.Context, userID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, userID)
	for _, rec := range s.projects {
		rec.members = removeID(rec.members, userID)
	}
	for id, t := range s.tasks {
		if t.UserID == userID {
			delete(s.tasks, id)
		}
	}
	return nil
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
