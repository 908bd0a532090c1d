package memory

import (
	"context"
	"sort"

	"github.com/aidar/task-management/internal/domain"
)

// StatsRepository реализует repository.StatsRepository в памяти
type StatsRepository struct {
	store *Store
}

// NewStatsRepository создает новый экземпляр StatsRepository
func NewStatsRepository(store *Store) *StatsRepository {
	return &StatsRepository{store: store}
}

// Overview возвращает общую статистику и статистику по каждому пользователю
func (r *StatsRepository) Overview(_ context.Context) (*domain.Stats, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.Stats{
		UserStats: make([]domain.UserStats, 0, len(s.users)),
		TaskStats: domain.TaskStats{
			ByStatus:      map[string]int{},
			TotalProjects: len(s.projects),
			TotalUsers:    len(s.users),
		},
	}

	for _, t := range s.tasks {
		stats.TaskStats.ByStatus[t.Status]++
		stats.TaskStats.TotalTasks++
	}
	stats.TaskStats.PendingTasks = stats.TaskStats.ByStatus[domain.TaskStatusPending]
	stats.TaskStats.CompletedTasks = stats.TaskStats.ByStatus[domain.TaskStatusCompleted]

	for _, id := range sortedKeys(s.users) {
		stats.UserStats = append(stats.UserStats, s.userStatsLocked(id))
	}
	sort.SliceStable(stats.UserStats, func(i, j int) bool {
		return stats.UserStats[i].AssignedTasks > stats.UserStats[j].AssignedTasks
	})

	return stats, nil
}

// UserStats возвращает статистику пользователя
func (r *StatsRepository) UserStats(_ context.Context, userID int64) (*domain.UserStats, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, domain.ErrNotFound
	}
	us := s.userStatsLocked(userID)
	return &us, nil
}

func (s *Store) userStatsLocked(userID int64) domain.UserStats {
	us := domain.UserStats{UserID: userID, Name: s.users[userID].Name}

	for _, rec := range s.projects {
		for _, m := range rec.members {
			if m == userID {
				us.Projects++
				break
			}
		}
	}

	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		us.AssignedTasks++
		switch t.Status {
		case domain.TaskStatusPending:
			us.PendingTasks++
		case domain.TaskStatusCompleted:
			us.CompletedTasks++
		}
	}

	return us
}
