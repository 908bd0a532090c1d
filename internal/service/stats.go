package service

import (
	"context"

	"github.com/aidar/task-management/internal/domain"
	"github.com/aidar/task-management/internal/repository"
)

// StatsService handles statistics queries
type StatsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// GetStats returns overall statistics
func (s *StatsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	return s.statsRepo.Overview(ctx)
}

// GetUserStats returns statistics for a specific user
func (s *StatsService) GetUserStats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	stats, err := s.statsRepo.UserStats(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound)
	}
	return stats, nil
}
