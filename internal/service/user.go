package service

import (
	"context"
	"log/slog"

	"github.com/aidar/task-management/internal/domain"
	"github.com/aidar/task-management/internal/repository"
)

// UserService handles business logic for users
type UserService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	logger      *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// CreateUser stores a new user. Name and email are not required to be unique.
func (s *UserService) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	user := &domain.User{
		Name:  name,
		Email: email,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user created", slog.Int64("user_id", user.ID))
	return user, nil
}

// GetAllUsers returns every user in repository order
func (s *UserService) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound)
	}
	return user, nil
}

// GetUsersByProjectID returns the current members of a project
func (s *UserService) GetUsersByProjectID(ctx context.Context, projectID int64) ([]*domain.User, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrProjectNotFound)
	}

	users := make([]*domain.User, 0, len(project.Members))
	users = append(users, project.Members...)
	return users, nil
}
