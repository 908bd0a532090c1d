package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aidar/task-management/internal/domain"
	"github.com/aidar/task-management/internal/repository"
)

// CreateProjectInput holds the fields of a new project
type CreateProjectInput struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ProjectService handles business logic for projects and their members
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateProject stores a new project with no members
func (s *ProjectService) CreateProject(ctx context.Context, in CreateProjectInput) (*domain.Project, error) {
	project := &domain.Project{
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Members:     []*domain.User{},
		Tasks:       []*domain.Task{},
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "project created", slog.Int64("project_id", project.ID))
	return project, nil
}

// GetAllProjects returns every project with members and tasks
func (s *ProjectService) GetAllProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.projectRepo.GetAll(ctx)
}

// GetProjectByID retrieves a project by ID
func (s *ProjectService) GetProjectByID(ctx context.Context, projectID int64) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrProjectNotFound)
	}
	return project, nil
}

// AddUserToProject makes the user a member of the project.
// Adding an existing member is a conflict, not a no-op.
func (s *ProjectService) AddUserToProject(ctx context.Context, projectID, userID int64) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return notFoundAs(err, domain.ErrProjectNotFound)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return notFoundAs(err, domain.ErrUserNotFound)
	}

	if !project.AddMember(user) {
		return domain.ErrUserAlreadyInProject
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user added to project",
		slog.Int64("project_id", projectID),
		slog.Int64("user_id", userID),
	)
	return nil
}

// RemoveUserFromProject removes the user from the project members.
// Tasks already assigned to the user in this project are left untouched.
func (s *ProjectService) RemoveUserFromProject(ctx context.Context, projectID, userID int64) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return notFoundAs(err, domain.ErrProjectNotFound)
	}

	if !project.RemoveMember(userID) {
		return domain.ErrUserNotInProject
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user removed from project",
		slog.Int64("project_id", projectID),
		slog.Int64("user_id", userID),
	)
	return nil
}
