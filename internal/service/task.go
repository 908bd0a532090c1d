package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/aidar/task-management/internal/domain"
	"github.com/aidar/task-management/internal/repository"
)

// CreateTaskInput holds the fields of a new task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	UserID      int64
	ProjectID   int64
}

// SearchTasksInput holds optional filters and the requested page.
// PageNumber is 1-based and must be at least 1.
type SearchTasksInput struct {
	Keyword    string
	Status     string
	DueBefore  *time.Time
	PageNumber int
	PageSize   int
}

// TaskService handles business logic for tasks
type TaskService struct {
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	logger      *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	logger *slog.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// CreateTask creates a pending task for a user who is a member of the project
func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*domain.TaskView, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound)
	}

	project, err := s.projectRepo.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrProjectNotFound)
	}

	if !project.HasMember(user.ID) {
		return nil, domain.ErrUserNotInProject
	}

	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      domain.TaskStatusPending,
		UserID:      user.ID,
		ProjectID:   project.ID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", user.ID),
		slog.Int64("project_id", project.ID),
	)

	task.User = user
	task.Project = project
	return domain.NewTaskView(task), nil
}

// GetTasksByUserID returns the tasks assigned to a user
func (s *TaskService) GetTasksByUserID(ctx context.Context, userID int64) ([]*domain.TaskView, error) {
	tasks, err := s.taskRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toViews(tasks), nil
}

// GetTasksByProjectID returns the tasks of a project
func (s *TaskService) GetTasksByProjectID(ctx context.Context, projectID int64) ([]*domain.TaskView, error) {
	tasks, err := s.taskRepo.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toViews(tasks), nil
}

// GetTaskByID retrieves a task by its opaque identifier
func (s *TaskService) GetTaskByID(ctx context.Context, taskID string) (*domain.TaskView, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrTaskNotFound)
	}
	return domain.NewTaskView(task), nil
}

// UpdateTaskStatus overwrites the task status with any value, without transition checks
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID, status string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return notFoundAs(err, domain.ErrTaskNotFound)
	}

	previous := task.Status
	task.Status = status

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "task status updated",
		slog.Int64("task_id", task.ID),
		slog.String("from", previous),
		slog.String("to", status),
	)
	return nil
}

// SearchTasks returns one page of tasks matching every supplied filter
func (s *TaskService) SearchTasks(ctx context.Context, in SearchTasksInput) ([]*domain.TaskView, error) {
	filter := domain.TaskFilter{
		Keyword:   in.Keyword,
		Status:    in.Status,
		DueBefore: in.DueBefore,
	}

	// A page whose offset does not fit in an int lies past any stored result.
	if in.PageNumber > 1 && in.PageSize > 0 && in.PageNumber-1 > math.MaxInt/in.PageSize {
		return []*domain.TaskView{}, nil
	}

	offset := (in.PageNumber - 1) * in.PageSize
	tasks, err := s.taskRepo.Search(ctx, filter, offset, in.PageSize)
	if err != nil {
		return nil, err
	}
	return toViews(tasks), nil
}

func toViews(tasks []*domain.Task) []*domain.TaskView {
	views := make([]*domain.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, domain.NewTaskView(t))
	}
	return views
}
