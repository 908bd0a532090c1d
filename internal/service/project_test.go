package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aidar/task-management/internal/domain"
	"github.com/aidar/task-management/internal/logging"
)

func newProjectService() (*ProjectService, *mockProjectRepo, *mockUserRepo) {
	projects := &mockProjectRepo{}
	users := &mockUserRepo{}
	return NewProjectService(projects, users, logging.Discard()), projects, users
}

func TestProjectService_CreateProject(t *testing.T) {
	svc, projects, _ := newProjectService()
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0)

	projects.On("Create", ctx, mock.MatchedBy(func(p *domain.Project) bool {
		return p.Name == "Apollo" && p.StartDate.Equal(start) && p.EndDate.Equal(end) && len(p.Members) == 0
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Project).ID = 3
	}).Return(nil)

	project, err := svc.CreateProject(ctx, CreateProjectInput{
		Name:        "Apollo",
		Description: "moon",
		StartDate:   &start,
		EndDate:     &end,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), project.ID)
	assert.Empty(t, project.Members)
	projects.AssertExpectations(t)
}

func TestProjectService_GetProjectByID_NotFound(t *testing.T) {
	svc, projects, _ := newProjectService()
	ctx := context.Background()

	projects.On("GetByID", ctx, int64(5)).Return(nil, domain.ErrNotFound)

	_, err := svc.GetProjectByID(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Project not found")
}

func TestProjectService_GetProjectByID_StorageErrorPropagates(t *testing.T) {
	svc, projects, _ := newProjectService()
	ctx := context.Background()
	storageErr := errors.New("timeout")

	projects.On("GetByID", ctx, int64(5)).Return(nil, storageErr)

	_, err := svc.GetProjectByID(ctx, 5)
	assert.Same(t, storageErr, err)
}

func TestProjectService_AddUserToProject(t *testing.T) {
	svc, projects, users := newProjectService()
	ctx := context.Background()

	existing := &domain.User{ID: 1, Name: "A"}
	project := &domain.Project{ID: 3, Members: []*domain.User{existing}}
	user := &domain.User{ID: 7, Name: "G"}

	projects.On("GetByID", ctx, int64(3)).Return(project, nil)
	users.On("GetByID", ctx, int64(7)).Return(user, nil)
	projects.On("Update", ctx, mock.MatchedBy(func(p *domain.Project) bool {
		return len(p.Members) == 2 && p.Members[0].ID == 1 && p.Members[1].ID == 7
	})).Return(nil)

	require.NoError(t, svc.AddUserToProject(ctx, 3, 7))
	projects.AssertExpectations(t)
}

func TestProjectService_AddUserToProject_Failures(t *testing.T) {
	member := &domain.User{ID: 7, Name: "G"}

	tests := []struct {
		name    string
		setup   func(projects *mockProjectRepo, users *mockUserRepo)
		wantIs  error
		wantMsg string
	}{
		{
			name: "project not found",
			setup: func(projects *mockProjectRepo, _ *mockUserRepo) {
				projects.On("GetByID", mock.Anything, int64(3)).Return(nil, domain.ErrNotFound)
			},
			wantIs:  domain.ErrNotFound,
			wantMsg: "Project not found",
		},
		{
			name: "user not found",
			setup: func(projects *mockProjectRepo, users *mockUserRepo) {
				projects.On("GetByID", mock.Anything, int64(3)).Return(&domain.Project{ID: 3}, nil)
				users.On("GetByID", mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)
			},
			wantIs:  domain.ErrNotFound,
			wantMsg: "User not found",
		},
		{
			name: "already a member",
			setup: func(projects *mockProjectRepo, users *mockUserRepo) {
				projects.On("GetByID", mock.Anything, int64(3)).
					Return(&domain.Project{ID: 3, Members: []*domain.User{member}}, nil)
				users.On("GetByID", mock.Anything, int64(7)).Return(member, nil)
			},
			wantIs:  domain.ErrConflict,
			wantMsg: "User is already part of the project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, projects, users := newProjectService()
			tt.setup(projects, users)

			err := svc.AddUserToProject(context.Background(), 3, 7)
			assert.ErrorIs(t, err, tt.wantIs)
			assert.EqualError(t, err, tt.wantMsg)
			projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestProjectService_RemoveUserFromProject(t *testing.T) {
	svc, projects, users := newProjectService()
	ctx := context.Background()

	project := &domain.Project{ID: 3, Members: []*domain.User{{ID: 1}, {ID: 7}, {ID: 9}}}
	projects.On("GetByID", ctx, int64(3)).Return(project, nil)
	projects.On("Update", ctx, mock.MatchedBy(func(p *domain.Project) bool {
		return len(p.Members) == 2 && p.Members[0].ID == 1 && p.Members[1].ID == 9
	})).Return(nil)

	require.NoError(t, svc.RemoveUserFromProject(ctx, 3, 7))
	projects.AssertExpectations(t)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestProjectService_RemoveUserFromProject_NotMember(t *testing.T) {
	svc, projects, _ := newProjectService()
	ctx := context.Background()

	projects.On("GetByID", ctx, int64(3)).Return(&domain.Project{ID: 3, Members: []*domain.User{{ID: 1}}}, nil)

	err := svc.RemoveUserFromProject(ctx, 3, 7)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "User is not part of the project")
	projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProjectService_RemoveUserFromProject_ProjectNotFound(t *testing.T) {
	svc, projects, _ := newProjectService()
	ctx := context.Background()

	projects.On("GetByID", ctx, int64(3)).Return(nil, domain.ErrNotFound)

	err := svc.RemoveUserFromProject(ctx, 3, 7)
	assert.EqualError(t, err, "Project not found")
}
