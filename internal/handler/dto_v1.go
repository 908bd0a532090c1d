package handler

import (
	"time"

	"github.com/aidar/task-management/internal/domain"
)

// UserDTOV1 представляет пользователя в API v1
type UserDTOV1 struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TaskDTOV1 представляет задачу в API v1 с плоскими ссылками на проект и исполнителя
type TaskDTOV1 struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"dueDate"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	ProjectID   int64      `json:"projectId"`
	ProjectName string     `json:"projectName"`
	UserID      int64      `json:"userId"`
	UserName    string     `json:"userName"`
}

// ProjectDTOV1 представляет проект в API v1
type ProjectDTOV1 struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StartDate   *time.Time  `json:"startDate,omitempty"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
	Users       []UserDTOV1 `json:"users"`
	Tasks       []TaskDTOV1 `json:"tasks"`
}

// V1 возвращает представление сущностей для API v1
func V1() Representation[UserDTOV1, ProjectDTOV1, TaskDTOV1] {
	return Representation[UserDTOV1, ProjectDTOV1, TaskDTOV1]{
		User:    userV1,
		Project: projectV1,
		Task:    taskV1,
	}
}

func userV1(u *domain.User) UserDTOV1 {
	return UserDTOV1{ID: u.ID, Name: u.Name, Email: u.Email}
}

func taskV1(t *domain.TaskView) TaskDTOV1 {
	return TaskDTOV1{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		ProjectID:   t.ProjectID,
		ProjectName: t.ProjectName,
		UserID:      t.UserID,
		UserName:    t.UserName,
	}
}

func projectV1(p *domain.Project) ProjectDTOV1 {
	dto := ProjectDTOV1{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Users:       mapSlice(p.Members, userV1),
		Tasks:       mapSlice(projectTaskViews(p), taskV1),
	}
	return dto
}
