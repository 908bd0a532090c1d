package handler

import (
	"time"

	"github.com/aidar/task-management/internal/domain"
)

// UserDTOV2 представляет пользователя в API v2
type UserDTOV2 struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RefDTOV2 это краткая ссылка на связанную сущность
type RefDTOV2 struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TaskDTOV2 представляет задачу в API v2 со вложенными ссылками
type TaskDTOV2 struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"dueDate"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	Project     RefDTOV2   `json:"project"`
	User        RefDTOV2   `json:"user"`
}

// ProjectDTOV2 представляет проект в API v2
type ProjectDTOV2 struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StartDate   *time.Time  `json:"startDate,omitempty"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
	MemberCount int         `json:"memberCount"`
	Members     []UserDTOV2 `json:"members"`
	Tasks       []TaskDTOV2 `json:"tasks"`
}

// V2 возвращает представление сущностей для API v2
func V2() Representation[UserDTOV2, ProjectDTOV2, TaskDTOV2] {
	return Representation[UserDTOV2, ProjectDTOV2, TaskDTOV2]{
		User:    userV2,
		Project: projectV2,
		Task:    taskV2,
	}
}

func userV2(u *domain.User) UserDTOV2 {
	return UserDTOV2{ID: u.ID, Name: u.Name, Email: u.Email}
}

func taskV2(t *domain.TaskView) TaskDTOV2 {
	return TaskDTOV2{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Project:     RefDTOV2{ID: t.ProjectID, Name: t.ProjectName},
		User:        RefDTOV2{ID: t.UserID, Name: t.UserName},
	}
}

func projectV2(p *domain.Project) ProjectDTOV2 {
	return ProjectDTOV2{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		MemberCount: len(p.Members),
		Members:     mapSlice(p.Members, userV2),
		Tasks:       mapSlice(projectTaskViews(p), taskV2),
	}
}
