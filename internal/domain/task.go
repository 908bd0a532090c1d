package domain

import (
	"strconv"
	"strings"
	"time"
)

// Известные статусы задачи. Список не закрытый: статус это произвольная строка.
const (
	TaskStatusPending   = "Pending"
	TaskStatusCompleted = "Completed"
)

// Task представляет задачу, назначенную участнику проекта
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"due_date"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	UserID      int64      `json:"user_id"`
	ProjectID   int64      `json:"project_id"`

	// User и Project заполняются репозиторием при загрузке задачи
	User    *User    `json:"-"`
	Project *Project `json:"-"`
}

// TaskView это задача вместе с именами исполнителя и проекта
type TaskView struct {
	ID          int64
	Title       string
	Description string
	DueDate     time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	UserID      int64
	UserName    string
	ProjectID   int64
	ProjectName string
}

// NewTaskView собирает представление задачи из загруженных связей
func NewTaskView(t *Task) *TaskView {
	v := &TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		UserID:      t.UserID,
		ProjectID:   t.ProjectID,
	}
	if t.User != nil {
		v.UserName = t.User.Name
	}
	if t.Project != nil {
		v.ProjectName = t.Project.Name
	}
	return v
}

// TaskKey возвращает строковый идентификатор задачи, по которому её ищет репозиторий
func TaskKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// TaskFilter описывает условия поиска задач. Пустые поля не применяются.
type TaskFilter struct {
	Keyword   string     // подстрока в title или description
	Status    string     // точное совпадение статуса
	DueBefore *time.Time // due_date <= DueBefore
}

// Match проверяет задачу на соответствие всем заданным условиям
func (f TaskFilter) Match(t *Task) bool {
	if f.Keyword != "" && !strings.Contains(t.Title, f.Keyword) && !strings.Contains(t.Description, f.Keyword) {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.DueBefore != nil && t.DueDate.After(*f.DueBefore) {
		return false
	}
	return true
}
