package domain

// UserStats представляет статистику задач пользователя
type UserStats struct {
	UserID         int64  `json:"user_id"`
	Name           string `json:"name"`
	Projects       int    `json:"projects"`
	AssignedTasks  int    `json:"assigned_tasks"`
	PendingTasks   int    `json:"pending_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
}

// TaskStats представляет общую статистику задач
type TaskStats struct {
	TotalTasks     int            `json:"total_tasks"`
	PendingTasks   int            `json:"pending_tasks"`
	CompletedTasks int            `json:"completed_tasks"`
	ByStatus       map[string]int `json:"by_status"`
	TotalProjects  int            `json:"total_projects"`
	TotalUsers     int            `json:"total_users"`
}

// Stats объединяет общую и пользовательскую статистику
type Stats struct {
	UserStats []UserStats `json:"user_stats"`
	TaskStats TaskStats   `json:"task_stats"`
}
