package handler

import "github.com/aidar/task-management/internal/domain"

// Representation задаёт, как версия API отображает доменные сущности.
// Обработчики одни для всех версий, различаются только эти функции.
type Representation[U, P, T any] struct {
	User    func(*domain.User) U
	Project func(*domain.Project) P
	Task    func(*domain.TaskView) T
}

func mapSlice[S, D any](items []S, fn func(S) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// projectTaskViews строит представления задач проекта.
// Имя исполнителя берётся из задачи: он мог уже выйти из участников.
func projectTaskViews(p *domain.Project) []*domain.TaskView {
	views := make([]*domain.TaskView, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		v := domain.NewTaskView(t)
		v.ProjectName = p.Name
		views = append(views, v)
	}
	return views
}
