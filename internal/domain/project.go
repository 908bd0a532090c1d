package domain

import "time"

// Project представляет проект с набором участников
type Project struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`

	// Members хранит участников в порядке добавления, без повторов по ID
	Members []*User `json:"members"`
	// Tasks заполняется репозиторием при загрузке проекта, у задач загружен User
	Tasks []*Task `json:"tasks"`
}

// HasMember проверяет, является ли пользователь участником проекта
func (p *Project) HasMember(userID int64) bool {
	return p.memberIndex(userID) >= 0
}

// AddMember добавляет пользователя в конец списка участников.
// Возвращает false, если пользователь уже участник.
func (p *Project) AddMember(user *User) bool {
	if p.HasMember(user.ID) {
		return false
	}
	p.Members = append(p.Members, user)
	return true
}

// RemoveMember удаляет пользователя из участников, сохраняя порядок остальных.
// Возвращает false, если пользователь не был участником.
func (p *Project) RemoveMember(userID int64) bool {
	i := p.memberIndex(userID)
	if i < 0 {
		return false
	}
	p.Members = append(p.Members[:i], p.Members[i+1:]...)
	return true
}

func (p *Project) memberIndex(userID int64) int {
	for i, m := range p.Members {
		if m.ID == userID {
			return i
		}
	}
	return -1
}
