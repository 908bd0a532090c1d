package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// CreateUserRequest представляет тело запроса на создание пользователя
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateProjectRequest представляет тело запроса на создание проекта
type CreateProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// CreateTaskRequest представляет тело запроса на создание задачи
type CreateTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	UserID      int64     `json:"userId"`
	ProjectID   int64     `json:"projectId"`
}

// UpdateStatusRequest представляет тело запроса на смену статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// decodeStatus принимает и JSON-строку ("Completed"), и объект {"status": "Completed"}
func decodeStatus(r *http.Request) (string, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return "", err
	}

	var status string
	if err := json.Unmarshal(raw, &status); err == nil {
		return status, nil
	}

	var req UpdateStatusRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return "", err
	}
	return req.Status, nil
}

// idParam читает числовой параметр пути
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return id, nil
}

// parseDate принимает RFC3339 или дату в формате 2006-01-02
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, value)
}
