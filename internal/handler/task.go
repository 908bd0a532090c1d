package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/task-management/internal/domain"
	"github.com/aidar/task-management/internal/service"
)

// PageLimits задаёт размер страницы поиска по умолчанию и максимальный
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

// TaskHandler обрабатывает эндпоинты задач
type TaskHandler[T any] struct {
	taskService *service.TaskService
	present     func(*domain.TaskView) T
	limits      PageLimits
}

// NewTaskHandler создает новый TaskHandler
func NewTaskHandler[T any](taskService *service.TaskService, present func(*domain.TaskView) T, limits PageLimits) *TaskHandler[T] {
	return &TaskHandler[T]{
		taskService: taskService,
		present:     present,
		limits:      limits,
	}
}

// CreateTask обрабатывает POST /tasks
func (h *TaskHandler[T]) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondBadRequest(w, r, "invalid request body")
		return
	}

	// Валидация запроса
	if strings.TrimSpace(req.Title) == "" {
		RespondBadRequest(w, r, "title is required")
		return
	}
	if req.DueDate.IsZero() {
		RespondBadRequest(w, r, "dueDate is required")
		return
	}
	if req.UserID <= 0 || req.ProjectID <= 0 {
		RespondBadRequest(w, r, "userId and projectId are required")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		UserID:      req.UserID,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, h.present(task))
}

// GetTaskByID обрабатывает GET /tasks/{taskId}
func (h *TaskHandler[T]) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.GetTaskByID(r.Context(), chi.URLParam(r, "taskId"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, h.present(task))
}

// UpdateTaskStatus обрабатывает PATCH /tasks/{taskId}
func (h *TaskHandler[T]) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	status, err := decodeStatus(r)
	if err != nil {
		RespondBadRequest(w, r, "invalid request body")
		return
	}
	if strings.TrimSpace(status) == "" {
		RespondBadRequest(w, r, "status is required")
		return
	}

	if err := h.taskService.UpdateTaskStatus(r.Context(), chi.URLParam(r, "taskId"), status); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetTasksByUser обрабатывает GET /tasks/user/{userId}
func (h *TaskHandler[T]) GetTasksByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userId")
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return
	}

	tasks, err := h.taskService.GetTasksByUserID(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, mapSlice(tasks, h.present))
}

// GetTasksByProject обрабатывает GET /tasks/project/{projectId}
func (h *TaskHandler[T]) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r, "projectId")
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return
	}

	tasks, err := h.taskService.GetTasksByProjectID(r.Context(), projectID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, mapSlice(tasks, h.present))
}

// SearchTasks обрабатывает GET /tasks/search?keyword=&status=&dueDate=&pageNumber=&pageSize=
func (h *TaskHandler[T]) SearchTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	in := service.SearchTasksInput{
		Keyword:    q.Get("keyword"),
		Status:     q.Get("status"),
		PageNumber: 1,
		PageSize:   h.limits.DefaultSize,
	}

	if raw := q.Get("dueDate"); raw != "" {
		due, err := parseDate(raw)
		if err != nil {
			RespondBadRequest(w, r, "dueDate must be RFC3339 or YYYY-MM-DD")
			return
		}
		in.DueBefore = &due
	}

	if raw := q.Get("pageNumber"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			RespondBadRequest(w, r, "pageNumber must be a positive integer")
			return
		}
		in.PageNumber = n
	}

	if raw := q.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			RespondBadRequest(w, r, "pageSize must be a positive integer")
			return
		}
		in.PageSize = n
	}
	if h.limits.MaxSize > 0 && in.PageSize > h.limits.MaxSize {
		in.PageSize = h.limits.MaxSize
	}

	tasks, err := h.taskService.SearchTasks(r.Context(), in)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, mapSlice(tasks, h.present))
}
