package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aidar/task-management/internal/domain"
	"github.com/aidar/task-management/internal/middleware"
	"github.com/aidar/task-management/internal/service"
)

// UserHandler обрабатывает эндпоинты пользователей
type UserHandler[U any] struct {
	userService *service.UserService
	present     func(*domain.User) U
}

// NewUserHandler создает новый UserHandler
func NewUserHandler[U any](userService *service.UserService, present func(*domain.User) U) *UserHandler[U] {
	return &UserHandler[U]{
		userService: userService,
		present:     present,
	}
}

// CreateUser обрабатывает POST /users
func (h *UserHandler[U]) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondBadRequest(w, r, "invalid request body")
		return
	}

	// Валидация запроса
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		RespondBadRequest(w, r, "name and email are required")
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, h.present(user))
}

// GetAllUsers обрабатывает GET /users
func (h *UserHandler[U]) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, mapSlice(users, h.present))
}

// GetUserByID обрабатывает GET /users/{userId}
func (h *UserHandler[U]) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userId")
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, h.present(user))
}

// GetUsersByProject обрабатывает GET /users/project/{projectId}
func (h *UserHandler[U]) GetUsersByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r, "projectId")
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return
	}

	users, err := h.userService.GetUsersByProjectID(r.Context(), projectID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, mapSlice(users, h.present))
}

// GetCurrentUser обрабатывает GET /auth/me
func (h *UserHandler[U]) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, string(domain.CodeUnauthorized), "unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, h.present(user))
}
