package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aidar/task-management/internal/domain"
	"github.com/aidar/task-management/internal/service"
)

// ProjectHandler обрабатывает эндпоинты проектов и их участников
type ProjectHandler[P any] struct {
	projectService *service.ProjectService
	present        func(*domain.Project) P
}

// NewProjectHandler создает новый ProjectHandler
func NewProjectHandler[P any](projectService *service.ProjectService, present func(*domain.Project) P) *ProjectHandler[P] {
	return &ProjectHandler[P]{
		projectService: projectService,
		present:        present,
	}
}

// CreateProject обрабатывает POST /projects
func (h *ProjectHandler[P]) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondBadRequest(w, r, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		RespondBadRequest(w, r, "name is required")
		return
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		RespondBadRequest(w, r, "endDate must not be before startDate")
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, h.present(project))
}

// GetAllProjects обрабатывает GET /projects
func (h *ProjectHandler[P]) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.GetAllProjects(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, mapSlice(projects, h.present))
}

// GetProjectByID обрабатывает GET /projects/{projectId}
func (h *ProjectHandler[P]) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r, "projectId")
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return
	}

	project, err := h.projectService.GetProjectByID(r.Context(), projectID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, h.present(project))
}

// AddUser обрабатывает POST /projects/{projectId}/users/{userId}
func (h *ProjectHandler[P]) AddUser(w http.ResponseWriter, r *http.Request) {
	projectID, userID, ok := membershipParams(w, r)
	if !ok {
		return
	}

	if err := h.projectService.AddUserToProject(r.Context(), projectID, userID); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveUser обрабатывает DELETE /projects/{projectId}/users/{userId}
func (h *ProjectHandler[P]) RemoveUser(w http.ResponseWriter, r *http.Request) {
	projectID, userID, ok := membershipParams(w, r)
	if !ok {
		return
	}

	if err := h.projectService.RemoveUserFromProject(r.Context(), projectID, userID); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func membershipParams(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	projectID, err := idParam(r, "projectId")
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return 0, 0, false
	}
	userID, err := idParam(r, "userId")
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return 0, 0, false
	}
	return projectID, userID, true
}
