package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/task-management/internal/logging"
	"github.com/aidar/task-management/internal/repository/memory"
	"github.com/aidar/task-management/internal/service"
)

// newRouter собирает обработчики одной версии API поверх хранилища в памяти
func newRouter[U, P, T any](rep Representation[U, P, T]) http.Handler {
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	projectRepo := memory.NewProjectRepository(store)
	taskRepo := memory.NewTaskRepository(store)
	logger := logging.Discard()

	users := NewUserHandler(service.NewUserService(userRepo, projectRepo, logger), rep.User)
	projects := NewProjectHandler(service.NewProjectService(projectRepo, userRepo, logger), rep.Project)
	tasks := NewTaskHandler(service.NewTaskService(taskRepo, userRepo, projectRepo, logger), rep.Task,
		PageLimits{DefaultSize: 2, MaxSize: 3})

	r := chi.NewRouter()
	r.Post("/users", users.CreateUser)
	r.Get("/users", users.GetAllUsers)
	r.Get("/users/{userId}", users.GetUserByID)
	r.Get("/users/project/{projectId}", users.GetUsersByProject)
	r.Post("/projects", projects.CreateProject)
	r.Get("/projects/{projectId}", projects.GetProjectByID)
	r.Post("/projects/{projectId}/users/{userId}", projects.AddUser)
	r.Delete("/projects/{projectId}/users/{userId}", projects.RemoveUser)
	r.Post("/tasks", tasks.CreateTask)
	r.Get("/tasks/search", tasks.SearchTasks)
	r.Get("/tasks/user/{userId}", tasks.GetTasksByUser)
	r.Get("/tasks/project/{projectId}", tasks.GetTasksByProject)
	r.Get("/tasks/{taskId}", tasks.GetTaskByID)
	r.Patch("/tasks/{taskId}", tasks.UpdateTaskStatus)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[V any](t *testing.T, rec *httptest.ResponseRecorder) V {
	t.Helper()
	var v V
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

// seed создаёт пользователя и проект, где он участник
func seed(t *testing.T, h http.Handler) {
	t.Helper()
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/users", `{"name":"Grace","email":"grace@example.com"}`).Code)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/projects", `{"name":"Apollo","startDate":"2024-01-01T00:00:00Z"}`).Code)
	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, "/projects/1/users/1", "").Code)
}

func TestUserHandler(t *testing.T) {
	h := newRouter(V1())

	rec := do(t, h, http.MethodPost, "/users", `{"name":"Grace","email":"grace@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decode[UserDTOV1](t, rec)
	assert.Equal(t, int64(1), user.ID)

	rec = do(t, h, http.MethodPost, "/users", `{"name":"","email":"x@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/users", `{bad json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/users/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	errResp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "NOT_FOUND", errResp.Error.Code)
	assert.Equal(t, "User not found", errResp.Error.Message)

	rec = do(t, h, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]UserDTOV1](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/users/project/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectHandler_Membership(t *testing.T) {
	h := newRouter(V2())
	seed(t, h)

	rec := do(t, h, http.MethodPost, "/projects/1/users/1", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	errResp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "CONFLICT", errResp.Error.Code)
	assert.Equal(t, "User is already part of the project", errResp.Error.Message)

	rec = do(t, h, http.MethodPost, "/projects/1/users/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/projects/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	project := decode[ProjectDTOV2](t, rec)
	assert.Equal(t, 1, project.MemberCount)
	assert.Equal(t, "Grace", project.Members[0].Name)
	assert.NotNil(t, project.StartDate)
	assert.Empty(t, project.Tasks)

	rec = do(t, h, http.MethodDelete, "/projects/1/users/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodDelete, "/projects/1/users/1", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User is not part of the project", decode[ErrorResponse](t, rec).Error.Message)
}

func TestProjectHandler_CreateValidation(t *testing.T) {
	h := newRouter(V1())

	rec := do(t, h, http.MethodPost, "/projects", `{"description":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/projects",
		`{"name":"X","startDate":"2024-02-01T00:00:00Z","endDate":"2024-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/projects", `{"name":"X"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	project := decode[ProjectDTOV1](t, rec)
	assert.NotNil(t, project.Users)
	assert.Empty(t, project.Users)
}

func TestTaskHandler_CreateAndRead(t *testing.T) {
	h := newRouter(V1())
	seed(t, h)

	rec := do(t, h, http.MethodPost, "/tasks",
		`{"title":"Fix bug","description":"d","dueDate":"2024-06-01T00:00:00Z","userId":1,"projectId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	task := decode[TaskDTOV1](t, rec)
	assert.Equal(t, "Pending", task.Status)
	assert.Equal(t, "Grace", task.UserName)
	assert.Equal(t, "Apollo", task.ProjectName)

	rec = do(t, h, http.MethodGet, "/tasks/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decode[TaskDTOV1](t, rec).ProjectID)

	rec = do(t, h, http.MethodGet, "/tasks/abc", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", decode[ErrorResponse](t, rec).Error.Message)

	rec = do(t, h, http.MethodGet, "/tasks/user/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]TaskDTOV1](t, rec), 1)

	// Пустой список это 200 и []
	rec = do(t, h, http.MethodGet, "/tasks/project/99", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestTaskHandler_CreateRejects(t *testing.T) {
	h := newRouter(V1())
	seed(t, h)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/users", `{"name":"Eve","email":"eve@example.com"}`).Code)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"missing title", `{"dueDate":"2024-06-01T00:00:00Z","userId":1,"projectId":1}`, http.StatusBadRequest, ""},
		{"missing due date", `{"title":"T","userId":1,"projectId":1}`, http.StatusBadRequest, ""},
		{"missing ids", `{"title":"T","dueDate":"2024-06-01T00:00:00Z"}`, http.StatusBadRequest, ""},
		{"unknown user", `{"title":"T","dueDate":"2024-06-01T00:00:00Z","userId":9,"projectId":1}`, http.StatusNotFound, "User not found"},
		{"unknown project", `{"title":"T","dueDate":"2024-06-01T00:00:00Z","userId":1,"projectId":9}`, http.StatusNotFound, "Project not found"},
		{"not a member", `{"title":"T","dueDate":"2024-06-01T00:00:00Z","userId":2,"projectId":1}`, http.StatusConflict, "User is not part of the project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/tasks", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decode[ErrorResponse](t, rec).Error.Message)
			}
		})
	}
}

func TestTaskHandler_UpdateStatus(t *testing.T) {
	h := newRouter(V2())
	seed(t, h)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/tasks",
		`{"title":"T","dueDate":"2024-06-01T00:00:00Z","userId":1,"projectId":1}`).Code)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodPatch, "/tasks/1", `"Completed"`).Code)
	rec := do(t, h, http.MethodGet, "/tasks/1", "")
	task := decode[TaskDTOV2](t, rec)
	assert.Equal(t, "Completed", task.Status)
	assert.Equal(t, "Apollo", task.Project.Name)
	assert.NotNil(t, task.UpdatedAt)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodPatch, "/tasks/1", `{"status":"In Review"}`).Code)
	rec = do(t, h, http.MethodGet, "/tasks/1", "")
	assert.Equal(t, "In Review", decode[TaskDTOV2](t, rec).Status)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPatch, "/tasks/1", `""`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPatch, "/tasks/1", `{`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPatch, "/tasks/404", `"Completed"`).Code)
}

func TestTaskHandler_Search(t *testing.T) {
	h := newRouter(V2())
	seed(t, h)
	for _, title := range []string{"alpha", "beta", "gamma", "delta"} {
		body := `{"title":"` + title + `","dueDate":"2024-06-01T00:00:00Z","userId":1,"projectId":1}`
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/tasks", body).Code)
	}

	titles := func(rec *httptest.ResponseRecorder) []string {
		t.Helper()
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var out []string
		for _, task := range decode[[]TaskDTOV2](t, rec) {
			out = append(out, task.Title)
		}
		return out
	}

	// размер страницы по умолчанию 2
	assert.Equal(t, []string{"alpha", "beta"}, titles(do(t, h, http.MethodGet, "/tasks/search", "")))
	assert.Equal(t, []string{"gamma", "delta"}, titles(do(t, h, http.MethodGet, "/tasks/search?pageNumber=2", "")))
	// размер страницы ограничен сверху
	assert.Len(t, titles(do(t, h, http.MethodGet, "/tasks/search?pageSize=50", "")), 3)
	assert.Equal(t, []string{"delta"}, titles(do(t, h, http.MethodGet, "/tasks/search?keyword=lta", "")))
	assert.Len(t, titles(do(t, h, http.MethodGet, "/tasks/search?status=Pending&dueDate=2024-06-01&pageSize=3", "")), 3)
	assert.Empty(t, titles(do(t, h, http.MethodGet, "/tasks/search?dueDate=2024-05-31", "")))
	assert.Empty(t, titles(do(t, h, http.MethodGet, "/tasks/search?pageNumber=9223372036854775807&pageSize=3", "")))

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/tasks/search?pageNumber=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/tasks/search?pageSize=-1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/tasks/search?dueDate=yesterday", "").Code)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())

	_, err = parseDate("2024-06-01T10:00:00+03:00")
	require.NoError(t, err)

	_, err = parseDate("06/01/2024")
	assert.Error(t, err)
}

func TestStatsHandler_GetUserStats(t *testing.T) {
	store := memory.NewStore()
	users := NewUserHandler(service.NewUserService(memory.NewUserRepository(store), memory.NewProjectRepository(store), logging.Discard()), V1().User)
	stats := NewStatsHandler(service.NewStatsService(memory.NewStatsRepository(store)))

	r := chi.NewRouter()
	r.Post("/users", users.CreateUser)
	r.Get("/stats/user", stats.GetUserStats)

	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/users", `{"name":"Grace","email":"grace@example.com"}`).Code)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantMsg    string
	}{
		{"missing", "", http.StatusBadRequest, "user_id must be an integer"},
		{"not an integer", "?user_id=abc", http.StatusBadRequest, "user_id must be an integer"},
		{"unknown user", "?user_id=42", http.StatusNotFound, "User not found"},
		{"known user", "?user_id=1", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodGet, "/stats/user"+tt.query, "")
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decode[ErrorResponse](t, rec).Error.Message)
			}
		})
	}
}

func TestProjectHandler_TasksOfFormerMemberKeepAssigneeName(t *testing.T) {
	h := newRouter(V1())
	seed(t, h)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/tasks",
		`{"title":"T","dueDate":"2024-06-01T00:00:00Z","userId":1,"projectId":1}`).Code)
	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/projects/1/users/1", "").Code)

	rec := do(t, h, http.MethodGet, "/projects/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	project := decode[ProjectDTOV1](t, rec)
	assert.Empty(t, project.Users)
	require.Len(t, project.Tasks, 1)
	assert.Equal(t, "Grace", project.Tasks[0].UserName)
	assert.Equal(t, "Apollo", project.Tasks[0].ProjectName)
}
