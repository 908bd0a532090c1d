package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/task-management/internal/config"
	"github.com/aidar/task-management/internal/handler"
	"github.com/aidar/task-management/internal/logging"
	"github.com/aidar/task-management/internal/middleware"
	"github.com/aidar/task-management/internal/repository"
	"github.com/aidar/task-management/internal/repository/memory"
	"github.com/aidar/task-management/internal/repository/postgres"
	"github.com/aidar/task-management/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	db     *pgxpool.Pool
	repos  repositories
	server *http.Server
	logger *slog.Logger
}

// repositories объединяет реализации портов выбранного хранилища
type repositories struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	stats    repository.StatsRepository
}

// services объединяет сервисный слой для роутинга
type services struct {
	users    *service.UserService
	projects *service.ProjectService
	tasks    *service.TaskService
	auth     *service.AuthService
	stats    *service.StatsService
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер с маскированием секретов
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	slog.SetDefault(logger)

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	switch a.config.Storage.Driver {
	case config.StorageDriverPostgres:
		if err := a.connectDB(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.repos = repositories{
			users:    postgres.NewUserRepository(a.db),
			projects: postgres.NewProjectRepository(a.db),
			tasks:    postgres.NewTaskRepository(a.db),
			stats:    postgres.NewStatsRepository(a.db),
		}
	case config.StorageDriverMemory:
		store := memory.NewStore()
		a.repos = repositories{
			users:    memory.NewUserRepository(store),
			projects: memory.NewProjectRepository(store),
			tasks:    memory.NewTaskRepository(store),
			stats:    memory.NewStatsRepository(store),
		}
		a.logger.Warn("Using in-memory storage, data is lost on restart")
	default:
		return fmt.Errorf("unknown storage driver %q", a.config.Storage.Driver)
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully", "storage", a.config.Storage.Driver)
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Инициализируем слой сервисов (бизнес-логика)
	svc := services{
		users:    service.NewUserService(a.repos.users, a.repos.projects, a.logger),
		projects: service.NewProjectService(a.repos.projects, a.repos.users, a.logger),
		tasks:    service.NewTaskService(a.repos.tasks, a.repos.users, a.repos.projects, a.logger),
		auth: service.NewAuthService(
			a.repos.users,
			a.config.JWT.Secret,
			a.config.JWT.GetExpiration(),
		),
		stats: service.NewStatsService(a.repos.stats),
	}

	authHandler := handler.NewAuthHandler(svc.auth)
	statsHandler := handler.NewStatsHandler(svc.stats)
	meHandler := handler.NewUserHandler(svc.users, handler.V2().User)

	// Middleware для JWT авторизации
	authMiddleware := middleware.AuthMiddleware(svc.auth)

	limits := handler.PageLimits{
		DefaultSize: a.config.Search.DefaultPageSize,
		MaxSize:     a.config.Search.MaxPageSize,
	}

	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.With(authMiddleware).Get("/me", meHandler.GetCurrentUser)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/stats", statsHandler.GetStats)
		r.Get("/stats/user", statsHandler.GetUserStats)
	})

	// v1 отдаёт плоские DTO, v2 вложенные ссылки и поиск задач
	r.Route("/api", func(r chi.Router) {
		mountVersion(r, handler.V1(), svc, authMiddleware, limits, false)
		r.Route("/v2", func(r chi.Router) {
			mountVersion(r, handler.V2(), svc, authMiddleware, limits, true)
		})
	})

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

// mountVersion регистрирует эндпоинты одной версии API
func mountVersion[U, P, T any](
	r chi.Router,
	rep handler.Representation[U, P, T],
	svc services,
	auth func(http.Handler) http.Handler,
	limits handler.PageLimits,
	withSearch bool,
) {
	users := handler.NewUserHandler(svc.users, rep.User)
	projects := handler.NewProjectHandler(svc.projects, rep.Project)
	tasks := handler.NewTaskHandler(svc.tasks, rep.Task, limits)

	// Регистрация пользователя доступна без токена (иначе не получить первый токен)
	r.Post("/users", users.CreateUser)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/users", users.GetAllUsers)
		r.Get("/users/{userId}", users.GetUserByID)
		r.Get("/users/project/{projectId}", users.GetUsersByProject)

		r.Post("/projects", projects.CreateProject)
		r.Get("/projects", projects.GetAllProjects)
		r.Get("/projects/{projectId}", projects.GetProjectByID)
		r.Post("/projects/{projectId}/users/{userId}", projects.AddUser)
		r.Delete("/projects/{projectId}/users/{userId}", projects.RemoveUser)

		r.Post("/tasks", tasks.CreateTask)
		if withSearch {
			r.Get("/tasks/search", tasks.SearchTasks)
		}
		r.Get("/tasks/user/{userId}", tasks.GetTasksByUser)
		r.Get("/tasks/project/{projectId}", tasks.GetTasksByProject)
		r.Get("/tasks/{taskId}", tasks.GetTaskByID)
		r.Patch("/tasks/{taskId}", tasks.UpdateTaskStatus)
	})
}

// Handler возвращает корневой HTTP обработчик (после Initialize)
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
