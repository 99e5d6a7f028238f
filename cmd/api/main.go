package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GhofranWarrakia/Task-Management-API/internal/config"
	"github.com/GhofranWarrakia/Task-Management-API/internal/handlers"
	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/middleware"
	"github.com/GhofranWarrakia/Task-Management-API/internal/repository/postgres"
	taskinmemory "github.com/GhofranWarrakia/Task-Management-API/internal/repository/task/inmemory"
	taskpostgres "github.com/GhofranWarrakia/Task-Management-API/internal/repository/task/postgres"
	userinmemory "github.com/GhofranWarrakia/Task-Management-API/internal/repository/user/inmemory"
	userpostgres "github.com/GhofranWarrakia/Task-Management-API/internal/repository/user/postgres"
	"github.com/GhofranWarrakia/Task-Management-API/internal/seed"
	"github.com/GhofranWarrakia/Task-Management-API/internal/service"
	"github.com/GhofranWarrakia/Task-Management-API/internal/token"
	"github.com/GhofranWarrakia/Task-Management-API/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type healthFunc func(ctx context.Context) error

func (f healthFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func main() {
	cfg, err := config.Load("config.yml")
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Logging.Development); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var userRepo service.UserRepository
	var taskRepo service.TaskRepository
	var health handlers.HealthChecker

	switch cfg.Repository.Type {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Error("Не удалось подключиться к PostgreSQL", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool, "internal/migrations"); err != nil {
			logger.Error("Не удалось применить миграции", err)
			os.Exit(1)
		}

		userRepo = userpostgres.New(pool)
		taskRepo = taskpostgres.New(pool)
		health = healthFunc(func(ctx context.Context) error {
			return postgres.HealthCheck(ctx, pool)
		})
	default:
		userRepo = userinmemory.NewUserStorage()
		taskRepo = taskinmemory.NewTaskStorage()
		health = healthFunc(func(ctx context.Context) error { return nil })
	}

	if cfg.Seed.Enabled {
		if err := seed.Run(ctx, userRepo, taskRepo); err != nil {
			logger.Error("Не удалось загрузить seed-данные", err)
			os.Exit(1)
		}
	}

	tokens := token.New(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(health)

	janitor := worker.NewRevocationJanitor(tokens, nil)
	go janitor.Start(ctx)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	}))
	r.Use(middleware.RateLimit(100))

	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Get("/health", healthHandler.HealthCheck)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, userRepo))

		r.Post("/logout", authHandler.Logout)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)    // GET /tasks
			r.Post("/", taskHandler.Create) // POST /tasks

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.Get)          // GET /tasks/{id}
				r.Put("/", taskHandler.Update)       // PUT /tasks/{id}
				r.Delete("/", taskHandler.Delete)    // DELETE /tasks/{id}
				r.Post("/assign", taskHandler.Assign) // POST /tasks/{id}/assign
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)    // GET /users
			r.Post("/", userHandler.Create) // POST /users

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.Get)            // GET /users/{id}
				r.Put("/", userHandler.Update)         // PUT /users/{id}
				r.Delete("/", userHandler.Delete)      // DELETE /users/{id}
				r.Post("/restore", userHandler.Restore) // POST /users/{id}/restore
			})
		})
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("Сервер запущен", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Ошибка сервера", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Завершение работы...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", err)
	}
}
