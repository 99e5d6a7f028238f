package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/task"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"
	rep "github.com/GhofranWarrakia/Task-Management-API/internal/repository"
	"github.com/GhofranWarrakia/Task-Management-API/internal/service"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// стартовый набор: три пользователя по ролям и три задачи

func Run(ctx context.Context, users service.UserRepository, tasks service.TaskRepository) error {
	if _, err := users.GetByEmail(ctx, "admin@example.com"); err == nil {
		logger.Info("Seed: данные уже есть, пропускаем")
		return nil
	} else if !errors.Is(err, rep.ErrNotFound) {
		return fmt.Errorf("проверка seed-данных: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("хеширование пароля: %w", err)
	}

	seedUsers := []*user.User{
		{ID: uuid.New(), Name: "Admin User", Email: "admin@example.com", PasswordHash: string(hash), Role: user.RoleAdmin},
		{ID: uuid.New(), Name: "Manager User", Email: "manager@example.com", PasswordHash: string(hash), Role: user.RoleManager},
		{ID: uuid.New(), Name: "Regular User", Email: "user@example.com", PasswordHash: string(hash), Role: user.RoleUser},
	}
	for _, u := range seedUsers {
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("создание пользователя %s: %w", u.Email, err)
		}
	}

	in7 := time.Now().AddDate(0, 0, 7)
	in14 := time.Now().AddDate(0, 0, 14)
	ago2 := time.Now().AddDate(0, 0, -2)

	seedTasks := []*task.Task{
		{ID: uuid.New(), Title: "Task 1", Description: "Description for task 1", Priority: task.PriorityHigh, Status: task.StatusPending, DueDate: &in7, AssignedTo: &seedUsers[0].ID},
		{ID: uuid.New(), Title: "Task 2", Description: "Description for task 2", Priority: task.PriorityMedium, Status: task.StatusInProgress, DueDate: &in14, AssignedTo: &seedUsers[1].ID},
		{ID: uuid.New(), Title: "Task 3", Description: "Description for task 3", Priority: task.PriorityLow, Status: task.StatusCompleted, DueDate: &ago2, AssignedTo: &seedUsers[2].ID},
	}
	for _, t := range seedTasks {
		if err := tasks.Create(ctx, t); err != nil {
			return fmt.Errorf("создание задачи %s: %w", t.Title, err)
		}
	}

	logger.Info("Seed: стартовые данные загружены")
	return nil
}
