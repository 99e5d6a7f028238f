package handlers

import (
	"context"

	"github.com/GhofranWarrakia/Task-Management-API/internal/models/task"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"
	"github.com/GhofranWarrakia/Task-Management-API/internal/service"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string, role user.Role) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, tokenStr string) error
}

type TaskService interface {
	List(ctx context.Context, actor *user.User, filter task.Filter) ([]*task.Task, error)
	Get(ctx context.Context, actor *user.User, id uuid.UUID) (*task.Task, error)
	Create(ctx context.Context, actor *user.User, fields task.Fields) (*task.Task, error)
	Update(ctx context.Context, actor *user.User, id uuid.UUID, fields task.Fields) (*task.Task, error)
	Delete(ctx context.Context, actor *user.User, id uuid.UUID) error
	Assign(ctx context.Context, actor *user.User, id uuid.UUID, userID uuid.UUID) (*task.Task, error)
}

type UserService interface {
	List(ctx context.Context, actor *user.User) ([]*user.User, error)
	Get(ctx context.Context, actor *user.User, id uuid.UUID) (*user.User, error)
	Create(ctx context.Context, actor *user.User, name, email, password string, role user.Role) (*user.User, error)
	Update(ctx context.Context, actor *user.User, id uuid.UUID, upd service.UserUpdate) (*user.User, error)
	Delete(ctx context.Context, actor *user.User, id uuid.UUID) error
	Restore(ctx context.Context, actor *user.User, id uuid.UUID) (*user.User, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
