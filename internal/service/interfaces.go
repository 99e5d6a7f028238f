package service

import (
	"context"

	"github.com/GhofranWarrakia/Task-Management-API/internal/models/task"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context, includeDeleted bool) ([]*user.User, error)
}

type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error)
	Update(ctx context.Context, t *task.Task) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	GetFiltered(ctx context.Context, filter task.Filter) ([]*task.Task, error)
}

type TokenIssuer interface {
	Issue(userID uuid.UUID, role user.Role) (string, error)
	Invalidate(tokenStr string) error
}
