package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/GhofranWarrakia/Task-Management-API/internal/authz"
	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"
	rep "github.com/GhofranWarrakia/Task-Management-API/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

// UserUpdate - разрешённый список полей для PUT /users/{id},
// пароль приходит сырым и хешируется здесь
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *user.Role
}

// список включает мягко удалённых
func (s *UserService) List(ctx context.Context, actor *user.User) ([]*user.User, error) {
	if !authz.Allowed(actor, authz.ActionUserList, nil) {
		return nil, NewForbidden()
	}
	users, err := s.users.GetAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, actor *user.User, id uuid.UUID) (*user.User, error) {
	// владелец ресурса известен до похода в хранилище - это сам id
	if !authz.Allowed(actor, authz.ActionUserView, &id) {
		return nil, NewForbidden()
	}

	u, err := s.users.GetByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("User")
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, actor *user.User, name, email, password string, role user.Role) (*user.User, error) {
	if !authz.Allowed(actor, authz.ActionUserCreate, nil) {
		return nil, NewForbidden()
	}
	if !role.Valid() {
		return nil, NewValidationError("The selected role is invalid.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("хеширование пароля: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, rep.ErrDuplicateEmail) {
			return nil, NewDuplicateEmail()
		}
		return nil, fmt.Errorf("создание пользователя: %w", err)
	}

	logger.Info("Service: Пользователь создан",
		zap.String("user_id", u.ID.String()),
		zap.String("actor_id", actor.ID.String()))
	return u, nil
}

func (s *UserService) Update(ctx context.Context, actor *user.User, id uuid.UUID, upd UserUpdate) (*user.User, error) {
	if !authz.Allowed(actor, authz.ActionUserUpdate, &id) {
		return nil, NewForbidden()
	}

	u, err := s.users.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("User")
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	if upd.Role != nil && !upd.Role.Valid() {
		return nil, NewValidationError("The selected role is invalid.")
	}

	fields := user.Update{
		Name:  upd.Name,
		Email: upd.Email,
		Role:  upd.Role,
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("хеширование пароля: %w", err)
		}
		hashed := string(hash)
		fields.PasswordHash = &hashed
	}
	u.Apply(fields)

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, rep.ErrDuplicateEmail) {
			return nil, NewDuplicateEmail()
		}
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("User")
		}
		return nil, fmt.Errorf("обновление пользователя: %w", err)
	}

	logger.Info("Service: Пользователь обновлён", zap.String("user_id", u.ID.String()))
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, actor *user.User, id uuid.UUID) error {
	if !authz.Allowed(actor, authz.ActionUserDelete, &id) {
		return NewForbidden()
	}

	if err := s.users.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound("User")
		}
		return fmt.Errorf("удаление пользователя: %w", err)
	}

	logger.Info("Service: Пользователь мягко удалён", zap.String("user_id", id.String()))
	return nil
}

func (s *UserService) Restore(ctx context.Context, actor *user.User, id uuid.UUID) (*user.User, error) {
	if !authz.Allowed(actor, authz.ActionUserRestore, &id) {
		return nil, NewForbidden()
	}

	u, err := s.users.GetByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("User")
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	if !u.IsDeleted() {
		return nil, NewNotDeleted("User")
	}

	if err := s.users.Restore(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("User")
		}
		return nil, fmt.Errorf("восстановление пользователя: %w", err)
	}

	restored, err := s.users.GetByID(ctx, id, false)
	if err != nil {
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	logger.Info("Service: Пользователь восстановлен", zap.String("user_id", id.String()))
	return restored, nil
}
