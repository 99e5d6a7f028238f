package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/GhofranWarrakia/Task-Management-API/internal/authz"
	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/task"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"
	rep "github.com/GhofranWarrakia/Task-Management-API/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskService struct {
	tasks TaskRepository
	users UserRepository
}

func NewTaskService(tasks TaskRepository, users UserRepository) *TaskService {
	return &TaskService{
		tasks: tasks,
		users: users,
	}
}

// значения вне перечислений не доходят до хранилища
func validateFields(fields task.Fields) *BusinessError {
	if fields.Title == "" {
		return NewValidationError("The title field is required.")
	}
	if !fields.Priority.Valid() {
		return NewValidationError("The selected priority is invalid.")
	}
	if !fields.Status.Valid() {
		return NewValidationError("The selected status is invalid.")
	}
	return nil
}

// assigned_to должен указывать на существующего пользователя;
// мягко удалённый тоже считается существующим
func (s *TaskService) assigneeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.users.GetByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("проверка пользователя: %w", err)
	}
	return true, nil
}

func (s *TaskService) List(ctx context.Context, actor *user.User, filter task.Filter) ([]*task.Task, error) {
	if !authz.Allowed(actor, authz.ActionTaskList, nil) {
		return nil, NewForbidden()
	}
	tasks, err := s.tasks.GetFiltered(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, actor *user.User, id uuid.UUID) (*task.Task, error) {
	if !authz.Allowed(actor, authz.ActionTaskView, nil) {
		return nil, NewForbidden()
	}

	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("task_id", id.String()))
			return nil, NewNotFound("Task")
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

func (s *TaskService) Create(ctx context.Context, actor *user.User, fields task.Fields) (*task.Task, error) {
	if !authz.Allowed(actor, authz.ActionTaskCreate, nil) {
		return nil, NewForbidden()
	}
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	if fields.AssignedTo != nil {
		exists, err := s.assigneeExists(ctx, *fields.AssignedTo)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, NewValidationError("The selected assigned_to is invalid.")
		}
	}

	t := &task.Task{
		ID:          uuid.New(),
		Title:       fields.Title,
		Description: fields.Description,
		Priority:    fields.Priority,
		Status:      fields.Status,
		DueDate:     fields.DueDate,
		AssignedTo:  fields.AssignedTo,
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана",
		zap.String("task_id", t.ID.String()),
		zap.String("actor_id", actor.ID.String()))
	return t, nil
}

// семантика полной замены: валидируется тот же набор полей, что у create
func (s *TaskService) Update(ctx context.Context, actor *user.User, id uuid.UUID, fields task.Fields) (*task.Task, error) {
	// роль без единого правила на update отсекается до похода в хранилище
	if authz.ScopeFor(actor, authz.ActionTaskUpdate) == authz.ScopeNone {
		return nil, NewForbidden()
	}

	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("task_id", id.String()))
			return nil, NewNotFound("Task")
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	if !authz.Allowed(actor, authz.ActionTaskUpdate, t.AssignedTo) {
		return nil, NewForbidden()
	}

	if err := validateFields(fields); err != nil {
		return nil, err
	}
	if fields.AssignedTo != nil {
		exists, err := s.assigneeExists(ctx, *fields.AssignedTo)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, NewValidationError("The selected assigned_to is invalid.")
		}
	}

	t.Title = fields.Title
	t.Description = fields.Description
	t.Priority = fields.Priority
	t.Status = fields.Status
	t.DueDate = fields.DueDate
	t.AssignedTo = fields.AssignedTo

	if err := s.tasks.Update(ctx, t); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("Task")
		}
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	logger.Info("Service: Задача обновлена", zap.String("task_id", t.ID.String()))
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, actor *user.User, id uuid.UUID) error {
	// запрет не зависит от существования задачи
	if !authz.Allowed(actor, authz.ActionTaskDelete, nil) {
		return NewForbidden()
	}

	if err := s.tasks.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound("Task")
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}

	logger.Info("Service: Задача мягко удалена", zap.String("task_id", id.String()))
	return nil
}

func (s *TaskService) Assign(ctx context.Context, actor *user.User, id uuid.UUID, userID uuid.UUID) (*task.Task, error) {
	if !authz.Allowed(actor, authz.ActionTaskAssign, nil) {
		return nil, NewForbidden()
	}

	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("task_id", id.String()))
			return nil, NewNotFound("Task")
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	exists, err := s.assigneeExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, NewValidationError("The selected assigned_to is invalid.")
	}

	t.AssignedTo = &userID
	if err := s.tasks.Update(ctx, t); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("Task")
		}
		return nil, fmt.Errorf("назначение задачи: %w", err)
	}

	logger.Info("Service: Задача назначена",
		zap.String("task_id", t.ID.String()),
		zap.String("assigned_to", userID.String()))
	return t, nil
}
