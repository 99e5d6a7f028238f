package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/GhofranWarrakia/Task-Management-API/internal/models/task"
	repo "github.com/GhofranWarrakia/Task-Management-API/internal/repository"

	"github.com/google/uuid"
)

type TaskStorage struct {
	storage map[uuid.UUID]*task.Task
	mtx     *sync.RWMutex
	ids     []uuid.UUID // порядок вставки, чтобы список был детерминированным
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func clone(t *task.Task) *task.Task {
	copied := *t
	return &copied
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToCreate.CreatedAt = time.Now()
	s.storage[taskToCreate.ID] = clone(taskToCreate)
	s.ids = append(s.ids, taskToCreate.ID)
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok || taskToGet.IsDeleted() {
		return nil, repo.ErrNotFound
	}
	return clone(taskToGet), nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[taskToUpdate.ID]
	if !ok || existing.IsDeleted() {
		return repo.ErrNotFound
	}

	now := time.Now()
	taskToUpdate.CreatedAt = existing.CreatedAt
	taskToUpdate.UpdatedAt = &now
	s.storage[taskToUpdate.ID] = clone(taskToUpdate)
	return nil
}

func (s *TaskStorage) SoftDelete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[id]
	if !ok || existing.IsDeleted() {
		return repo.ErrNotFound
	}

	now := time.Now()
	existing.UpdatedAt = &now
	existing.DeletedAt = &now
	return nil
}

func (s *TaskStorage) GetFiltered(ctx context.Context, filter task.Filter) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, id := range s.ids {
		t := s.storage[id]
		if t.IsDeleted() {
			continue
		}
		if !filter.Matches(t) {
			continue
		}
		res = append(res, clone(t))
	}
	return res, nil
}
