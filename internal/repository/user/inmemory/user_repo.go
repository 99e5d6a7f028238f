package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"
	repo "github.com/GhofranWarrakia/Task-Management-API/internal/repository"

	"github.com/google/uuid"
)

type UserStorage struct {
	storage map[uuid.UUID]*user.User
	mtx     *sync.RWMutex
	ids     []uuid.UUID
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		storage: make(map[uuid.UUID]*user.User),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

func (s *UserStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func clone(u *user.User) *user.User {
	copied := *u
	return &copied
}

// email занят навсегда, мягкое удаление его не освобождает
func (s *UserStorage) emailTaken(email string, except uuid.UUID) bool {
	for _, existing := range s.storage {
		if existing.Email == email && existing.ID != except {
			return true
		}
	}
	return false
}

func (s *UserStorage) Create(ctx context.Context, userToCreate *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.emailTaken(userToCreate.Email, userToCreate.ID) {
		return repo.ErrDuplicateEmail
	}

	userToCreate.CreatedAt = time.Now()
	s.storage[userToCreate.ID] = clone(userToCreate)
	s.ids = append(s.ids, userToCreate.ID)
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	userToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if !includeDeleted && userToGet.IsDeleted() {
		return nil, repo.ErrNotFound
	}
	return clone(userToGet), nil
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, id := range s.ids {
		u := s.storage[id]
		if u.Email == email && !u.IsDeleted() {
			return clone(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *UserStorage) Update(ctx context.Context, userToUpdate *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[userToUpdate.ID]
	if !ok {
		return repo.ErrNotFound
	}
	if s.emailTaken(userToUpdate.Email, userToUpdate.ID) {
		return repo.ErrDuplicateEmail
	}

	now := time.Now()
	userToUpdate.CreatedAt = existing.CreatedAt
	userToUpdate.UpdatedAt = &now
	s.storage[userToUpdate.ID] = clone(userToUpdate)
	return nil
}

func (s *UserStorage) SoftDelete(ctx context.Context, id uuid.UUID) error {
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

func (s *UserStorage) Restore(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[id]
	if !ok || !existing.IsDeleted() {
		return repo.ErrNotFound
	}

	now := time.Now()
	existing.UpdatedAt = &now
	existing.DeletedAt = nil
	return nil
}

func (s *UserStorage) GetAll(ctx context.Context, includeDeleted bool) ([]*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*user.User{}
	for _, id := range s.ids {
		u := s.storage[id]
		if !includeDeleted && u.IsDeleted() {
			continue
		}
		res = append(res, clone(u))
	}
	return res, nil
}
