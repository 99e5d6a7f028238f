package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"
	repo "github.com/GhofranWarrakia/Task-Management-API/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Storage struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Storage) Create(ctx context.Context, userToCreate *user.User) error {
	start := time.Now()

	query := `INSERT INTO users
				(id, name, email, password_hash, role, created_at)
				VALUES ($1, $2, $3, $4, $5, NOW())
				RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		userToCreate.ID,
		userToCreate.Name,
		userToCreate.Email,
		userToCreate.PasswordHash,
		userToCreate.Role,
	).Scan(&userToCreate.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			logger.Warn("Repository: Email уже занят", zap.String("email", userToCreate.Email))
			return repo.ErrDuplicateEmail
		}
		logger.Error("Repository: Не удалось добавить пользователя", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление пользователя: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*user.User, error) {
	start := time.Now()

	query := `SELECT
				id,
				name,
				email,
				password_hash,
				role,
				created_at,
				updated_at,
				deleted_at
				FROM users
				WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	u := &user.User{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return u, nil
}

// поиск по email для логина, мягко удалённые не подходят
func (s *Storage) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	start := time.Now()

	query := `SELECT
				id,
				name,
				email,
				password_hash,
				role,
				created_at,
				updated_at,
				deleted_at
				FROM users
				WHERE email = $1 AND deleted_at IS NULL`

	u := &user.User{}
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя по email", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение пользователя по email: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return u, nil
}

func (s *Storage) Update(ctx context.Context, userToUpdate *user.User) error {
	start := time.Now()

	query := `UPDATE users
			SET name = $1,
				email = $2,
				password_hash = $3,
				role = $4,
				updated_at = NOW()
			WHERE id = $5
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query,
		userToUpdate.Name,
		userToUpdate.Email,
		userToUpdate.PasswordHash,
		userToUpdate.Role,
		userToUpdate.ID,
	).Scan(&userToUpdate.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		if isUniqueViolation(err) {
			logger.Warn("Repository: Email уже занят", zap.String("email", userToUpdate.Email))
			return repo.ErrDuplicateEmail
		}
		logger.Error("Repository: Не удалось обновить пользователя", err)
		return fmt.Errorf("обновление пользователя: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) SoftDelete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	query := `UPDATE users
			SET deleted_at = NOW(),
				updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
			RETURNING deleted_at`

	var deletedAt time.Time
	err := s.pool.QueryRow(ctx, query, id).Scan(&deletedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Мягкое удаление пользователя", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("мягкое удаление: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Restore(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	query := `UPDATE users
			SET deleted_at = NULL,
				updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NOT NULL
			RETURNING updated_at`

	var updatedAt time.Time
	err := s.pool.QueryRow(ctx, query, id).Scan(&updatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Восстановление пользователя", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("восстановление пользователя: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetAll(ctx context.Context, includeDeleted bool) ([]*user.User, error) {
	start := time.Now()

	query := `SELECT
				id,
				name,
				email,
				password_hash,
				role,
				created_at,
				updated_at,
				deleted_at
				FROM users`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: Не удалось получить пользователей", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}
	defer rows.Close()

	users := []*user.User{}
	for rows.Next() {
		u := &user.User{}
		err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.PasswordHash,
			&u.Role,
			&u.CreatedAt,
			&u.UpdatedAt,
			&u.DeletedAt,
		)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования пользователя", zap.Error(err))
			continue
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return users, nil
}
