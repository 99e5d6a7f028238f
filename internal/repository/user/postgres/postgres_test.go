package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/GhofranWarrakia/Task-Management-API/internal/config"
	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"
	rep "github.com/GhofranWarrakia/Task-Management-API/internal/repository"
	pg "github.com/GhofranWarrakia/Task-Management-API/internal/repository/postgres"
	userpg "github.com/GhofranWarrakia/Task-Management-API/internal/repository/user/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresUserSuite - интеграционные тесты репозитория пользователей
type PostgresUserSuite struct {
	suite.Suite
	container testcontainers.Container
	pool      *pgxpool.Pool
	storage   *userpg.Storage
	ctx       context.Context
}

func (s *PostgresUserSuite) SetupSuite() {
	logger.Init(true)
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)
	port, err := container.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)

	connString := fmt.Sprintf("postgres://test:test@%s:%s/testdb", host, port.Port())

	s.pool, err = pg.NewPool(s.ctx, config.DatabaseConfig{URL: connString})
	require.NoError(s.T(), err)

	require.NoError(s.T(), pg.Migrate(s.ctx, s.pool, "../../../migrations"))

	s.storage = userpg.New(s.pool)
}

func (s *PostgresUserSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.container.Terminate(s.ctx)
	}
}

func (s *PostgresUserSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "DELETE FROM tasks")
	require.NoError(s.T(), err)
	_, err = s.pool.Exec(s.ctx, "DELETE FROM users")
	require.NoError(s.T(), err)
}

func TestPostgresUserSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропускаем интеграционные тесты в коротком режиме")
	}
	suite.Run(t, new(PostgresUserSuite))
}

func (s *PostgresUserSuite) newUser(email string) *user.User {
	u := &user.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		Role:         user.RoleUser,
	}
	require.NoError(s.T(), s.storage.Create(s.ctx, u))
	return u
}

func (s *PostgresUserSuite) TestCreateGetByID() {
	created := s.newUser("a@example.com")
	assert.False(s.T(), created.CreatedAt.IsZero())

	got, err := s.storage.GetByID(s.ctx, created.ID, false)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, got.ID)
	assert.Equal(s.T(), "a@example.com", got.Email)
	assert.Equal(s.T(), user.RoleUser, got.Role)
}

func (s *PostgresUserSuite) TestCreateDuplicateEmail() {
	s.newUser("dup@example.com")

	err := s.storage.Create(s.ctx, &user.User{
		ID:           uuid.New(),
		Name:         "Second",
		Email:        "dup@example.com",
		PasswordHash: "hash",
		Role:         user.RoleUser,
	})
	assert.ErrorIs(s.T(), err, rep.ErrDuplicateEmail)
}

// уникальность email переживает мягкое удаление
func (s *PostgresUserSuite) TestCreateDuplicateEmailAfterSoftDelete() {
	first := s.newUser("dup@example.com")
	require.NoError(s.T(), s.storage.SoftDelete(s.ctx, first.ID))

	err := s.storage.Create(s.ctx, &user.User{
		ID:           uuid.New(),
		Name:         "Second",
		Email:        "dup@example.com",
		PasswordHash: "hash",
		Role:         user.RoleUser,
	})
	assert.ErrorIs(s.T(), err, rep.ErrDuplicateEmail)
}

func (s *PostgresUserSuite) TestGetByIDIncludeDeleted() {
	created := s.newUser("a@example.com")
	require.NoError(s.T(), s.storage.SoftDelete(s.ctx, created.ID))

	_, err := s.storage.GetByID(s.ctx, created.ID, false)
	assert.ErrorIs(s.T(), err, rep.ErrNotFound)

	got, err := s.storage.GetByID(s.ctx, created.ID, true)
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), got.DeletedAt)
}

func (s *PostgresUserSuite) TestGetByEmail() {
	created := s.newUser("a@example.com")

	got, err := s.storage.GetByEmail(s.ctx, "a@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, got.ID)

	_, err = s.storage.GetByEmail(s.ctx, "nobody@example.com")
	assert.ErrorIs(s.T(), err, rep.ErrNotFound)
}

func (s *PostgresUserSuite) TestGetByEmailExcludesDeleted() {
	created := s.newUser("a@example.com")
	require.NoError(s.T(), s.storage.SoftDelete(s.ctx, created.ID))

	_, err := s.storage.GetByEmail(s.ctx, "a@example.com")
	assert.ErrorIs(s.T(), err, rep.ErrNotFound)
}

func (s *PostgresUserSuite) TestUpdate() {
	created := s.newUser("a@example.com")

	created.Name = "Renamed"
	created.Role = user.RoleManager
	require.NoError(s.T(), s.storage.Update(s.ctx, created))

	got, err := s.storage.GetByID(s.ctx, created.ID, false)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Renamed", got.Name)
	assert.Equal(s.T(), user.RoleManager, got.Role)
	assert.NotNil(s.T(), got.UpdatedAt)
}

func (s *PostgresUserSuite) TestUpdateToTakenEmail() {
	s.newUser("first@example.com")
	second := s.newUser("second@example.com")

	second.Email = "first@example.com"
	err := s.storage.Update(s.ctx, second)
	assert.ErrorIs(s.T(), err, rep.ErrDuplicateEmail)
}

func (s *PostgresUserSuite) TestSoftDeleteRestore() {
	created := s.newUser("a@example.com")

	require.NoError(s.T(), s.storage.SoftDelete(s.ctx, created.ID))
	assert.ErrorIs(s.T(), s.storage.SoftDelete(s.ctx, created.ID), rep.ErrNotFound)

	require.NoError(s.T(), s.storage.Restore(s.ctx, created.ID))

	got, err := s.storage.GetByID(s.ctx, created.ID, false)
	require.NoError(s.T(), err)
	assert.Nil(s.T(), got.DeletedAt)
	assert.Equal(s.T(), "a@example.com", got.Email)
}

func (s *PostgresUserSuite) TestRestoreNotDeleted() {
	created := s.newUser("a@example.com")

	assert.ErrorIs(s.T(), s.storage.Restore(s.ctx, created.ID), rep.ErrNotFound)
	assert.ErrorIs(s.T(), s.storage.Restore(s.ctx, uuid.New()), rep.ErrNotFound)
}

func (s *PostgresUserSuite) TestGetAll() {
	first := s.newUser("first@example.com")
	second := s.newUser("second@example.com")
	require.NoError(s.T(), s.storage.SoftDelete(s.ctx, first.ID))

	active, err := s.storage.GetAll(s.ctx, false)
	require.NoError(s.T(), err)
	require.Len(s.T(), active, 1)
	assert.Equal(s.T(), second.ID, active[0].ID)

	all, err := s.storage.GetAll(s.ctx, true)
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 2)
}
