package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GhofranWarrakia/Task-Management-API/internal/handlers"
	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/middleware"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/task"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"
	"github.com/GhofranWarrakia/Task-Management-API/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(true)
	m.Run()
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string, role user.Role) (string, error) {
	args := m.Called(ctx, name, email, password, role)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, tokenStr string) error {
	args := m.Called(ctx, tokenStr)
	return args.Error(0)
}

type mockTaskService struct {
	mock.Mock
}

func (m *mockTaskService) List(ctx context.Context, actor *user.User, filter task.Filter) ([]*task.Task, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskService) Get(ctx context.Context, actor *user.User, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskService) Create(ctx context.Context, actor *user.User, fields task.Fields) (*task.Task, error) {
	args := m.Called(ctx, actor, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskService) Update(ctx context.Context, actor *user.User, id uuid.UUID, fields task.Fields) (*task.Task, error) {
	args := m.Called(ctx, actor, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskService) Delete(ctx context.Context, actor *user.User, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *mockTaskService) Assign(ctx context.Context, actor *user.User, id uuid.UUID, userID uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, actor, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) List(ctx context.Context, actor *user.User) ([]*user.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *mockUserService) Get(ctx context.Context, actor *user.User, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserService) Create(ctx context.Context, actor *user.User, name, email, password string, role user.Role) (*user.User, error) {
	args := m.Called(ctx, actor, name, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, actor *user.User, id uuid.UUID, upd service.UserUpdate) (*user.User, error) {
	args := m.Called(ctx, actor, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, actor *user.User, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *mockUserService) Restore(ctx context.Context, actor *user.User, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func adminActor() *user.User {
	return &user.User{ID: uuid.New(), Name: "Admin", Email: "admin@example.com", Role: user.RoleAdmin}
}

// запрос от имени аутентифицированного пользователя
func authedRequest(method, target string, body []byte, actor *user.User) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := middleware.WithIdentity(req.Context(), &middleware.Identity{User: actor, Token: "test-token"})
	return req.WithContext(ctx)
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestRegisterHandler(t *testing.T) {
	auth := new(mockAuthService)
	h := handlers.NewAuthHandler(auth)

	auth.On("Register", mock.Anything, "New User", "new@example.com", "secret123", user.RoleUser).
		Return("issued-token", nil)

	payload := []byte(`{"name":"New User","email":"new@example.com","password":"secret123","password_confirmation":"secret123","role":"User"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "issued-token", body["token"])
	auth.AssertExpectations(t)
}

func TestRegisterHandlerValidation(t *testing.T) {
	auth := new(mockAuthService)
	h := handlers.NewAuthHandler(auth)

	tests := []struct {
		name    string
		payload string
		message string
	}{
		{"без имени", `{"email":"a@x.com","password":"secret123","password_confirmation":"secret123","role":"User"}`, "The name field is required."},
		{"кривой email", `{"name":"N","email":"not-an-email","password":"secret123","password_confirmation":"secret123","role":"User"}`, "The email must be a valid email address."},
		{"короткий пароль", `{"name":"N","email":"a@x.com","password":"123","password_confirmation":"123","role":"User"}`, "The password must be at least 6 characters."},
		{"несовпадающее подтверждение", `{"name":"N","email":"a@x.com","password":"secret123","password_confirmation":"other","role":"User"}`, "The password confirmation does not match."},
		{"неизвестная роль", `{"name":"N","email":"a@x.com","password":"secret123","password_confirmation":"secret123","role":"Root"}`, "The selected role is invalid."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader([]byte(tt.payload)))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, tt.message, decodeMessage(t, rec))
		})
	}
	// до сервиса дело не дошло
	auth.AssertNotCalled(t, "Register")
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	auth := new(mockAuthService)
	h := handlers.NewAuthHandler(auth)

	auth.On("Login", mock.Anything, "a@x.com", "wrong").
		Return("", service.NewInvalidCredentials())

	payload := []byte(`{"email":"a@x.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeMessage(t, rec))
}

func TestLoginHandlerBadBody(t *testing.T) {
	auth := new(mockAuthService)
	h := handlers.NewAuthHandler(auth)

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutHandler(t *testing.T) {
	auth := new(mockAuthService)
	h := handlers.NewAuthHandler(auth)

	auth.On("Logout", mock.Anything, "test-token").Return(nil)

	req := authedRequest(http.MethodPost, "/api/logout", nil, adminActor())
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", decodeMessage(t, rec))
	auth.AssertExpectations(t)
}

func TestLogoutHandlerNoIdentity(t *testing.T) {
	auth := new(mockAuthService)
	h := handlers.NewAuthHandler(auth)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthenticated.", decodeMessage(t, rec))
}

func TestTaskListHandlerParsesFilters(t *testing.T) {
	tasks := new(mockTaskService)
	h := handlers.NewTaskHandler(tasks)
	actor := adminActor()

	high := task.PriorityHigh
	pending := task.StatusPending
	expected := task.Filter{Priority: &high, Status: &pending}

	tasks.On("List", mock.Anything, actor, expected).Return([]*task.Task{}, nil)

	req := authedRequest(http.MethodGet, "/api/tasks?priority=High&status=Pending", nil, actor)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	tasks.AssertExpectations(t)
}

func TestTaskGetHandlerInvalidID(t *testing.T) {
	tasks := new(mockTaskService)
	h := handlers.NewTaskHandler(tasks)

	router := chi.NewRouter()
	router.Get("/api/tasks/{id}", h.Get)

	req := authedRequest(http.MethodGet, "/api/tasks/not-a-uuid", nil, adminActor())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", decodeMessage(t, rec))
	tasks.AssertNotCalled(t, "Get")
}

func TestTaskCreateHandler(t *testing.T) {
	tasks := new(mockTaskService)
	h := handlers.NewTaskHandler(tasks)
	actor := adminActor()

	created := &task.Task{
		ID:       uuid.New(),
		Title:    "New task",
		Priority: task.PriorityHigh,
		Status:   task.StatusPending,
	}
	tasks.On("Create", mock.Anything, actor, mock.MatchedBy(func(f task.Fields) bool {
		return f.Title == "New task" && f.Priority == task.PriorityHigh && f.Status == task.StatusPending
	})).Return(created, nil)

	payload := []byte(`{"title":"New task","priority":"High","status":"Pending"}`)
	req := authedRequest(http.MethodPost, "/api/tasks", payload, actor)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body task.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, created.ID, body.ID)
	tasks.AssertExpectations(t)
}

func TestTaskCreateHandlerValidation(t *testing.T) {
	tasks := new(mockTaskService)
	h := handlers.NewTaskHandler(tasks)

	payload := []byte(`{"title":"","priority":"High","status":"Pending"}`)
	req := authedRequest(http.MethodPost, "/api/tasks", payload, adminActor())
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "The title field is required.", decodeMessage(t, rec))
	tasks.AssertNotCalled(t, "Create")
}

func TestTaskDeleteHandler(t *testing.T) {
	tasks := new(mockTaskService)
	h := handlers.NewTaskHandler(tasks)
	actor := adminActor()
	id := uuid.New()

	tasks.On("Delete", mock.Anything, actor, id).Return(nil)

	router := chi.NewRouter()
	router.Delete("/api/tasks/{id}", h.Delete)

	req := authedRequest(http.MethodDelete, "/api/tasks/"+id.String(), nil, actor)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	tasks.AssertExpectations(t)
}

func TestTaskDeleteHandlerForbidden(t *testing.T) {
	tasks := new(mockTaskService)
	h := handlers.NewTaskHandler(tasks)
	actor := adminActor()
	id := uuid.New()

	tasks.On("Delete", mock.Anything, actor, id).Return(service.NewForbidden())

	router := chi.NewRouter()
	router.Delete("/api/tasks/{id}", h.Delete)

	req := authedRequest(http.MethodDelete, "/api/tasks/"+id.String(), nil, actor)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "This action is unauthorized.", decodeMessage(t, rec))
}

func TestTaskAssignHandler(t *testing.T) {
	tasks := new(mockTaskService)
	h := handlers.NewTaskHandler(tasks)
	actor := adminActor()
	taskID := uuid.New()
	userID := uuid.New()

	assigned := &task.Task{ID: taskID, Title: "T", AssignedTo: &userID}
	tasks.On("Assign", mock.Anything, actor, taskID, userID).Return(assigned, nil)

	router := chi.NewRouter()
	router.Post("/api/tasks/{id}/assign", h.Assign)

	payload := []byte(`{"assigned_to":"` + userID.String() + `"}`)
	req := authedRequest(http.MethodPost, "/api/tasks/"+taskID.String()+"/assign", payload, actor)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	tasks.AssertExpectations(t)
}

func TestTaskAssignHandlerMissingField(t *testing.T) {
	tasks := new(mockTaskService)
	h := handlers.NewTaskHandler(tasks)

	router := chi.NewRouter()
	router.Post("/api/tasks/{id}/assign", h.Assign)

	req := authedRequest(http.MethodPost, "/api/tasks/"+uuid.NewString()+"/assign", []byte(`{}`), adminActor())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "The assigned_to field is required.", decodeMessage(t, rec))
	tasks.AssertNotCalled(t, "Assign")
}

func TestUserCreateHandlerDuplicateEmail(t *testing.T) {
	users := new(mockUserService)
	h := handlers.NewUserHandler(users)
	actor := adminActor()

	users.On("Create", mock.Anything, actor, "N", "dup@x.com", "secret123", user.RoleUser).
		Return(nil, service.NewDuplicateEmail())

	payload := []byte(`{"name":"N","email":"dup@x.com","password":"secret123","role":"User"}`)
	req := authedRequest(http.MethodPost, "/api/users", payload, actor)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "The email has already been taken.", decodeMessage(t, rec))
}

func TestUserUpdateHandlerPartialBody(t *testing.T) {
	users := new(mockUserService)
	h := handlers.NewUserHandler(users)
	actor := adminActor()
	id := uuid.New()

	updated := &user.User{ID: id, Name: "Renamed", Email: "a@x.com", Role: user.RoleUser}
	users.On("Update", mock.Anything, actor, id, mock.MatchedBy(func(upd service.UserUpdate) bool {
		return upd.Name != nil && *upd.Name == "Renamed" &&
			upd.Email == nil && upd.Password == nil && upd.Role == nil
	})).Return(updated, nil)

	router := chi.NewRouter()
	router.Put("/api/users/{id}", h.Update)

	req := authedRequest(http.MethodPut, "/api/users/"+id.String(), []byte(`{"name":"Renamed"}`), actor)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	users.AssertExpectations(t)
}

func TestUserDeleteHandler(t *testing.T) {
	users := new(mockUserService)
	h := handlers.NewUserHandler(users)
	actor := adminActor()
	id := uuid.New()

	users.On("Delete", mock.Anything, actor, id).Return(nil)

	router := chi.NewRouter()
	router.Delete("/api/users/{id}", h.Delete)

	req := authedRequest(http.MethodDelete, "/api/users/"+id.String(), nil, actor)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", decodeMessage(t, rec))
}

func TestUserRestoreHandlerNotDeleted(t *testing.T) {
	users := new(mockUserService)
	h := handlers.NewUserHandler(users)
	actor := adminActor()
	id := uuid.New()

	users.On("Restore", mock.Anything, actor, id).Return(nil, service.NewNotDeleted("User"))

	router := chi.NewRouter()
	router.Post("/api/users/{id}/restore", h.Restore)

	req := authedRequest(http.MethodPost, "/api/users/"+id.String()+"/restore", nil, actor)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User is not deleted", decodeMessage(t, rec))
}

func TestUserGetHandlerNotFound(t *testing.T) {
	users := new(mockUserService)
	h := handlers.NewUserHandler(users)
	actor := adminActor()
	id := uuid.New()

	users.On("Get", mock.Anything, actor, id).Return(nil, service.NewNotFound("User"))

	router := chi.NewRouter()
	router.Get("/api/users/{id}", h.Get)

	req := authedRequest(http.MethodGet, "/api/users/"+id.String(), nil, actor)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeMessage(t, rec))
}

func TestHealthHandler(t *testing.T) {
	h := handlers.NewHealthHandler(healthOK{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	h.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

type healthOK struct{}

func (healthOK) HealthCheck(ctx context.Context) error { return nil }
