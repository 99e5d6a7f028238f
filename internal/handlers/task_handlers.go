package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GhofranWarrakia/Task-Management-API/internal/handlers/dto"
	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/middleware"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/task"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandler struct {
	tasks TaskService
}

func NewTaskHandler(tasks TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func actor(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "Unauthenticated.")
		return nil, false
	}
	return identity.User, true
}

// непарсящийся id неотличим от отсутствующей записи
func pathID(w http.ResponseWriter, r *http.Request, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		responseWithError(w, http.StatusNotFound, resource+" not found")
		return uuid.Nil, false
	}
	return id, true
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	// неизвестное значение фильтра не ошибка, просто пустой результат
	filter := task.Filter{}
	if p := r.URL.Query().Get("priority"); p != "" {
		priority := task.Priority(p)
		filter.Priority = &priority
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := task.Status(s)
		filter.Status = &status
	}

	tasks, err := h.tasks.List(r.Context(), act, filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "Task")
	if !ok {
		return
	}

	t, err := h.tasks.Get(r.Context(), act, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	var request dto.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if msg := request.Validate(); msg != "" {
		logger.Warn("HTTP: Ошибка валидации", zap.String("message", msg))
		responseWithError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	t, err := h.tasks.Create(r.Context(), act, request.Fields())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusCreated, t)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "Task")
	if !ok {
		return
	}

	var request dto.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if msg := request.Validate(); msg != "" {
		logger.Warn("HTTP: Ошибка валидации", zap.String("message", msg))
		responseWithError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	t, err := h.tasks.Update(r.Context(), act, id, request.Fields())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "Task")
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), act, id); err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusNoContent, nil)
}

func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "Task")
	if !ok {
		return
	}

	var request dto.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if msg := request.Validate(); msg != "" {
		logger.Warn("HTTP: Ошибка валидации", zap.String("message", msg))
		responseWithError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	t, err := h.tasks.Assign(r.Context(), act, id, *request.AssignedTo)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, t)
}
