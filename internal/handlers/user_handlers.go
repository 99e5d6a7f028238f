package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GhofranWarrakia/Task-Management-API/internal/handlers/dto"
	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"
	"github.com/GhofranWarrakia/Task-Management-API/internal/service"

	"go.uber.org/zap"
)

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	users, err := h.users.List(r.Context(), act)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "User")
	if !ok {
		return
	}

	u, err := h.users.Get(r.Context(), act, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	var request dto.CreateUserRequest
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

	u, err := h.users.Create(r.Context(), act, request.Name, request.Email, request.Password, user.Role(request.Role))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "User")
	if !ok {
		return
	}

	var request dto.UpdateUserRequest
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

	upd := service.UserUpdate{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
	}
	if request.Role != nil {
		role := user.Role(*request.Role)
		upd.Role = &role
	}

	u, err := h.users.Update(r.Context(), act, id, upd)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "User")
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), act, id); err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

func (h *UserHandler) Restore(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "User")
	if !ok {
		return
	}

	u, err := h.users.Restore(r.Context(), act, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, u)
}
