package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GhofranWarrakia/Task-Management-API/internal/handlers/dto"
	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/middleware"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"

	"go.uber.org/zap"
)

type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request dto.RegisterRequest
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

	token, err := h.auth.Register(r.Context(), request.Name, request.Email, request.Password, user.Role(request.Role))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusCreated, dto.TokenResponse{Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request dto.LoginRequest
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

	token, err := h.auth.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	if err := h.auth.Logout(r.Context(), identity.Token); err != nil {
		handleServiceError(w, err)
		return
	}

	responseWithJSON(w, http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}
