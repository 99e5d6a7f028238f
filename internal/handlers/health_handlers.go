package handlers

import (
	"net/http"

	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
)

type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Health check провален", err)
		responseWithError(w, http.StatusServiceUnavailable, "Service unavailable")
		return
	}
	responseWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
