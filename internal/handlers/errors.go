package handlers

import (
	"errors"
	"net/http"

	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/service"

	"go.uber.org/zap"
)

// handleServiceError переводит ошибку сервиса в HTTP-ответ.
// Внутренние ошибки наружу не уходят.
func handleServiceError(w http.ResponseWriter, err error) {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))

		responseWithError(w, statusCode, businessErr.Message)
		return
	}

	logger.Error("HTTP: Внутренняя ошибка", err)
	responseWithError(w, http.StatusInternalServerError, "Internal server error")
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidationError:
		return http.StatusUnprocessableEntity
	case service.CodeDuplicateEmail:
		return http.StatusConflict
	case service.CodeInvalidCredentials, service.CodeInvalidToken:
		return http.StatusUnauthorized
	case service.CodeForbidden:
		return http.StatusForbidden
	case service.CodeNotDeleted:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
