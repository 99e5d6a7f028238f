package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const identityKey contextKey = "identity"

// Identity - результат проверки токена, кладётся в контекст запроса
// вместо глобального состояния аутентификации
type Identity struct {
	User  *user.User
	Token string
}

type TokenVerifier interface {
	Verify(tokenStr string) (uuid.UUID, error)
}

type IdentityResolver interface {
	GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*user.User, error)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Unauthenticated."})
}

// Authenticate проверяет bearer-токен и резолвит личность вызывающего.
// Мягко удалённый пользователь личностью быть не может.
func Authenticate(tokens TokenVerifier, users IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w)
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")

			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				logger.Warn("HTTP: Невалидный токен",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err))
				unauthorized(w)
				return
			}

			u, err := users.GetByID(r.Context(), userID, false)
			if err != nil {
				logger.Warn("HTTP: Токен валиден, но пользователь недоступен",
					zap.String("user_id", userID.String()),
					zap.Error(err))
				unauthorized(w)
				return
			}

			ctx := WithIdentity(r.Context(), &Identity{
				User:  u,
				Token: tokenStr,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}
