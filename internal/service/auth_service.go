package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"
	rep "github.com/GhofranWarrakia/Task-Management-API/internal/repository"
	"github.com/GhofranWarrakia/Task-Management-API/internal/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// хеш пустого пароля, чтобы логин по неизвестному email
// занимал столько же времени, сколько по известному
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("-"), bcrypt.DefaultCost)

type AuthService struct {
	users  UserRepository
	tokens TokenIssuer
}

func NewAuthService(users UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string, role user.Role) (string, error) {
	if !role.Valid() {
		return "", NewValidationError("The selected role is invalid.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("хеширование пароля: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, rep.ErrDuplicateEmail) {
			logger.Info("Service: Повторная регистрация email", zap.String("email", email))
			return "", NewDuplicateEmail()
		}
		return "", fmt.Errorf("создание пользователя: %w", err)
	}

	tokenStr, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return "", fmt.Errorf("выпуск токена: %w", err)
	}

	logger.Info("Service: Пользователь зарегистрирован", zap.String("user_id", u.ID.String()))
	return tokenStr, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", NewInvalidCredentials()
		}
		return "", fmt.Errorf("поиск пользователя: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		logger.Warn("Service: Неудачный вход", zap.String("user_id", u.ID.String()))
		return "", NewInvalidCredentials()
	}

	tokenStr, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return "", fmt.Errorf("выпуск токена: %w", err)
	}

	logger.Info("Service: Успешный вход", zap.String("user_id", u.ID.String()))
	return tokenStr, nil
}

func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	if err := s.tokens.Invalidate(tokenStr); err != nil {
		if errors.Is(err, token.ErrInvalidToken) || errors.Is(err, token.ErrExpiredToken) {
			return &BusinessError{Code: CodeInvalidToken, Message: "Invalid token", Err: err}
		}
		return fmt.Errorf("отзыв токена: %w", err)
	}
	return nil
}
