package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidToken = errors.New("невалидный токен")
var ErrExpiredToken = errors.New("токен истёк")
var ErrRevokedToken = errors.New("токен отозван")

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service выпускает и проверяет bearer-токены.
// Каждый логин получает свой jti, logout кладёт jti в чёрный список до
// естественного истечения токена.
type Service struct {
	secret  []byte
	ttl     time.Duration
	revoked *RevocationList
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: NewRevocationList(),
	}
}

func (s *Service) Issue(userID uuid.UUID, role user.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		logger.Error("Token: Не удалось подписать токен", err)
		return "", fmt.Errorf("подпись токена: %w", err)
	}
	return signed, nil
}

func (s *Service) parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) Verify(tokenStr string) (uuid.UUID, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return uuid.Nil, err
	}

	if s.revoked.IsRevoked(claims.ID) {
		logger.Warn("Token: Попытка использовать отозванный токен", zap.String("jti", claims.ID))
		return uuid.Nil, ErrRevokedToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

// Invalidate отзывает токен немедленно, не дожидаясь истечения
func (s *Service) Invalidate(tokenStr string) error {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return err
	}

	expiry := time.Now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	s.revoked.Revoke(claims.ID, expiry)

	logger.Info("Token: Токен отозван", zap.String("jti", claims.ID))
	return nil
}

// PruneRevoked выбрасывает из чёрного списка записи, чей токен всё равно
// уже истёк. Возвращает количество удалённых.
func (s *Service) PruneRevoked() int {
	return s.revoked.PruneExpired(time.Now())
}
