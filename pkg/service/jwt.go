package service

import (
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
)

// SupabaseClaims - claims access-токена, который выпускает Supabase Auth.
type SupabaseClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService interface {
	ValidateToken(tokenString string) (*SupabaseClaims, error)
	UserID(claims *SupabaseClaims) (uuid.UUID, error)
}

type jwtService struct {
	secretKey []byte
	now       func() time.Time
}

// NewJWTService - локальная проверка токенов общим секретом проекта Supabase.
func NewJWTService(secretKey string) JWTService {
	return &jwtService{secretKey: []byte(secretKey), now: time.Now}
}

func (s *jwtService) ValidateToken(tokenString string) (*SupabaseClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SupabaseClaims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return s.secretKey, nil
		default:
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, apperrors.Auth(apperrors.AreaAuth, "Invalid token", err)
	}

	claims, ok := token.Claims.(*SupabaseClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *jwtService) UserID(claims *SupabaseClaims) (uuid.UUID, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperrors.Auth(apperrors.AreaAuth, "Invalid token", err)
	}
	return id, nil
}
