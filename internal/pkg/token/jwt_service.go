package token

import (
	"time"

	"chat-journal-be/internal/pkg/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Service issues and verifies the bearer tokens that bind a request to a
// user identity. Tokens are self-contained; verification never hits storage.
type Service interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(signedToken string) (uuid.UUID, error)
}

type JWTService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (s *JWTService) Issue(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(s.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify rejects any token with a bad signature, malformed payload, or
// passed expiry. All failure modes collapse into one message so callers
// learn nothing about which check failed.
func (s *JWTService) Verify(signedToken string) (uuid.UUID, error) {
	token, err := jwt.Parse(signedToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apperr.Auth("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, apperr.Auth("invalid or expired token")
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, apperr.Auth("invalid or expired token")
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, apperr.Auth("invalid or expired token")
	}

	return userID, nil
}
