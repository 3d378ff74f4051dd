package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"flagarena/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService validates the account tokens minted by the platform's account
// service, which shares the signing secret. The engine never handles
// credentials itself.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{jwtSecret: []byte(jwtSecret)}
}

// ValidateToken validates an account JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.AccountClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AccountClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AccountClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// MintToken signs a token for the given account. Used by the seed command
// and tests; production tokens come from the account service.
func (s *AuthService) MintToken(accountID string, admin bool, ttl time.Duration) (string, error) {
	claims := &model.AccountClaims{
		AccountID: accountID,
		Admin:     admin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
