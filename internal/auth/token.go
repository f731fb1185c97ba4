// internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenManager struct {
	secret       []byte
	expiryPeriod time.Duration
	now          func() time.Time
}

func NewTokenManager(secret string, expiryPeriod time.Duration) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		expiryPeriod: expiryPeriod,
		now:          time.Now,
	}
}

// Claims identify the caller. OrganizationID is informational only: the
// visibility scope is always resolved from the users table, since the
// membership can change while the token is alive.
type Claims struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	OrganizationID string `json:"organization_id,omitempty"`
	jwt.RegisteredClaims
}

func (tm *TokenManager) Generate(userID, email, organizationID string) (string, error) {
	now := tm.now()
	claims := Claims{
		UserID:         userID,
		Email:          email,
		OrganizationID: organizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiryPeriod)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

func (tm *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
