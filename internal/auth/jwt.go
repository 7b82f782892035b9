package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoToken is returned when the request carries no bearer token.
	ErrNoToken = errors.New("auth: missing token")
	// ErrInvalidToken covers signature, expiry and claim failures.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims is the JWT payload issued to warehouse API callers.
type Claims struct {
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken verifies an HS256 token and returns the caller identity.
func ParseToken(tokenString string, secret []byte) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrNoToken
	}
	if len(secret) == 0 {
		return Identity{}, errors.New("auth: empty signing secret")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.TenantID == "" {
		return Identity{}, ErrInvalidToken
	}
	role, ok := NormalizeRole(claims.Role)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		TenantID: claims.TenantID,
		Subject:  claims.Subject,
		Role:     role,
	}, nil
}
