// Package auth holds token and password primitives.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"galerie/internal/shared/errors"
)

// Claims carries the authenticated identity. TenantID is embedded at issue
// time, so a token minted on one storefront is not blindly trusted to act on
// another tenant's data.
type Claims struct {
	UserID   uint `json:"user_id"`
	TenantID uint `json:"tenant_id"`
	IsAdmin  bool `json:"is_admin"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret    []byte
	expiresIn time.Duration
}

func NewJWTService(secret string, expMinutes int) *JWTService {
	if expMinutes <= 0 {
		expMinutes = 60
	}
	return &JWTService{
		secret:    []byte(secret),
		expiresIn: time.Duration(expMinutes) * time.Minute,
	}
}

func (s *JWTService) Generate(userID, tenantID uint, isAdmin bool) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		TenantID: tenantID,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid token", err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.NewUnauthorizedError("invalid token")
	}
	return claims, nil
}
