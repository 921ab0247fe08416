package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"linkup/apperrors"
)

// Claims carries the authenticated subject inside the signed token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// GenerateToken signs a token for userID that expires after ttl. Pure
// function of its inputs and the clock; nothing is stored server-side.
func GenerateToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	})

	return token.SignedString(secret)
}

// ParseToken verifies a raw token and returns the subject user id. Any
// failure (bad signature, malformed input, unexpected algorithm, expiry)
// comes back as an apperrors.ErrAuth.
func ParseToken(raw string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.New(apperrors.ErrAuth, "token expired")
		}
		return "", apperrors.New(apperrors.ErrAuth, "invalid token")
	}

	if !token.Valid || claims.UserID == "" {
		return "", apperrors.New(apperrors.ErrAuth, "invalid token")
	}

	return claims.UserID, nil
}
