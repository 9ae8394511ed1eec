package auth

import (
	"errors"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"

	"mediquip/internal/domain"
	"mediquip/internal/domain/models"
	"mediquip/internal/repository/mongodb"
)

// TokenVerifier turns a bearer token into an authenticated user.
// Token issuance lives elsewhere; this side only verifies.
type TokenVerifier interface {
	Verify(tokenString string) (models.User, error)
}

// Claims are the token claims the core consumes: subject id, role and
// the permission grant.
type Claims struct {
	jwt.RegisteredClaims
	Role        models.Role `json:"role"`
	Permissions []string    `json:"permissions,omitempty"`
}

// HSVerifier validates HS256-signed tokens against a shared secret.
type HSVerifier struct {
	secret []byte
	logger *slog.Logger
}

// NewHSVerifier creates a shared-secret token verifier.
func NewHSVerifier(secret string, logger *slog.Logger) (*HSVerifier, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	return &HSVerifier{
		secret: []byte(secret),
		logger: logger,
	}, nil
}

// Verify parses and validates the token, producing the authenticated
// User{id, role, permissions} value the access layer consumes.
func (v *HSVerifier) Verify(tokenString string) (models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Pin the algorithm to prevent confusion attacks
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		v.logger.Debug("token rejected", "error", err)
		return models.User{}, &domain.UnauthorizedError{Message: "invalid token"}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return models.User{}, &domain.UnauthorizedError{Message: "invalid token claims"}
	}

	id, err := mongodb.ParseID(claims.Subject)
	if err != nil {
		return models.User{}, &domain.UnauthorizedError{Message: "invalid subject claim"}
	}
	if !claims.Role.Valid() {
		v.logger.Warn("token carries unknown role", "role", claims.Role, "sub", claims.Subject)
		return models.User{}, &domain.UnauthorizedError{Message: "invalid role claim"}
	}

	return models.User{
		ID:          id,
		Role:        claims.Role,
		Permissions: mongodb.ParseIDs(claims.Permissions),
	}, nil
}
