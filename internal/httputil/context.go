package httputil

import (
	"context"

	"mediquip/internal/domain"
	"mediquip/internal/domain/models"
)

type contextKey string

const (
	userKey      contextKey = "user"
	requestIDKey contextKey = "requestID"
)

// WithUser stores the authenticated caller on the context.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom returns the authenticated caller, or Unauthorized when the
// request never passed the auth middleware.
func UserFrom(ctx context.Context) (models.User, error) {
	user, ok := ctx.Value(userKey).(models.User)
	if !ok {
		return models.User{}, &domain.UnauthorizedError{Message: "no authenticated user"}
	}
	return user, nil
}

// WithRequestID stores the request correlation id on the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom returns the request correlation id, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
