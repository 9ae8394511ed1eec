package access

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mediquip/internal/domain"
	"mediquip/internal/domain/models"
	"mediquip/internal/repository/mongodb"
	"mediquip/internal/service"
)

// clientStrategy scopes reads to the resources transitively rooted at
// the caller's own account. On the account resource the same listing
// also surfaces the company accounts holding a grant for the caller.
// Clients may only edit their own account and may delete nothing.
type clientStrategy[T any] struct {
	user models.User
	svc  service.Resource[T]
}

func (s *clientStrategy[T]) GetAll(ctx context.Context, query bson.M, page mongodb.PageRequest) (*mongodb.Page[T], error) {
	return s.svc.FindByUsers(ctx, []primitive.ObjectID{s.user.ID}, query, page)
}

func (s *clientStrategy[T]) GetOne(ctx context.Context, id string) (*T, error) {
	doc, err := s.svc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if id == s.user.ID.Hex() {
		return doc, nil
	}

	owned, err := s.svc.IsOwner(ctx, id, []primitive.ObjectID{s.user.ID})
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, &domain.ForbiddenError{Message: "resource not owned by caller"}
	}
	return doc, nil
}

// CanUpdate permits only the self-service profile edit.
func (s *clientStrategy[T]) CanUpdate(ctx context.Context, id string) (bool, error) {
	return s.svc.Name() == models.CollUsers && id == s.user.ID.Hex(), nil
}

func (s *clientStrategy[T]) CanDelete(ctx context.Context, id string) (bool, error) {
	return false, nil
}
