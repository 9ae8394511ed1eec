package access

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"mediquip/internal/domain"
	"mediquip/internal/domain/models"
	"mediquip/internal/repository/mongodb"
	"mediquip/internal/service"
)

// companyStrategy scopes every read to the client accounts in the
// caller's permission grant. Companies administer the resources of
// those clients, so mutations are allowed on anything they can see.
type companyStrategy[T any] struct {
	user models.User
	svc  service.Resource[T]
}

func (s *companyStrategy[T]) GetAll(ctx context.Context, query bson.M, page mongodb.PageRequest) (*mongodb.Page[T], error) {
	if len(s.user.Permissions) == 0 {
		return nil, &domain.NotFoundError{Message: "no clients in permission scope"}
	}
	return s.svc.FindByUsers(ctx, s.user.Permissions, query, page)
}

func (s *companyStrategy[T]) GetOne(ctx context.Context, id string) (*T, error) {
	doc, err := s.svc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Own account by own id, and any account by id on the account
	// resource: both bypass the ownership walk.
	if id == s.user.ID.Hex() || s.svc.Name() == models.CollUsers {
		return doc, nil
	}

	owned, err := s.svc.IsOwner(ctx, id, s.user.Permissions)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, &domain.ForbiddenError{Message: "resource outside permission scope"}
	}
	return doc, nil
}

func (s *companyStrategy[T]) CanUpdate(ctx context.Context, id string) (bool, error) {
	return true, nil
}

func (s *companyStrategy[T]) CanDelete(ctx context.Context, id string) (bool, error) {
	return true, nil
}
