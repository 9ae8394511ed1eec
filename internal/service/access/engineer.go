package access

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"mediquip/internal/domain"
	"mediquip/internal/domain/models"
	"mediquip/internal/repository/mongodb"
	"mediquip/internal/service"
)

// engineerStrategy mirrors the company mechanics (permission-list
// scoping with the same account special cases) but exists for
// supervision rather than administration. It stays a separate variant:
// the policies are expected to diverge and merging them would freeze
// the current coincidence into a contract.
type engineerStrategy[T any] struct {
	user models.User
	svc  service.Resource[T]
}

func (s *engineerStrategy[T]) GetAll(ctx context.Context, query bson.M, page mongodb.PageRequest) (*mongodb.Page[T], error) {
	if len(s.user.Permissions) == 0 {
		return nil, &domain.NotFoundError{Message: "no clients in permission scope"}
	}
	return s.svc.FindByUsers(ctx, s.user.Permissions, query, page)
}

func (s *engineerStrategy[T]) GetOne(ctx context.Context, id string) (*T, error) {
	doc, err := s.svc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

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

func (s *engineerStrategy[T]) CanUpdate(ctx context.Context, id string) (bool, error) {
	return true, nil
}

func (s *engineerStrategy[T]) CanDelete(ctx context.Context, id string) (bool, error) {
	return true, nil
}
