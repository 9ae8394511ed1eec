package access

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"mediquip/internal/repository/mongodb"
	"mediquip/internal/service"
)

// adminStrategy is unrestricted: queries pass through untouched and
// reads only check existence.
type adminStrategy[T any] struct {
	svc service.Resource[T]
}

func (s *adminStrategy[T]) GetAll(ctx context.Context, query bson.M, page mongodb.PageRequest) (*mongodb.Page[T], error) {
	return s.svc.FindPage(ctx, query, page)
}

func (s *adminStrategy[T]) GetOne(ctx context.Context, id string) (*T, error) {
	return s.svc.FindByID(ctx, id)
}

func (s *adminStrategy[T]) CanUpdate(ctx context.Context, id string) (bool, error) {
	return true, nil
}

func (s *adminStrategy[T]) CanDelete(ctx context.Context, id string) (bool, error) {
	return true, nil
}
