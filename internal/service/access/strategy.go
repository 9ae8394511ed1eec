// Package access decides, per authenticated role, which records a
// caller may read, list, update or delete. Authorization is evaluated
// statelessly per call: CanUpdate/CanDelete are pure predicates
// consulted before a mutation is attempted, and the later mutation is
// a separate round trip to the store. The check-then-act window is an
// accepted risk, not something patched with transactions.
package access

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"mediquip/internal/repository/mongodb"
)

// Strategy is the role-polymorphic authorization contract over one
// resource service.
type Strategy[T any] interface {
	// GetAll lists the resources inside the caller's scope.
	GetAll(ctx context.Context, query bson.M, page mongodb.PageRequest) (*mongodb.Page[T], error)

	// GetOne fails NotFound when the id is malformed or absent, and
	// Forbidden when the resource exists outside the caller's scope.
	GetOne(ctx context.Context, id string) (*T, error)

	// CanUpdate and CanDelete report whether the caller may mutate the
	// resource. They never perform the mutation.
	CanUpdate(ctx context.Context, id string) (bool, error)
	CanDelete(ctx context.Context, id string) (bool, error)
}
