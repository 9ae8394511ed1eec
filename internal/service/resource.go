package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mediquip/internal/domain"
	"mediquip/internal/repository/mongodb"
	"mediquip/internal/service/ownership"
)

// Resource is the uniform contract every entity service implements, so
// the access layer needs no per-entity branching.
type Resource[T any] interface {
	Name() string
	Create(ctx context.Context, doc *T) (*T, error)
	Find(ctx context.Context, query bson.M) ([]T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	FindPage(ctx context.Context, query bson.M, page mongodb.PageRequest) (*mongodb.Page[T], error)
	Update(ctx context.Context, id string, changes bson.M) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
	IsOwner(ctx context.Context, id string, owners []primitive.ObjectID) (bool, error)
	FindByUsers(ctx context.Context, owners []primitive.ObjectID, query bson.M, page mongodb.PageRequest) (*mongodb.Page[T], error)
}

// validator is implemented by models that check their own payload.
type validator interface {
	Validate() error
}

// stamped is implemented by models that carry bookkeeping timestamps.
type stamped interface {
	Stamp(now time.Time)
}

// resource is the shared implementation behind every entity service:
// DataService access plus the entity's ownership chain. parentField
// names the immutable structural reference; update payloads cannot
// touch it.
type resource[T any] struct {
	data        *DataService[T]
	chain       ownership.Chain
	parentField string
	logger      *slog.Logger
}

func (r *resource[T]) Name() string {
	return r.data.Name()
}

func (r *resource[T]) Create(ctx context.Context, doc *T) (*T, error) {
	if v, ok := any(doc).(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, &domain.ValidationError{Message: err.Error()}
		}
	}
	if s, ok := any(doc).(stamped); ok {
		s.Stamp(time.Now().UTC())
	}

	created, err := r.data.Create(ctx, doc)
	if err != nil {
		return nil, err
	}

	r.logger.Info("resource created", "collection", r.Name())
	return created, nil
}

func (r *resource[T]) Find(ctx context.Context, query bson.M) ([]T, error) {
	return r.data.Find(ctx, query)
}

func (r *resource[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return r.data.FindByID(ctx, id)
}

func (r *resource[T]) FindPage(ctx context.Context, query bson.M, page mongodb.PageRequest) (*mongodb.Page[T], error) {
	return r.data.FindByPaginate(ctx, query, page)
}

func (r *resource[T]) Update(ctx context.Context, id string, changes bson.M) (*T, error) {
	changes = r.sanitizeChanges(changes)
	if len(changes) == 1 { // only the updatedAt stamp left
		return nil, &domain.ValidationError{Message: "no updatable fields in payload"}
	}
	return r.data.Update(ctx, id, changes)
}

// sanitizeChanges strips the id, the immutable parent reference and
// bookkeeping fields from an update payload.
func (r *resource[T]) sanitizeChanges(changes bson.M) bson.M {
	out := bson.M{}
	for k, v := range changes {
		switch k {
		case "_id", "id", "createdAt", "updatedAt":
			continue
		case r.parentField:
			continue
		}
		out[k] = v
	}
	out["updatedAt"] = time.Now().UTC()
	return out
}

func (r *resource[T]) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.data.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	r.logger.Info("resource deleted", "collection", r.Name(), "id", id)
	return deleted, nil
}

// IsOwner derives the resource's transitive owner and checks it
// against the candidate set. A resource whose chain is broken produces
// no traversal row and is owned by nobody.
func (r *resource[T]) IsOwner(ctx context.Context, id string, owners []primitive.ObjectID) (bool, error) {
	oid, err := mongodb.ParseID(id)
	if err != nil {
		return false, &domain.NotFoundError{Message: fmt.Sprintf("%s: %v", r.Name(), err)}
	}

	var rows []ownership.OwnerRow
	if err := r.data.Aggregate(ctx, r.chain.Owner(oid), &rows); err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	for _, owner := range owners {
		if rows[0].Owner == owner {
			return true, nil
		}
	}
	return false, nil
}

// FindByUsers pages through the resources whose derived owner is in
// the candidate set, with any extra query conditions applied on top.
func (r *resource[T]) FindByUsers(ctx context.Context, owners []primitive.ObjectID, query bson.M, page mongodb.PageRequest) (*mongodb.Page[T], error) {
	var rows []ownership.IDRow
	if err := r.data.Aggregate(ctx, r.chain.ByUsers(owners), &rows); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	scoped := bson.M{"_id": bson.M{"$in": ids}}
	for k, v := range query {
		scoped[k] = v
	}
	return r.data.FindByPaginate(ctx, scoped, page)
}
