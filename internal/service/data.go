package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mediquip/internal/domain"
	"mediquip/internal/repository/mongodb"
)

// DataService wraps every repository call and centralizes store-error
// normalization, so no caller above it ever branches on a driver error
// type. Absent documents become NotFound here; duplicate keys become
// Conflict; anything else unexpected becomes a normalized store error.
// No call retries internally - the first failure is final.
type DataService[T any] struct {
	repo   *mongodb.Repository[T]
	logger *slog.Logger
}

// NewDataService creates the normalization wrapper over a repository.
func NewDataService[T any](repo *mongodb.Repository[T], logger *slog.Logger) *DataService[T] {
	return &DataService[T]{
		repo:   repo,
		logger: logger,
	}
}

// Name returns the backing collection name.
func (s *DataService[T]) Name() string {
	return s.repo.Name()
}

// Create inserts the document and returns its stored form.
func (s *DataService[T]) Create(ctx context.Context, doc *T) (*T, error) {
	created, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, s.normalize(err, "create")
	}
	return created, nil
}

// Find returns every matching document with relations expanded.
func (s *DataService[T]) Find(ctx context.Context, query bson.M) ([]T, error) {
	docs, err := s.repo.Find(ctx, query, true, nil)
	if err != nil {
		return nil, s.normalize(err, "find")
	}
	return docs, nil
}

// FindByID returns the document or NotFound when the id is malformed
// or absent.
func (s *DataService[T]) FindByID(ctx context.Context, id string) (*T, error) {
	doc, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, s.normalize(err, "findById")
	}
	if doc == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("%s %s not found", s.Name(), id)}
	}
	return doc, nil
}

// FindByPaginate reads one populated page of the matching documents.
func (s *DataService[T]) FindByPaginate(ctx context.Context, query bson.M, page mongodb.PageRequest) (*mongodb.Page[T], error) {
	result, err := s.repo.FindByPaginate(ctx, query, page, true)
	if err != nil {
		return nil, s.normalize(err, "findByPaginate")
	}
	return result, nil
}

// Update applies the changes and returns the updated document, or
// NotFound when the id is malformed or absent.
func (s *DataService[T]) Update(ctx context.Context, id string, changes bson.M) (*T, error) {
	doc, err := s.repo.Update(ctx, id, changes, true)
	if err != nil {
		return nil, s.normalize(err, "update")
	}
	if doc == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("%s %s not found", s.Name(), id)}
	}
	return doc, nil
}

// UpdateMany applies the update to every match and returns the count.
func (s *DataService[T]) UpdateMany(ctx context.Context, query, update bson.M) (int64, error) {
	n, err := s.repo.UpdateMany(ctx, query, update)
	if err != nil {
		return 0, s.normalize(err, "updateMany")
	}
	return n, nil
}

// Delete removes the document. A repeated delete of the same id is
// NotFound, never a duplicate success.
func (s *DataService[T]) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, s.normalize(err, "delete")
	}
	if !deleted {
		return false, &domain.NotFoundError{Message: fmt.Sprintf("%s %s not found", s.Name(), id)}
	}
	return true, nil
}

// Aggregate runs a pipeline, decoding rows into out.
func (s *DataService[T]) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	if err := s.repo.Aggregate(ctx, pipeline, out); err != nil {
		return s.normalize(err, "aggregate")
	}
	return nil
}

// normalize maps driver failures onto the domain error taxonomy.
func (s *DataService[T]) normalize(err error, op string) error {
	switch {
	case mongodb.IsInvalidIDError(err):
		return &domain.NotFoundError{Message: fmt.Sprintf("%s: %v", s.Name(), err)}
	case mongodb.IsNoDocumentsError(err):
		return &domain.NotFoundError{Message: fmt.Sprintf("%s: document not found", s.Name())}
	case mongodb.IsDuplicateKeyError(err):
		return &domain.ConflictError{Message: fmt.Sprintf("%s: duplicate document", s.Name())}
	default:
		s.logger.Error("store operation failed",
			"collection", s.Name(),
			"op", op,
			"error", err,
		)
		return &domain.StoreError{
			Message: fmt.Sprintf("%s %s failed", s.Name(), op),
			Err:     err,
		}
	}
}
