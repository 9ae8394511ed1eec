package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mediquip/internal/domain"
	"mediquip/internal/domain/models"
	"mediquip/internal/repository/mongodb"
)

// accountService serves the users collection. Accounts are the root of
// the ownership graph, so ownership here is membership, not a
// traversal: an account is owned by a candidate set when it is one of
// the candidates, and it is reachable from a candidate when its
// permissions list grants that candidate access.
type accountService struct {
	resource[models.User]
}

// NewAccountService manages user accounts.
func NewAccountService(db *mongo.Database, logger *slog.Logger) Resource[models.User] {
	repo := mongodb.New[models.User](db, models.CollUsers, nil, logger)
	return &accountService{
		resource: resource[models.User]{
			data:   NewDataService(repo, logger),
			logger: logger,
		},
	}
}

// IsOwner reports whether the account itself is in the candidate set.
func (s *accountService) IsOwner(ctx context.Context, id string, owners []primitive.ObjectID) (bool, error) {
	oid, err := mongodb.ParseID(id)
	if err != nil {
		return false, &domain.NotFoundError{Message: fmt.Sprintf("%s: %v", s.Name(), err)}
	}
	for _, owner := range owners {
		if oid == owner {
			return true, nil
		}
	}
	return false, nil
}

// FindByUsers pages through the accounts visible from the candidate
// set: the candidate accounts themselves plus every account whose
// permissions list grants one of the candidates. A client listing
// accounts therefore sees the companies that administer it; a company
// listing accounts (optionally filtered by role in the query) sees the
// accounts inside its permission reach.
func (s *accountService) FindByUsers(ctx context.Context, owners []primitive.ObjectID, query bson.M, page mongodb.PageRequest) (*mongodb.Page[models.User], error) {
	scoped := bson.M{"$or": []bson.M{
		{"_id": bson.M{"$in": owners}},
		{"permissions": bson.M{"$in": owners}},
	}}
	for k, v := range query {
		scoped[k] = v
	}
	return s.data.FindByPaginate(ctx, scoped, page)
}

// Update strips role and permissions from the payload for every
// caller, admins included: the generic update path never changes an
// account's role or grant. Role and permission management goes through
// dedicated tooling (cmd/seed, direct store access), not the API.
func (s *accountService) Update(ctx context.Context, id string, changes bson.M) (*models.User, error) {
	filtered := bson.M{}
	for k, v := range changes {
		if k == "role" || k == "permissions" {
			continue
		}
		filtered[k] = v
	}
	return s.resource.Update(ctx, id, filtered)
}
