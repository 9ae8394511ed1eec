package service

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mediquip/internal/domain"
	"mediquip/internal/domain/models"
	"mediquip/internal/repository/mongodb"
	"mediquip/internal/service/ownership"
)

// signatureService specializes Create to keep at most one active
// signature per headquarter.
type signatureService struct {
	resource[models.Signature]
}

// NewSignatureService manages authorizing signatures on headquarters.
func NewSignatureService(db *mongo.Database, logger *slog.Logger) Resource[models.Signature] {
	repo := mongodb.New[models.Signature](db, models.CollSignatures, []mongodb.Relation{
		{From: models.CollHeadquarters, LocalField: "headquarterId", As: "headquarter"},
	}, logger)
	return &signatureService{
		resource: resource[models.Signature]{
			data:        NewDataService(repo, logger),
			chain:       ownership.SignatureChain(),
			parentField: "headquarterId",
			logger:      logger,
		},
	}
}

// deactivation builds the filter and update retiring every active
// signature of the given headquarter.
func deactivation(headquarterID primitive.ObjectID, now time.Time) (query, update bson.M) {
	return bson.M{"headquarterId": headquarterID, "active": true},
		bson.M{"$set": bson.M{"active": false, "updatedAt": now}}
}

// Create deactivates every other active signature of the same
// headquarter before inserting an active one. The payload is validated
// up front so a rejected create never touches the existing signatures.
// The two writes are sequential and not atomic: concurrent creates for
// one headquarter can transiently leave two signatures active. Known
// race, kept as-is until a transactional requirement is confirmed.
func (s *signatureService) Create(ctx context.Context, doc *models.Signature) (*models.Signature, error) {
	if err := doc.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	if doc.Active {
		query, update := deactivation(doc.HeadquarterID, time.Now().UTC())
		n, err := s.data.UpdateMany(ctx, query, update)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			s.logger.Info("deactivated previous signatures",
				"headquarter", doc.HeadquarterID.Hex(),
				"count", n,
			)
		}
	}
	return s.resource.Create(ctx, doc)
}
