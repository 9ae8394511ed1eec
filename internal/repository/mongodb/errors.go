package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrInvalidID marks an id string that is not a valid object id.
var ErrInvalidID = errors.New("invalid object id")

// ParseID converts an opaque id string into the store's native id type.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// ParseIDs converts a set of id strings, skipping malformed entries.
// Membership filters treat a malformed candidate as simply not matching.
func ParseIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

// IsDuplicateKeyError checks if error is a unique index violation
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// IsNoDocumentsError checks if error is a "no documents" error
func IsNoDocumentsError(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// IsInvalidIDError checks if error came from a malformed id string
func IsInvalidIDError(err error) bool {
	return errors.Is(err, ErrInvalidID)
}
