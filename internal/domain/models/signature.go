package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Signature is an authorizing signature attached directly to a
// headquarter. At most one signature per headquarter may be active;
// the exclusivity is enforced procedurally on create, not by a store
// constraint.
type Signature struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HeadquarterID primitive.ObjectID `bson:"headquarterId" json:"headquarterId"`
	SignerName    string             `bson:"signerName" json:"signerName"`
	SignerTitle   string             `bson:"signerTitle,omitempty" json:"signerTitle,omitempty"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Active        bool               `bson:"active" json:"active"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`

	Headquarter *Headquarter `bson:"headquarter,omitempty" json:"headquarter,omitempty"`
}

func (s *Signature) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.HeadquarterID, validation.By(requiredID)),
		validation.Field(&s.SignerName, validation.Required, validation.Length(1, 120)),
	)
}

// Stamp sets the bookkeeping timestamps before a write.
func (s *Signature) Stamp(now time.Time) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}
