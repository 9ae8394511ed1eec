package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Office is a room or department inside a headquarter.
type Office struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HeadquarterID primitive.ObjectID `bson:"headquarterId" json:"headquarterId"`
	Name          string             `bson:"name" json:"name"`
	Floor         string             `bson:"floor,omitempty" json:"floor,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`

	Headquarter *Headquarter `bson:"headquarter,omitempty" json:"headquarter,omitempty"`
}

func (o *Office) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.HeadquarterID, validation.By(requiredID)),
		validation.Field(&o.Name, validation.Required, validation.Length(1, 120)),
	)
}

// Stamp sets the bookkeeping timestamps before a write.
func (o *Office) Stamp(now time.Time) {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}
