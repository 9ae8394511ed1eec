package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule is a planned maintenance window for a piece of equipment.
type Schedule struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EquipmentID primitive.ObjectID `bson:"equipmentId" json:"equipmentId"`
	StartsAt    time.Time          `bson:"startsAt" json:"startsAt"`
	EndsAt      time.Time          `bson:"endsAt" json:"endsAt"`
	Technician  string             `bson:"technician,omitempty" json:"technician,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`

	Equipment *Equipment `bson:"equipment,omitempty" json:"equipment,omitempty"`
}

func (s *Schedule) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.EquipmentID, validation.By(requiredID)),
		validation.Field(&s.StartsAt, validation.Required),
		validation.Field(&s.EndsAt, validation.Required, validation.By(s.validateWindow)),
	)
}

func (s *Schedule) validateWindow(interface{}) error {
	if !s.EndsAt.After(s.StartsAt) {
		return validation.NewError("validation_window", "must end after it starts")
	}
	return nil
}

// Stamp sets the bookkeeping timestamps before a write.
func (s *Schedule) Stamp(now time.Time) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}
