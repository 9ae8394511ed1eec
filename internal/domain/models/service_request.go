package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ServiceRequestOpen       = "open"
	ServiceRequestInProgress = "in_progress"
	ServiceRequestClosed     = "closed"
)

// ServiceRequest is a reported issue or job on a piece of equipment.
// Activities and maintenances hang off a service request.
type ServiceRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EquipmentID primitive.ObjectID `bson:"equipmentId" json:"equipmentId"`
	Subject     string             `bson:"subject" json:"subject"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	RequestedAt time.Time          `bson:"requestedAt" json:"requestedAt"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`

	Equipment *Equipment `bson:"equipment,omitempty" json:"equipment,omitempty"`
}

func (s *ServiceRequest) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.EquipmentID, validation.By(requiredID)),
		validation.Field(&s.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&s.Status, validation.Required, validation.In(
			ServiceRequestOpen,
			ServiceRequestInProgress,
			ServiceRequestClosed,
		)),
	)
}

// Stamp sets the bookkeeping timestamps before a write.
func (s *ServiceRequest) Stamp(now time.Time) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}
